// Package rest implements the remote API ports over the LabelForge REST
// surface. Every backend response is wrapped in the uniform envelope
// {success, message?, data?}; this package owns encoding, decoding, bearer
// header injection, and the mapping of failures onto domain errors.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/labelforge/labelforge-go/internal/core/domain"
	"github.com/labelforge/labelforge-go/internal/core/ports"
)

// ErrBadResponse marks a 2xx response whose body could not be interpreted.
var ErrBadResponse = errors.New("invalid server response")

// Client talks to a LabelForge backend (directly or through the edge
// proxy). One Client implements every remote port; it holds no session
// state and is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// New creates a Client against the given origin, e.g. "http://localhost:5000".
// No request timeout is set; callers bound requests via context.
func New(baseURL string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  logger,
	}
}

// envelope is the uniform response wrapper used by every backend endpoint.
// Older endpoints report failures in "error" rather than "message"; both
// are honoured.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *envelope) failureMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Error != "" {
		return e.Error
	}
	return "request failed"
}

// doJSON issues a JSON request and decodes the envelope's data into out.
func (c *Client) doJSON(ctx context.Context, method, path, token string, q url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	return c.send(ctx, method, path, token, q, "application/json", body, out)
}

// send performs the request and maps the response onto domain errors:
// transport failures become domain.ErrConnection, 401 wraps
// domain.ErrUnauthorized, 404 wraps domain.ErrNotFound, an unreadable body
// wraps ErrBadResponse. A 2xx envelope with success=false is still a failure.
func (c *Client) send(ctx context.Context, method, path, token string, q url.Values, contentType string, body io.Reader, out any) error {
	u := c.baseURL + "/api" + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return fmt.Errorf("%w: %v", domain.ErrConnection, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrConnection, err)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return fmt.Errorf("%w: %v", ErrBadResponse, err)
		}
	} else {
		// 204-style responses carry no envelope; the status code decides.
		env.Success = true
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.failureMessage()
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", domain.ErrUnauthorized, msg)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", domain.ErrNotFound, msg)
		default:
			return errors.New(msg)
		}
	}

	if !env.Success {
		return errors.New(env.failureMessage())
	}

	if out != nil {
		if env.Data == nil {
			return fmt.Errorf("%w: missing data", ErrBadResponse)
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: %v", ErrBadResponse, err)
		}
	}
	return nil
}

// query renders a ListQuery into URL parameters, omitting zero values.
func query(q ports.ListQuery) url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	return v
}
