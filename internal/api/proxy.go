// Package api hosts the LabelForge edge proxy: a same-origin endpoint that
// relays /api/* to the backend origin so browsers never make a cross-origin
// request. It performs no auth enforcement and no payload transformation;
// the Authorization header passes through verbatim.
package api

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/labelforge/labelforge-go/internal/api/metrics"
)

// failureEnvelope is the fixed body returned when the backend is unreachable.
type failureEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ProxyHandler forwards requests to the configured backend origin.
type ProxyHandler struct {
	origin string
	client *http.Client
	logger zerolog.Logger
}

func NewProxyHandler(origin string, logger zerolog.Logger) *ProxyHandler {
	return &ProxyHandler{
		origin: strings.TrimRight(origin, "/"),
		client: &http.Client{},
		logger: logger,
	}
}

// Forward relays method, path, query string, body and Authorization header
// to the backend and copies the upstream status and body back unchanged.
// Any failure to reach the backend yields a 500 with a fixed envelope.
func (h *ProxyHandler) Forward(c echo.Context) error {
	in := c.Request()
	target := h.origin + in.URL.Path
	if in.URL.RawQuery != "" {
		target += "?" + in.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(in.Context(), in.Method, target, in.Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request")
	}
	if v := in.Header.Get("Authorization"); v != "" {
		req.Header.Set("Authorization", v)
	}
	if v := in.Header.Get("Content-Type"); v != "" {
		req.Header.Set("Content-Type", v)
	}

	start := time.Now()
	resp, err := h.client.Do(req)
	metrics.ForwardDuration.WithLabelValues(in.Method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamFailuresTotal.Inc()
		h.logger.Error().Err(err).Str("method", in.Method).Str("path", in.URL.Path).Msg("backend unreachable")
		return c.JSON(http.StatusInternalServerError, failureEnvelope{Success: false, Message: "Internal Server Error"})
	}
	defer resp.Body.Close()

	metrics.ForwardedTotal.WithLabelValues(in.Method, strconv.Itoa(resp.StatusCode)).Inc()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = echo.MIMEApplicationJSON
	}
	c.Response().Header().Set(echo.HeaderContentType, contentType)
	c.Response().WriteHeader(resp.StatusCode)
	_, err = io.Copy(c.Response(), resp.Body)
	return err
}
