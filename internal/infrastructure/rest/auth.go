package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/labelforge/labelforge-go/internal/core/domain"
	"github.com/labelforge/labelforge-go/internal/core/ports"
)

// AuthClient implements ports.AuthAPI over /api/auth/*.
type AuthClient struct {
	c *Client
}

func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c}
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginData struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Login exchanges credentials for a bearer token. A success response that
// omits data.token is treated as a generic failure, mirroring the way the
// web client has always handled that backend quirk.
func (a *AuthClient) Login(ctx context.Context, login, password string) (string, *domain.User, error) {
	var data loginData
	err := a.c.doJSON(ctx, http.MethodPost, "/auth/login", "", nil, loginRequest{Login: login, Password: password}, &data)
	if err != nil {
		return "", nil, err
	}
	if data.Token == "" || data.User == nil {
		return "", nil, errors.New("login failed")
	}
	return data.Token, data.User, nil
}

func (a *AuthClient) Register(ctx context.Context, input ports.RegisterInput) error {
	return a.c.doJSON(ctx, http.MethodPost, "/auth/register", "", nil, input, nil)
}

func (a *AuthClient) Logout(ctx context.Context, token string) error {
	return a.c.doJSON(ctx, http.MethodPost, "/auth/logout", token, nil, nil, nil)
}

func (a *AuthClient) CheckSession(ctx context.Context, token string) error {
	return a.c.doJSON(ctx, http.MethodGet, "/auth/session", token, nil, nil, nil)
}

func (a *AuthClient) Profile(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	if err := a.c.doJSON(ctx, http.MethodGet, "/auth/profile", token, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
