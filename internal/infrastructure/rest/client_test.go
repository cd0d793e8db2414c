package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labelforge/labelforge-go/internal/backendtest"
	"github.com/labelforge/labelforge-go/internal/core/domain"
	"github.com/labelforge/labelforge-go/internal/core/ports"
)

func TestAuthClient_LoginRoundTrip(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	backend.SeedUser("u@x.com", "u", "p")

	auth := NewAuthClient(New(backend.URL(), zerolog.Nop()))
	token, user, err := auth.Login(context.Background(), "u@x.com", "p")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	require.NotNil(t, user)
	assert.Equal(t, "u@x.com", user.Email)

	// Token is live until logout.
	require.NoError(t, auth.CheckSession(context.Background(), token))
	require.NoError(t, auth.Logout(context.Background(), token))
	err = auth.CheckSession(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthClient_LoginBadCredentialsPassesBackendMessage(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	backend.SeedUser("u@x.com", "u", "p")

	auth := NewAuthClient(New(backend.URL(), zerolog.Nop()))
	_, _, err := auth.Login(context.Background(), "u@x.com", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid credentials")
}

func TestAuthClient_LoginMissingTokenIsGenericFailure(t *testing.T) {
	// A 2xx envelope without data.token must fall through to the generic
	// failure rather than half-authenticate.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"user":{"id":"u1","email":"u@x.com","username":"u"}}}`))
	}))
	defer srv.Close()

	auth := NewAuthClient(New(srv.URL, zerolog.Nop()))
	_, _, err := auth.Login(context.Background(), "u@x.com", "p")
	require.Error(t, err)
	assert.Equal(t, "login failed", err.Error())
}

func TestClient_EmptyBody2xxIsSuccess(t *testing.T) {
	// Some endpoints answer mutations with a bare 204; no envelope means
	// the status code alone decides the outcome.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	auth := NewAuthClient(New(srv.URL, zerolog.Nop()))
	require.NoError(t, auth.Logout(context.Background(), "tok"))
}

func TestClient_ConnectionErrorMapsToSentinel(t *testing.T) {
	backend := backendtest.New()
	origin := backend.URL()
	backend.Close() // nothing listens here any more

	auth := NewAuthClient(New(origin, zerolog.Nop()))
	_, _, err := auth.Login(context.Background(), "u@x.com", "p")
	assert.ErrorIs(t, err, domain.ErrConnection)
}

func TestClient_MalformedBodyIsBadResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	auth := NewAuthClient(New(srv.URL, zerolog.Nop()))
	err := auth.CheckSession(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestClient_NotFoundMapsToSentinel(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	backend.SeedUser("u@x.com", "u", "p")

	c := New(backend.URL(), zerolog.Nop())
	auth := NewAuthClient(c)
	token, _, err := auth.Login(context.Background(), "u@x.com", "p")
	require.NoError(t, err)

	_, err = NewProjectClient(c).Get(context.Background(), token, "missing-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuery_OmitsZeroValues(t *testing.T) {
	v := query(ports.ListQuery{Page: 2, Search: "wine"})
	assert.Equal(t, "2", v.Get("page"))
	assert.Equal(t, "wine", v.Get("search"))
	assert.NotContains(t, v, "limit")
	assert.NotContains(t, v, "sortBy")
}
