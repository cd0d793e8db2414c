package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labelforge/labelforge-go/internal/backendtest"
	"github.com/labelforge/labelforge-go/internal/core/domain"
	"github.com/labelforge/labelforge-go/internal/core/ports"
	"github.com/labelforge/labelforge-go/internal/infrastructure/rest"
	"github.com/labelforge/labelforge-go/internal/infrastructure/store/memory"
)

// These tests run the session manager against the wire-faithful fake
// backend instead of a stub API, covering the full login → persist →
// reload → validate loop.

func TestSession_LoginThenReloadAgainstBackend(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	backend.SeedUser("u@x.com", "u", "p")

	store := memory.New()
	auth := rest.NewAuthClient(rest.New(backend.URL(), zerolog.Nop()))
	ctx := context.Background()

	first := NewSession(auth, store, zerolog.Nop())
	require.NoError(t, first.Login(ctx, "u@x.com", "p"))
	require.True(t, first.Snapshot().Authenticated)

	// Simulated reload: live token validates, no re-login needed.
	second := NewSession(auth, store, zerolog.Nop())
	second.Hydrate(ctx)
	state := second.Snapshot()
	assert.True(t, state.Authenticated)
	assert.Equal(t, "u@x.com", state.User.Email)
}

func TestSession_ReloadWithRevokedTokenClearsEverything(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	backend.SeedUser("u@x.com", "u", "p")

	store := memory.New()
	auth := rest.NewAuthClient(rest.New(backend.URL(), zerolog.Nop()))
	ctx := context.Background()

	first := NewSession(auth, store, zerolog.Nop())
	require.NoError(t, first.Login(ctx, "u@x.com", "p"))
	backend.RevokeToken(first.Token())

	second := NewSession(auth, store, zerolog.Nop())
	second.Hydrate(ctx)

	assert.False(t, second.Snapshot().Authenticated)
	_, err := store.Get(ctx, ports.StoreKeyToken)
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)
}

func TestSession_ProfileRoundTrip(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	backend.SeedUser("u@x.com", "u", "p")

	auth := rest.NewAuthClient(rest.New(backend.URL(), zerolog.Nop()))
	s := NewSession(auth, memory.New(), zerolog.Nop())
	ctx := context.Background()
	require.NoError(t, s.Login(ctx, "u@x.com", "p"))

	profile, err := s.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u", profile.Username)
	assert.Equal(t, domain.SubscriptionFree, profile.Subscription)
}
