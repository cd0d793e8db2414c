package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labelforge/labelforge-go/internal/core/domain"
	"github.com/labelforge/labelforge-go/internal/core/ports"
	"github.com/labelforge/labelforge-go/internal/infrastructure/store/memory"
)

type stubAuthAPI struct {
	token string
	user  *domain.User

	loginErr  error
	checkErr  error
	logoutErr error

	loginCalls  int
	checkCalls  int
	logoutCalls int
}

func (s *stubAuthAPI) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	s.loginCalls++
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return s.token, s.user, nil
}

func (s *stubAuthAPI) Register(_ context.Context, _ ports.RegisterInput) error { return nil }

func (s *stubAuthAPI) Logout(_ context.Context, _ string) error {
	s.logoutCalls++
	return s.logoutErr
}

func (s *stubAuthAPI) CheckSession(_ context.Context, _ string) error {
	s.checkCalls++
	return s.checkErr
}

func (s *stubAuthAPI) Profile(_ context.Context, _ string) (*domain.User, error) {
	return s.user, nil
}

func testUser() *domain.User {
	return &domain.User{ID: "u1", Email: "u@x.com", Username: "u", Role: domain.RoleUser}
}

func TestSession_LoginPersistsAndAuthenticates(t *testing.T) {
	api := &stubAuthAPI{token: "tok-1", user: testUser()}
	store := memory.New()
	s := NewSession(api, store, zerolog.Nop())

	require.NoError(t, s.Login(context.Background(), "u@x.com", "p"))

	state := s.Snapshot()
	assert.True(t, state.Authenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, "u1", state.User.ID)

	token, err := store.Get(context.Background(), ports.StoreKeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	_, err = store.Get(context.Background(), ports.StoreKeyUser)
	require.NoError(t, err)
}

func TestSession_HydrateAfterLoginValidatesWithoutRelogin(t *testing.T) {
	api := &stubAuthAPI{token: "tok-1", user: testUser()}
	store := memory.New()

	first := NewSession(api, store, zerolog.Nop())
	require.NoError(t, first.Login(context.Background(), "u@x.com", "p"))
	require.Equal(t, 1, api.loginCalls)

	// Simulated reload: a fresh Session over the same store.
	second := NewSession(api, store, zerolog.Nop())
	second.Hydrate(context.Background())

	state := second.Snapshot()
	assert.True(t, state.Authenticated)
	assert.False(t, state.Loading)
	assert.Equal(t, 1, api.loginCalls, "hydration must not re-login")
	assert.Equal(t, 1, api.checkCalls, "hydration must validate the persisted token")
}

func TestSession_HydrateEmptyStoreStaysUnauthenticated(t *testing.T) {
	api := &stubAuthAPI{}
	s := NewSession(api, memory.New(), zerolog.Nop())

	assert.True(t, s.Snapshot().Loading)
	s.Hydrate(context.Background())

	state := s.Snapshot()
	assert.False(t, state.Loading)
	assert.False(t, state.Authenticated)
	assert.Zero(t, api.checkCalls)
}

func TestSession_HydrateRejectedTokenClearsStore(t *testing.T) {
	api := &stubAuthAPI{token: "tok-1", user: testUser()}
	store := memory.New()
	require.NoError(t, NewSession(api, store, zerolog.Nop()).Login(context.Background(), "u@x.com", "p"))

	api.checkErr = domain.ErrUnauthorized
	s := NewSession(api, store, zerolog.Nop())
	s.Hydrate(context.Background())

	state := s.Snapshot()
	assert.False(t, state.Authenticated)
	assert.False(t, state.Loading)
	_, err := store.Get(context.Background(), ports.StoreKeyToken)
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)
}

func TestSession_HydrateRunsOnce(t *testing.T) {
	api := &stubAuthAPI{token: "tok-1", user: testUser()}
	store := memory.New()
	require.NoError(t, NewSession(api, store, zerolog.Nop()).Login(context.Background(), "u@x.com", "p"))

	s := NewSession(api, store, zerolog.Nop())
	s.Hydrate(context.Background())
	s.Hydrate(context.Background())
	s.Hydrate(context.Background())

	assert.Equal(t, 1, api.checkCalls)
}

func TestSession_LogoutClearsStateEvenWhenBackendFails(t *testing.T) {
	api := &stubAuthAPI{token: "tok-1", user: testUser()}
	store := memory.New()
	s := NewSession(api, store, zerolog.Nop())
	require.NoError(t, s.Login(context.Background(), "u@x.com", "p"))

	api.logoutErr = domain.ErrConnection
	require.NoError(t, s.Logout(context.Background()))

	state := s.Snapshot()
	assert.False(t, state.Authenticated)
	assert.Nil(t, state.User)
	assert.Empty(t, s.Token())
	_, err := store.Get(context.Background(), ports.StoreKeyToken)
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)
	_, err = store.Get(context.Background(), ports.StoreKeyUser)
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)
}

func TestSession_CheckSessionInvalidForcesLogout(t *testing.T) {
	api := &stubAuthAPI{token: "tok-1", user: testUser()}
	store := memory.New()
	s := NewSession(api, store, zerolog.Nop())
	require.NoError(t, s.Login(context.Background(), "u@x.com", "p"))

	api.checkErr = errors.New("token revoked")
	err := s.CheckSession(context.Background())
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.False(t, s.Snapshot().Authenticated)
	assert.Equal(t, 1, api.logoutCalls)
}

func TestSession_CheckSessionConnectionErrorDoesNotLogout(t *testing.T) {
	api := &stubAuthAPI{token: "tok-1", user: testUser()}
	s := NewSession(api, memory.New(), zerolog.Nop())
	require.NoError(t, s.Login(context.Background(), "u@x.com", "p"))

	api.checkErr = domain.ErrConnection
	err := s.CheckSession(context.Background())
	assert.ErrorIs(t, err, domain.ErrConnection)
	assert.True(t, s.Snapshot().Authenticated, "a network blip must not drop the session")
}

func TestSession_LoginFailureLeavesStateUntouched(t *testing.T) {
	api := &stubAuthAPI{loginErr: errors.New("Invalid credentials")}
	store := memory.New()
	s := NewSession(api, store, zerolog.Nop())

	err := s.Login(context.Background(), "u@x.com", "wrong")
	require.Error(t, err)
	assert.False(t, s.Snapshot().Authenticated)
	_, getErr := store.Get(context.Background(), ports.StoreKeyToken)
	assert.ErrorIs(t, getErr, ports.ErrKeyNotFound)
}

func TestSession_RegisterValidatesInput(t *testing.T) {
	api := &stubAuthAPI{}
	s := NewSession(api, memory.New(), zerolog.Nop())

	err := s.Register(context.Background(), ports.RegisterInput{Email: "not-an-email", Username: "ab", Password: "short"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	err = s.Register(context.Background(), ports.RegisterInput{Email: "a@b.com", Username: "alice", Password: "longenough"})
	require.NoError(t, err)
	assert.False(t, s.Snapshot().Authenticated, "register must not authenticate")
}
