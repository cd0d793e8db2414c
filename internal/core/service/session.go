package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/labelforge/labelforge-go/internal/core/domain"
	"github.com/labelforge/labelforge-go/internal/core/ports"
)

// Session is the single source of truth for "who is logged in". Construct
// one per application with NewSession and pass it by reference; there is no
// package-level instance.
//
// State transitions are mutex-guarded. Network calls run outside the lock,
// so concurrent Login/Logout are not serialized: the last response to
// resolve wins, matching the documented contract.
type Session struct {
	api      ports.AuthAPI
	store    ports.SessionStore
	validate *inputValidator
	logger   zerolog.Logger

	hydrateOnce sync.Once

	mu            sync.Mutex
	user          *domain.User
	token         string
	loading       bool
	authenticated bool
}

// NewSession creates a session manager in the loading state. Call Hydrate
// once at startup to restore persisted credentials.
func NewSession(api ports.AuthAPI, store ports.SessionStore, logger zerolog.Logger) *Session {
	return &Session{
		api:      api,
		store:    store,
		validate: newInputValidator(),
		logger:   logger,
		loading:  true,
	}
}

// Hydrate restores the session from the persisted store and re-validates
// the token against the backend. It runs at most once per Session; later
// calls are no-ops. Whatever happens, the loading flag ends up false.
func (s *Session) Hydrate(ctx context.Context) {
	s.hydrateOnce.Do(func() {
		defer func() {
			s.mu.Lock()
			s.loading = false
			s.mu.Unlock()
		}()

		token, err := s.store.Get(ctx, ports.StoreKeyToken)
		if err != nil {
			return
		}
		rawUser, err := s.store.Get(ctx, ports.StoreKeyUser)
		if err != nil {
			return
		}

		var user domain.User
		if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
			s.logger.Warn().Err(err).Msg("persisted user record unreadable, clearing session")
			s.reset(ctx)
			return
		}

		if err := s.api.CheckSession(ctx, token); err != nil {
			s.logger.Info().Err(err).Msg("persisted token rejected, clearing session")
			s.reset(ctx)
			return
		}

		// Validation succeeded: trust the locally cached user record.
		s.mu.Lock()
		s.user = &user
		s.token = token
		s.authenticated = true
		s.mu.Unlock()
	})
}

// Login exchanges credentials for a bearer token, persists token and user,
// and flips the session to authenticated. Transport failures surface as
// domain.ErrConnection; backend rejections carry the backend message.
func (s *Session) Login(ctx context.Context, login, password string) error {
	token, user, err := s.api.Login(ctx, login, password)
	if err != nil {
		return err
	}

	if err := s.persist(ctx, token, user); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.user = user
	s.token = token
	s.authenticated = true
	s.mu.Unlock()

	s.logger.Info().Str("user_id", user.ID).Msg("logged in")
	return nil
}

// Register creates a new account. It does not authenticate: the caller
// must log in separately afterwards.
func (s *Session) Register(ctx context.Context, input ports.RegisterInput) error {
	if msg := s.validate.check(input); msg != "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
	}
	return s.api.Register(ctx, input)
}

// Logout tells the backend to revoke the session, then clears local state.
// The backend call is best effort: local state is cleared even when it
// fails, so Logout never leaves the client half logged in.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token != "" {
		if err := s.api.Logout(ctx, token); err != nil {
			s.logger.Warn().Err(err).Msg("backend logout failed, clearing local session anyway")
		}
	}

	s.reset(ctx)
	return nil
}

// CheckSession probes the backend for token validity. An invalid session
// forces a local logout before the failure is returned.
func (s *Session) CheckSession(ctx context.Context) error {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token == "" {
		return domain.ErrUnauthorized
	}

	if err := s.api.CheckSession(ctx, token); err != nil {
		if errors.Is(err, domain.ErrConnection) {
			return err
		}
		_ = s.Logout(ctx)
		return fmt.Errorf("%w: %v", domain.ErrSessionExpired, err)
	}
	return nil
}

// Profile fetches the authenticated user's profile from the backend.
func (s *Session) Profile(ctx context.Context) (*domain.User, error) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.api.Profile(ctx, token)
}

// Token returns the current bearer token, or "" when unauthenticated.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := domain.SessionState{
		Token:         s.token,
		Loading:       s.loading,
		Authenticated: s.authenticated,
	}
	if s.user != nil {
		u := *s.user
		state.User = &u
	}
	return state
}

func (s *Session) persist(ctx context.Context, token string, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, ports.StoreKeyToken, token); err != nil {
		return err
	}
	return s.store.Set(ctx, ports.StoreKeyUser, string(raw))
}

func (s *Session) reset(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to clear session store")
	}

	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.authenticated = false
	s.mu.Unlock()
}
