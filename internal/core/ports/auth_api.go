package ports

import (
	"context"

	"github.com/labelforge/labelforge-go/internal/core/domain"
)

// RegisterInput carries the fields for account creation.
// Validation tags are enforced client-side before the request is sent.
type RegisterInput struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=3"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName,omitempty" validate:"omitempty,min=1"`
	LastName  string `json:"lastName,omitempty" validate:"omitempty,min=1"`
}

// AuthAPI is the stateless remote surface for authentication.
type AuthAPI interface {
	// Login exchanges credentials for a bearer token and the user record.
	Login(ctx context.Context, login, password string) (string, *domain.User, error)
	Register(ctx context.Context, input RegisterInput) error
	Logout(ctx context.Context, token string) error
	// CheckSession probes token validity; nil means the session is live.
	CheckSession(ctx context.Context, token string) error
	Profile(ctx context.Context, token string) (*domain.User, error)
}
