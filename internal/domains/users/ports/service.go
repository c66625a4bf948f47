package ports

import (
	"context"

	"github.com/Apurer/go-storefront-api/internal/domains/users/domain"
)

// RegisterInput carries the sign-up form.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Service exposes identity use cases to adapters.
type Service interface {
	// Register creates the user and logs them in.
	Register(ctx context.Context, input RegisterInput) (*domain.User, *domain.Session, error)
	Login(ctx context.Context, username, password string) (*domain.User, *domain.Session, error)
	Logout(ctx context.Context, token string) error
	// CurrentUser resolves a session token to its user.
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
}
