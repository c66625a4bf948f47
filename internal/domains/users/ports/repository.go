package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-storefront-api/internal/domains/users/domain"
)

var (
	ErrNotFound = errors.New("user not found")
	// ErrDuplicate is returned when a username or email is already registered.
	ErrDuplicate = errors.New("user already exists")
)

type Repository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
