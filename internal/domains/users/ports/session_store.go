package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-storefront-api/internal/domains/users/domain"
)

// ErrSessionNotFound covers unknown and expired tokens alike.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore abstracts session/token persistence.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}
