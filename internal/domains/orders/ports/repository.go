package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-storefront-api/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists orders. Orders are insert-only.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// ListByUser returns the user's orders newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
}
