package ports

import (
	"context"

	"github.com/Apurer/go-storefront-api/internal/domains/cart/domain"
)

// Service exposes cart use cases keyed by the authenticated user id.
type Service interface {
	AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Line, error)
	// SetQuantity returns a nil line when quantity is zero and the line was removed.
	SetQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Line, error)
	RemoveItem(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
	ListLines(ctx context.Context, userID string) ([]*domain.Line, error)
	ListItems(ctx context.Context, userID string) ([]*domain.Item, error)
	Summary(ctx context.Context, userID string) (*domain.Summary, error)
}
