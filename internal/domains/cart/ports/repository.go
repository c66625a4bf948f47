package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-storefront-api/internal/domains/cart/domain"
)

var (
	ErrNotFound = errors.New("cart item not found")
	// ErrProductMissing is returned when the referenced product no longer exists at write time.
	ErrProductMissing = errors.New("cart product does not exist")
)

// Repository persists cart lines. Every operation is scoped to a single user.
type Repository interface {
	// Add merges quantity into the (user, product) line atomically, creating it when absent.
	Add(ctx context.Context, line *domain.Line) (*domain.Line, error)
	// SetQuantity overwrites the quantity of an existing line.
	SetQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Line, error)
	Remove(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
	// List returns lines by creation time then id. Inside a transaction the rows are locked.
	List(ctx context.Context, userID string) ([]*domain.Line, error)
}
