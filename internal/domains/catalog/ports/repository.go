package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-storefront-api/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("product not found")

// Repository persists catalog products.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	// List returns products newest first. An empty category matches every product.
	List(ctx context.Context, category string) ([]*domain.Product, error)
	// Delete retires a product. No HTTP route exposes it; operators and tests call it directly,
	// and cart lines referencing the product go with it.
	Delete(ctx context.Context, id string) error
	// InsertIfEmpty stores products only when the catalog has none and reports how many were stored.
	// Concurrent callers never both insert.
	InsertIfEmpty(ctx context.Context, products []*domain.Product) (int, error)
}
