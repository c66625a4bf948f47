package ports

import (
	"context"

	cartdomain "github.com/Apurer/go-storefront-api/internal/domains/cart/domain"
	catalogdomain "github.com/Apurer/go-storefront-api/internal/domains/catalog/domain"
)

// Cart is the slice of the cart manager checkout depends on.
type Cart interface {
	ListLines(ctx context.Context, userID string) ([]*cartdomain.Line, error)
	Clear(ctx context.Context, userID string) error
}

// Catalog re-resolves products at checkout.
type Catalog interface {
	GetByID(ctx context.Context, id string) (*catalogdomain.Product, error)
}
