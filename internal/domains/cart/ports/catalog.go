package ports

import (
	"context"

	catalogdomain "github.com/Apurer/go-storefront-api/internal/domains/catalog/domain"
)

// Catalog resolves products for cart writes and listings.
type Catalog interface {
	GetByID(ctx context.Context, id string) (*catalogdomain.Product, error)
}
