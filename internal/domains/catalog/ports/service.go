package ports

import (
	"context"

	"github.com/Apurer/go-storefront-api/internal/domains/catalog/domain"
)

// Service exposes catalog queries plus the seeding/admin entry points.
type Service interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ListAll(ctx context.Context) ([]*domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Seed(ctx context.Context) (int, error)
}
