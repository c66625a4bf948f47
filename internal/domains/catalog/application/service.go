package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Apurer/go-storefront-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-storefront-api/internal/domains/catalog/ports"
)

// Service orchestrates catalog use cases. It always reads through to the repository.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAll(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx, "")
}

func (s *Service) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return s.ListAll(ctx)
	}
	return s.repo.List(ctx, category)
}

// Create validates and stores a new product under a fresh id.
func (s *Service) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	clone, err := prepare(product)
	if err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, clone)
}

func prepare(product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := product.Clone()
	clone.ID = uuid.NewString()
	clone.Price = clone.Price.Round(2)
	if err := clone.Validate(); err != nil {
		return nil, mapError(err)
	}
	return clone, nil
}

// Seed loads the sample catalog when no products exist yet and reports how many were created.
func (s *Service) Seed(ctx context.Context) (int, error) {
	samples := SampleProducts()
	products := make([]*domain.Product, 0, len(samples))
	for _, sample := range samples {
		product, err := prepare(sample)
		if err != nil {
			return 0, err
		}
		products = append(products, product)
	}
	return s.repo.InsertIfEmpty(ctx, products)
}

var _ ports.Service = (*Service)(nil)
