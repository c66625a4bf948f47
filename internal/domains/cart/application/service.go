package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-storefront-api/internal/domains/cart/domain"
	"github.com/Apurer/go-storefront-api/internal/domains/cart/ports"
	catalogports "github.com/Apurer/go-storefront-api/internal/domains/catalog/ports"
	"github.com/Apurer/go-storefront-api/internal/shared/pricing"
)

// Service orchestrates cart use cases.
type Service struct {
	repo    ports.Repository
	catalog ports.Catalog
	taxRate decimal.Decimal
}

type Option func(*Service)

// WithTaxRate overrides the rate used by Summary.
func WithTaxRate(rate decimal.Decimal) Option {
	return func(s *Service) { s.taxRate = rate }
}

func NewService(repo ports.Repository, catalog ports.Catalog, opts ...Option) *Service {
	s := &Service{repo: repo, catalog: catalog, taxRate: pricing.DefaultTaxRate}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// AddItem merges quantity into the user's line for productID. The product must resolve through the catalog.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Line, error) {
	line, err := domain.NewLine(uuid.NewString(), userID, productID, quantity)
	if err != nil {
		return nil, mapError(err)
	}
	if _, err := s.catalog.GetByID(ctx, line.ProductID); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Add(ctx, line)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// SetQuantity overwrites a line's quantity. Zero removes the line and returns nil.
func (s *Service) SetQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Line, error) {
	if err := validateKey(userID, productID); err != nil {
		return nil, mapError(err)
	}
	if quantity < 0 {
		return nil, mapError(domain.ErrNegativeQuantity)
	}
	if quantity == 0 {
		return nil, s.RemoveItem(ctx, userID, productID)
	}
	if err := domain.ValidateQuantity(quantity); err != nil {
		return nil, mapError(err)
	}
	line, err := s.repo.SetQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return nil, mapError(err)
	}
	return line, nil
}

func (s *Service) RemoveItem(ctx context.Context, userID, productID string) error {
	if err := validateKey(userID, productID); err != nil {
		return mapError(err)
	}
	return s.repo.Remove(ctx, userID, productID)
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return mapError(domain.ErrEmptyUserID)
	}
	return s.repo.Clear(ctx, userID)
}

// ListLines returns the raw lines without resolving products.
func (s *Service) ListLines(ctx context.Context, userID string) ([]*domain.Line, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, mapError(domain.ErrEmptyUserID)
	}
	return s.repo.List(ctx, userID)
}

// ListItems joins each line with its current product. Lines whose product is gone are omitted.
func (s *Service) ListItems(ctx context.Context, userID string) ([]*domain.Item, error) {
	lines, err := s.ListLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]*domain.Item, 0, len(lines))
	for _, line := range lines {
		product, err := s.catalog.GetByID(ctx, line.ProductID)
		if errors.Is(err, catalogports.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		items = append(items, &domain.Item{Line: *line, Product: product})
	}
	return items, nil
}

// Summary prices the cart with the same arithmetic checkout uses.
func (s *Service) Summary(ctx context.Context, userID string) (*domain.Summary, error) {
	items, err := s.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.Summarize(items, s.taxRate), nil
}

func validateKey(userID, productID string) error {
	if strings.TrimSpace(userID) == "" {
		return domain.ErrEmptyUserID
	}
	if strings.TrimSpace(productID) == "" {
		return domain.ErrEmptyProductID
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
