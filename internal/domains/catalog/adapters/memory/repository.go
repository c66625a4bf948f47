package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/go-storefront-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-storefront-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	now      func() time.Time
}

func NewRepository() *Repository {
	return &Repository{products: map[string]*domain.Product{}, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if product.ID == "" {
		return nil, errors.New("product id is required")
	}
	clone := product.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.products[clone.ID]; ok {
		clone.Metadata.CreatedAt = existing.Metadata.CreatedAt
	}
	clone.Metadata.Touch(r.now())
	r.products[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return product.Clone(), nil
}

func (r *Repository) List(_ context.Context, category string) ([]*domain.Product, error) {
	r.mu.RLock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		if category != "" && product.Category != category {
			continue
		}
		list = append(list, product.Clone())
	}
	r.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i].Metadata.CreatedAt, list[j].Metadata.CreatedAt
		if !a.Equal(b) {
			return a.After(b)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *Repository) InsertIfEmpty(_ context.Context, products []*domain.Product) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.products) > 0 {
		return 0, nil
	}
	for _, product := range products {
		if product == nil || product.ID == "" {
			return 0, errors.New("product id is required")
		}
	}
	for _, product := range products {
		clone := product.Clone()
		clone.Metadata.Touch(r.now())
		r.products[clone.ID] = clone
	}
	return len(products), nil
}
