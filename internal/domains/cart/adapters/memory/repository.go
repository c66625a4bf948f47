package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/go-storefront-api/internal/domains/cart/domain"
	"github.com/Apurer/go-storefront-api/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory cart adapter. All mutations run under one mutex so merges never lose updates.
type Repository struct {
	mu    sync.RWMutex
	carts map[string]map[string]*domain.Line
	now   func() time.Time
}

func NewRepository() *Repository {
	return &Repository{carts: map[string]map[string]*domain.Line{}, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

func (r *Repository) Add(_ context.Context, line *domain.Line) (*domain.Line, error) {
	if line == nil {
		return nil, errors.New("cart line is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	cart := r.carts[line.UserID]
	if cart == nil {
		cart = map[string]*domain.Line{}
		r.carts[line.UserID] = cart
	}
	if existing, ok := cart[line.ProductID]; ok {
		if err := existing.Merge(line.Quantity); err != nil {
			return nil, err
		}
		existing.Metadata.Touch(now)
		clone := *existing
		return &clone, nil
	}
	clone := *line
	clone.Metadata.Touch(now)
	cart[line.ProductID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) SetQuantity(_ context.Context, userID, productID string, quantity int) (*domain.Line, error) {
	if err := domain.ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.carts[userID][productID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	existing.Quantity = quantity
	existing.Metadata.Touch(r.now())
	clone := *existing
	return &clone, nil
}

func (r *Repository) Remove(_ context.Context, userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts[userID], productID)
	return nil
}

func (r *Repository) Clear(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}

func (r *Repository) List(_ context.Context, userID string) ([]*domain.Line, error) {
	r.mu.RLock()
	list := make([]*domain.Line, 0, len(r.carts[userID]))
	for _, line := range r.carts[userID] {
		clone := *line
		list = append(list, &clone)
	}
	r.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i].Metadata.CreatedAt, list[j].Metadata.CreatedAt
		if !a.Equal(b) {
			return a.Before(b)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}
