package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/go-storefront-api/internal/domains/orders/domain"
	"github.com/Apurer/go-storefront-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewRepository() *Repository {
	return &Repository{orders: map[string]*domain.Order{}}
}

// Create stores order. An order already stored under the same id and user is returned unchanged.
func (r *Repository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, exists := r.orders[order.ID]; exists {
		if existing.UserID != order.UserID {
			return nil, errors.New("order already exists")
		}
		return existing.Clone(), nil
	}
	r.orders[order.ID] = order.Clone()
	return order.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return order.Clone(), nil
}

func (r *Repository) ListByUser(_ context.Context, userID string) ([]*domain.Order, error) {
	r.mu.RLock()
	list := make([]*domain.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			list = append(list, order.Clone())
		}
	}
	r.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}
