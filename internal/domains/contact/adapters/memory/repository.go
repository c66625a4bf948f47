package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/go-storefront-api/internal/domains/contact/domain"
	"github.com/Apurer/go-storefront-api/internal/domains/contact/ports"
)

var _ ports.Repository = (*Repository)(nil)

type Repository struct {
	mu       sync.Mutex
	contacts []domain.Contact
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) Create(_ context.Context, contact *domain.Contact) (*domain.Contact, error) {
	if contact == nil {
		return nil, errors.New("contact is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contacts = append(r.contacts, *contact)
	stored := *contact
	return &stored, nil
}

// All returns the stored contacts in submission order.
func (r *Repository) All() []domain.Contact {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Contact(nil), r.contacts...)
}
