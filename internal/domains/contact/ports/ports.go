package ports

import (
	"context"

	"github.com/Apurer/go-storefront-api/internal/domains/contact/domain"
)

// SubmitInput carries the contact form.
type SubmitInput struct {
	Name        string
	Email       string
	Message     string
	OrderNumber string
	Topic       string
}

type Repository interface {
	Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error)
}

type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*domain.Contact, error)
}
