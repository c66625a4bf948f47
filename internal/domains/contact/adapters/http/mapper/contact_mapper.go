package mapper

import (
	"time"

	"github.com/Apurer/go-storefront-api/internal/domains/contact/domain"
	"github.com/Apurer/go-storefront-api/internal/domains/contact/ports"
)

// ContactForm is the submitted payload.
type ContactForm struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Message     string `json:"message"`
	OrderNumber string `json:"orderNumber,omitempty"`
	Topic       string `json:"topic,omitempty"`
}

// Contact is the stored message as returned to the client.
type Contact struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Message     string    `json:"message"`
	OrderNumber *string   `json:"orderNumber"`
	Topic       *string   `json:"topic"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToSubmitInput(f ContactForm) ports.SubmitInput {
	return ports.SubmitInput{
		Name:        f.Name,
		Email:       f.Email,
		Message:     f.Message,
		OrderNumber: f.OrderNumber,
		Topic:       f.Topic,
	}
}

func FromDomainContact(c *domain.Contact) Contact {
	return Contact{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Message:     c.Message,
		OrderNumber: c.OrderNumber,
		Topic:       c.Topic,
		CreatedAt:   c.CreatedAt,
	}
}
