package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-storefront-api/internal/domains/contact/domain"
	"github.com/Apurer/go-storefront-api/internal/domains/contact/ports"
)

// ErrInvalidInput signals the form failed validation.
var ErrInvalidInput = errors.New("invalid contact input")

type Service struct {
	repo  ports.Repository
	now   func() time.Time
	newID func() string
}

func NewService(repo ports.Repository) *Service {
	return &Service{
		repo:  repo,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

func (s *Service) Submit(ctx context.Context, input ports.SubmitInput) (*domain.Contact, error) {
	contact, err := domain.NewContact(s.newID(), input.Name, input.Email, input.Message, input.OrderNumber, input.Topic, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.repo.Create(ctx, contact)
}

var _ ports.Service = (*Service)(nil)
