package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-storefront-api/internal/domains/contact/adapters/memory"
	"github.com/Apurer/go-storefront-api/internal/domains/contact/domain"
	"github.com/Apurer/go-storefront-api/internal/domains/contact/ports"
)

func TestSubmitStoresContact(t *testing.T) {
	repo := memory.NewRepository()
	svc := NewService(repo)

	contact, err := svc.Submit(context.Background(), ports.SubmitInput{
		Name:    "Ada",
		Email:   "ada@example.com",
		Message: "Hello",
		Topic:   "shipping",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, contact.ID)
	assert.False(t, contact.CreatedAt.IsZero())

	stored := repo.All()
	require.Len(t, stored, 1)
	assert.Equal(t, contact.ID, stored[0].ID)
}

func TestSubmitRejectsInvalidForm(t *testing.T) {
	repo := memory.NewRepository()
	svc := NewService(repo)

	_, err := svc.Submit(context.Background(), ports.SubmitInput{Name: "Ada", Email: "nope"})
	require.ErrorIs(t, err, ErrInvalidInput)
	var fields domain.FieldErrors
	require.True(t, errors.As(err, &fields))
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "message")
	assert.Empty(t, repo.All())
}
