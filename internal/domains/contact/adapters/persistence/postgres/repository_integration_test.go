//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-storefront-api/internal/domains/contact/domain"
	"github.com/Apurer/go-storefront-api/internal/platform/postgres/pgtest"
)

func TestRepository_Create(t *testing.T) {
	db := pgtest.Start(t)
	repo := NewRepository(db)

	contact, err := domain.NewContact(uuid.NewString(), "Ada", "ada@example.com", "Hello", "", "returns", time.Now().UTC())
	require.NoError(t, err)

	saved, err := repo.Create(context.Background(), contact)
	require.NoError(t, err)
	assert.Equal(t, contact.ID, saved.ID)

	var count int64
	require.NoError(t, db.Table("contacts").Where("id = ? AND order_number IS NULL AND topic = ?", contact.ID, "returns").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
