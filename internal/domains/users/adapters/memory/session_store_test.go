package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-storefront-api/internal/domains/users/domain"
	"github.com/Apurer/go-storefront-api/internal/domains/users/ports"
)

func TestSessionStoreExpiresLazily(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewSessionStore()
	store.WithClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Session{Token: "tok", UserID: "u1", ExpiresAt: now.Add(time.Minute)}))
	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)

	now = now.Add(time.Minute)
	_, err = store.Get(ctx, "tok")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestRepositoryRejectsDuplicates(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	_, err := repo.Create(ctx, &domain.User{ID: "1", Username: "ada", Email: "ada@example.com"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.User{ID: "2", Username: "ada", Email: "x@example.com"})
	assert.ErrorIs(t, err, ports.ErrDuplicate)
	_, err = repo.Create(ctx, &domain.User{ID: "3", Username: "grace", Email: "ada@example.com"})
	assert.ErrorIs(t, err, ports.ErrDuplicate)

	got, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)
}
