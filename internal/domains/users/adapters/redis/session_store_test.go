package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-storefront-api/internal/domains/users/domain"
	"github.com/Apurer/go-storefront-api/internal/domains/users/ports"
)

func setupStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client), mr
}

func TestSaveAndGet(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()
	session := &domain.Session{Token: "tok", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second)}

	require.NoError(t, store.Save(ctx, session))

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.True(t, session.ExpiresAt.Equal(got.ExpiresAt))

	ttl := mr.TTL(sessionKey("tok"))
	assert.Greater(t, ttl, 59*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)
}

func TestExpiredKeyIsGone(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &domain.Session{Token: "tok", UserID: "u1", ExpiresAt: time.Now().Add(time.Minute)}))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "tok")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestDelete(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &domain.Session{Token: "tok", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}))

	require.NoError(t, store.Delete(ctx, "tok"))
	require.NoError(t, store.Delete(ctx, "tok"))

	_, err := store.Get(ctx, "tok")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSaveRejectsExpiredSession(t *testing.T) {
	store, _ := setupStore(t)
	err := store.Save(context.Background(), &domain.Session{Token: "tok", UserID: "u1", ExpiresAt: time.Now().Add(-time.Second)})
	assert.Error(t, err)
}
