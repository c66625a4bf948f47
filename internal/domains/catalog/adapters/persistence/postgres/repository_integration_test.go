//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-storefront-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-storefront-api/internal/domains/catalog/ports"
	"github.com/Apurer/go-storefront-api/internal/platform/postgres/pgtest"
)

func newProduct(t *testing.T, name, category string, price int64) *domain.Product {
	t.Helper()
	product, err := domain.NewProduct(uuid.NewString(), name, category, decimal.NewFromInt(price), 5)
	require.NoError(t, err)
	return product
}

func TestRepository_SaveAndGetByID(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()

	product := newProduct(t, "Monitor", "monitors", 299)
	product.SetOriginalPrice(decimal.NewFromInt(499))
	product.SetRating(decimal.RequireFromString("4.7"))

	saved, err := repo.Save(ctx, product)
	require.NoError(t, err)
	assert.Equal(t, product.ID, saved.ID)
	assert.True(t, saved.OnSale())
	assert.Equal(t, "4.7", saved.Rating.StringFixed(1))
	assert.False(t, saved.Metadata.CreatedAt.IsZero())

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ListByCategoryNewestFirst(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()

	first, err := repo.Save(ctx, newProduct(t, "Cable", "accessories", 24))
	require.NoError(t, err)
	_, err = repo.Save(ctx, newProduct(t, "Mouse", "mice", 69))
	require.NoError(t, err)
	last, err := repo.Save(ctx, newProduct(t, "Mount", "accessories", 79))
	require.NoError(t, err)

	accessories, err := repo.List(ctx, "accessories")
	require.NoError(t, err)
	require.Len(t, accessories, 2)
	assert.Equal(t, last.ID, accessories[0].ID)
	assert.Equal(t, first.ID, accessories[1].ID)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRepository_Delete(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()

	saved, err := repo.Save(ctx, newProduct(t, "Mouse", "mice", 69))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, saved.ID))
	assert.ErrorIs(t, repo.Delete(ctx, saved.ID), ports.ErrNotFound)
}

func TestRepository_ConcurrentInsertIfEmptyInsertsOnce(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()

	const seeders = 4
	var wg sync.WaitGroup
	results := make([]int, seeders)
	for i := 0; i < seeders; i++ {
		products := []*domain.Product{
			newProduct(t, "Cable", "accessories", 24),
			newProduct(t, "Mouse", "mice", 69),
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			inserted, err := repo.InsertIfEmpty(ctx, products)
			assert.NoError(t, err)
			results[i] = inserted
		}(i)
	}
	wg.Wait()

	total := 0
	for _, inserted := range results {
		total += inserted
	}
	assert.Equal(t, 2, total)
	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
