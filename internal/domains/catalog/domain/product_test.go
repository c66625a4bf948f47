package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductValidates(t *testing.T) {
	_, err := NewProduct("p1", " ", "mice", decimal.NewFromInt(10), 1)
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewProduct("p1", "Mouse", "", decimal.NewFromInt(10), 1)
	require.ErrorIs(t, err, ErrEmptyCategory)

	_, err = NewProduct("p1", "Mouse", "mice", decimal.NewFromInt(-1), 1)
	require.ErrorIs(t, err, ErrNegativePrice)

	_, err = NewProduct("p1", "Mouse", "mice", decimal.NewFromInt(1), -1)
	require.ErrorIs(t, err, ErrNegativeStock)

	product, err := NewProduct("p1", "Mouse", "mice", decimal.RequireFromString("69.004"), 0)
	require.NoError(t, err)
	assert.Equal(t, "69.00", product.Price.StringFixed(2))
	assert.False(t, product.Available())
}

func TestProductRatingRange(t *testing.T) {
	product, err := NewProduct("p1", "Mouse", "mice", decimal.NewFromInt(69), 3)
	require.NoError(t, err)

	product.SetRating(decimal.RequireFromString("5.1"))
	require.ErrorIs(t, product.Validate(), ErrRatingOutOfRange)

	product.SetRating(decimal.RequireFromString("4.6"))
	require.NoError(t, product.Validate())
}

func TestProductOnSale(t *testing.T) {
	product, err := NewProduct("p1", "Monitor", "monitors", decimal.NewFromInt(299), 15)
	require.NoError(t, err)
	assert.False(t, product.OnSale())

	product.SetOriginalPrice(decimal.NewFromInt(499))
	assert.True(t, product.OnSale())

	product.SetOriginalPrice(decimal.NewFromInt(299))
	assert.False(t, product.OnSale())
}

func TestProductCloneIsDeep(t *testing.T) {
	product, err := NewProduct("p1", "Monitor", "monitors", decimal.NewFromInt(299), 15)
	require.NoError(t, err)
	product.SetOriginalPrice(decimal.NewFromInt(499))

	clone := product.Clone()
	clone.SetOriginalPrice(decimal.NewFromInt(1))

	assert.True(t, decimal.NewFromInt(499).Equal(*product.OriginalPrice))
}
