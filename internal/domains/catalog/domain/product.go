package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-storefront-api/internal/shared/projection"
)

var (
	ErrEmptyName        = errors.New("product name is required")
	ErrEmptyCategory    = errors.New("product category is required")
	ErrNegativePrice    = errors.New("price must be greater or equal to zero")
	ErrNegativeStock    = errors.New("stock must be greater or equal to zero")
	ErrRatingOutOfRange = errors.New("rating must be between 0 and 5")
)

var maxRating = decimal.NewFromInt(5)

// Product is a sellable catalog item. Prices carry two fractional digits.
type Product struct {
	ID            string
	Name          string
	Category      string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	Rating        *decimal.Decimal
	Image         string
	Description   string
	InStock       int
	Metadata      projection.Metadata
}

// NewProduct validates and constructs a Product.
func NewProduct(id, name, category string, price decimal.Decimal, inStock int) (*Product, error) {
	p := &Product{
		ID:       id,
		Name:     strings.TrimSpace(name),
		Category: strings.TrimSpace(category),
		Price:    price.Round(2),
		InStock:  inStock,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate enforces catalog invariants.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(p.Category) == "" {
		return ErrEmptyCategory
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.OriginalPrice != nil && p.OriginalPrice.IsNegative() {
		return ErrNegativePrice
	}
	if p.InStock < 0 {
		return ErrNegativeStock
	}
	if p.Rating != nil && (p.Rating.IsNegative() || p.Rating.GreaterThan(maxRating)) {
		return ErrRatingOutOfRange
	}
	return nil
}

// SetOriginalPrice records the pre-discount price.
func (p *Product) SetOriginalPrice(price decimal.Decimal) {
	rounded := price.Round(2)
	p.OriginalPrice = &rounded
}

// SetRating records the average rating with one fractional digit.
func (p *Product) SetRating(rating decimal.Decimal) {
	rounded := rating.Round(1)
	p.Rating = &rounded
}

// OnSale reports whether the product is discounted against its original price.
func (p *Product) OnSale() bool {
	return p.OriginalPrice != nil && p.OriginalPrice.GreaterThan(p.Price)
}

// Available reports whether any stock is left.
func (p *Product) Available() bool {
	return p.InStock > 0
}

// Clone returns a deep copy so callers never share pointer fields.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		clone.OriginalPrice = &v
	}
	if p.Rating != nil {
		v := *p.Rating
		clone.Rating = &v
	}
	return &clone
}
