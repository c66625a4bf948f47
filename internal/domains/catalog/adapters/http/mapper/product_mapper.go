package mapper

import (
	"time"

	"github.com/Apurer/go-storefront-api/internal/domains/catalog/domain"
)

// Product is the HTTP representation of a catalog product. Money is rendered as fixed two-digit strings.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Price         string    `json:"price"`
	OriginalPrice *string   `json:"originalPrice"`
	Rating        *string   `json:"rating"`
	Image         string    `json:"image"`
	Description   string    `json:"description"`
	InStock       int       `json:"inStock"`
	OnSale        bool      `json:"onSale"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromDomainProduct converts a domain product into its transport representation.
func FromDomainProduct(product *domain.Product) Product {
	if product == nil {
		return Product{}
	}
	out := Product{
		ID:          product.ID,
		Name:        product.Name,
		Category:    product.Category,
		Price:       product.Price.StringFixed(2),
		Image:       product.Image,
		Description: product.Description,
		InStock:     product.InStock,
		OnSale:      product.OnSale(),
		CreatedAt:   product.Metadata.CreatedAt,
	}
	if product.OriginalPrice != nil {
		v := product.OriginalPrice.StringFixed(2)
		out.OriginalPrice = &v
	}
	if product.Rating != nil {
		v := product.Rating.StringFixed(1)
		out.Rating = &v
	}
	return out
}

// FromDomainProducts converts a slice of domain products.
func FromDomainProducts(products []*domain.Product) []Product {
	result := make([]Product, 0, len(products))
	for _, product := range products {
		result = append(result, FromDomainProduct(product))
	}
	return result
}
