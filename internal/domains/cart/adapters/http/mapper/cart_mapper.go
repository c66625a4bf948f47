package mapper

import (
	"time"

	catalogmapper "github.com/Apurer/go-storefront-api/internal/domains/catalog/adapters/http/mapper"
	"github.com/Apurer/go-storefront-api/internal/domains/cart/domain"
)

// CartLine is the HTTP representation of a stored cart line.
type CartLine struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}

// CartItem is a cart line joined with its product.
type CartItem struct {
	CartLine
	Product   catalogmapper.Product `json:"product"`
	LineTotal string                `json:"lineTotal"`
}

// Summary is the priced cart view.
type Summary struct {
	ItemCount int    `json:"itemCount"`
	Subtotal  string `json:"subtotal"`
	Tax       string `json:"tax"`
	Total     string `json:"total"`
}

// FromDomainLine converts a domain cart line. A nil line maps to nil so removals render as null.
func FromDomainLine(line *domain.Line) *CartLine {
	if line == nil {
		return nil
	}
	return &CartLine{
		ID:        line.ID,
		UserID:    line.UserID,
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
		CreatedAt: line.Metadata.CreatedAt,
	}
}

// FromDomainItems converts joined cart items.
func FromDomainItems(items []*domain.Item) []CartItem {
	result := make([]CartItem, 0, len(items))
	for _, item := range items {
		result = append(result, CartItem{
			CartLine:  *FromDomainLine(&item.Line),
			Product:   catalogmapper.FromDomainProduct(item.Product),
			LineTotal: item.LineTotal().StringFixed(2),
		})
	}
	return result
}

// FromDomainSummary converts the totals portion of a cart summary.
func FromDomainSummary(summary *domain.Summary) Summary {
	if summary == nil {
		return Summary{Subtotal: "0.00", Tax: "0.00", Total: "0.00"}
	}
	return Summary{
		ItemCount: summary.ItemCount,
		Subtotal:  summary.Subtotal.StringFixed(2),
		Tax:       summary.Tax.StringFixed(2),
		Total:     summary.Total.StringFixed(2),
	}
}
