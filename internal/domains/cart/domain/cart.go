package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/Apurer/go-storefront-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-storefront-api/internal/shared/pricing"
	"github.com/Apurer/go-storefront-api/internal/shared/projection"
)

// MaxQuantity caps the units a single cart line can hold.
const MaxQuantity = 999

var (
	ErrEmptyUserID      = errors.New("user id is required")
	ErrEmptyProductID   = errors.New("product id is required")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrNegativeQuantity = errors.New("quantity must not be negative")
	ErrQuantityTooLarge = fmt.Errorf("quantity must not exceed %d", MaxQuantity)
)

// Line is one product entry in a user's cart. A user holds at most one line per product.
type Line struct {
	ID        string
	UserID    string
	ProductID string
	Quantity  int
	Metadata  projection.Metadata
}

// NewLine validates and constructs a cart line.
func NewLine(id, userID, productID string, quantity int) (*Line, error) {
	line := &Line{ID: id, UserID: strings.TrimSpace(userID), ProductID: strings.TrimSpace(productID), Quantity: quantity}
	if err := line.Validate(); err != nil {
		return nil, err
	}
	return line, nil
}

// Validate enforces line invariants.
func (l *Line) Validate() error {
	if l.UserID == "" {
		return ErrEmptyUserID
	}
	if l.ProductID == "" {
		return ErrEmptyProductID
	}
	return ValidateQuantity(l.Quantity)
}

// ValidateQuantity checks a stored line quantity lies in [1, MaxQuantity].
func ValidateQuantity(quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if quantity > MaxQuantity {
		return ErrQuantityTooLarge
	}
	return nil
}

// Merge adds quantity to the line. The line is left unchanged when the sum would exceed MaxQuantity.
func (l *Line) Merge(quantity int) error {
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}
	if quantity > MaxQuantity-l.Quantity {
		return ErrQuantityTooLarge
	}
	l.Quantity += quantity
	return nil
}

// Item is a cart line joined with the product as it is right now.
type Item struct {
	Line    Line
	Product *catalogdomain.Product
}

func (i *Item) UnitPrice() decimal.Decimal { return i.Product.Price }

func (i *Item) Units() int { return i.Line.Quantity }

// LineTotal is the current unit price times quantity.
func (i *Item) LineTotal() decimal.Decimal {
	return pricing.LineTotal(i.Product.Price, i.Line.Quantity)
}

// Summary is the priced view of a cart.
type Summary struct {
	Items     []*Item
	ItemCount int
	pricing.Totals
}

// Summarize prices items at rate using the checkout arithmetic.
func Summarize(items []*Item, rate decimal.Decimal) *Summary {
	count := 0
	for _, item := range items {
		count += item.Line.Quantity
	}
	return &Summary{
		Items:     items,
		ItemCount: count,
		Totals:    pricing.Compute(items, rate),
	}
}
