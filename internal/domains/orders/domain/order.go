package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-storefront-api/internal/shared/pricing"
)

// Status enumerates order progression. Only pending is produced by checkout.
type Status string

const (
	StatusPending   Status = "pending"
	StatusFulfilled Status = "fulfilled"
	StatusCancelled Status = "cancelled"
)

var (
	ErrEmptyUserID     = errors.New("user id is required")
	ErrNoItems         = errors.New("order must contain at least one item")
	ErrInvalidLineItem = errors.New("order line item is invalid")
)

// LineItem snapshots a product at checkout. It never changes after the order is placed.
type LineItem struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
}

func (l LineItem) UnitPrice() decimal.Decimal { return l.Price }

func (l LineItem) Units() int { return l.Quantity }

// Total is price × quantity.
func (l LineItem) Total() decimal.Decimal {
	return pricing.LineTotal(l.Price, l.Quantity)
}

func (l LineItem) validate() error {
	if strings.TrimSpace(l.ProductID) == "" || l.Quantity < 1 || l.Price.IsNegative() {
		return ErrInvalidLineItem
	}
	return nil
}

// Order is an immutable record of a completed checkout.
type Order struct {
	ID        string
	UserID    string
	Items     []LineItem
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
	Delivery  DeliveryInfo
	Status    Status
	CreatedAt time.Time
}

// NewOrder prices items at rate and builds a pending order.
func NewOrder(id, userID string, items []LineItem, delivery DeliveryInfo, rate decimal.Decimal, now time.Time) (*Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrEmptyUserID
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	for _, item := range items {
		if err := item.validate(); err != nil {
			return nil, err
		}
	}
	if err := pricing.ValidateRate(rate); err != nil {
		return nil, err
	}
	totals := pricing.Compute(items, rate)
	return &Order{
		ID:        id,
		UserID:    userID,
		Items:     append([]LineItem(nil), items...),
		Subtotal:  totals.Subtotal,
		Tax:       totals.Tax,
		Total:     totals.Total,
		Delivery:  delivery,
		Status:    StatusPending,
		CreatedAt: now,
	}, nil
}

// ItemCount sums quantities across line items.
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// Clone returns a copy that does not share the items slice.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = append([]LineItem(nil), o.Items...)
	return &clone
}
