package domain

import "time"

// OrderPlaced is emitted after an order commits.
type OrderPlaced struct {
	OrderID    string    `json:"orderId"`
	UserID     string    `json:"userId"`
	Total      string    `json:"total"`
	ItemCount  int       `json:"itemCount"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewOrderPlaced derives the event from a committed order.
func NewOrderPlaced(order *Order, at time.Time) OrderPlaced {
	return OrderPlaced{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Total:      order.Total.StringFixed(2),
		ItemCount:  order.ItemCount(),
		OccurredAt: at,
	}
}
