package ports

import (
	"context"

	"github.com/Apurer/go-storefront-api/internal/domains/orders/domain"
)

// Service exposes order use cases.
type Service interface {
	// PlaceOrder commits the user's cart as an order and then runs the post-commit steps.
	PlaceOrder(ctx context.Context, userID string, delivery domain.DeliveryInfo) (*domain.Order, error)
	// CommitOrder is the transactional half of PlaceOrder. A non-empty orderID makes it idempotent.
	CommitOrder(ctx context.Context, orderID, userID string, delivery domain.DeliveryInfo) (*domain.Order, error)
	// CompleteCheckout clears the cart and publishes OrderPlaced. It never touches the order.
	CompleteCheckout(ctx context.Context, order *domain.Order) error
	ListOrders(ctx context.Context, userID string) ([]*domain.Order, error)
	GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, error)
}
