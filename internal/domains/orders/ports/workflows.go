package ports

import (
	"context"

	"github.com/Apurer/go-storefront-api/internal/domains/orders/domain"
)

// CheckoutOrchestrator runs checkout inline or through a durable workflow engine.
type CheckoutOrchestrator interface {
	Checkout(ctx context.Context, userID string, delivery domain.DeliveryInfo) (*domain.Order, error)
}
