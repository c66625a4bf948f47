package ports

import (
	"context"

	"github.com/Apurer/go-storefront-api/internal/domains/orders/domain"
)

// EventPublisher announces committed orders to downstream consumers.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event domain.OrderPlaced) error
}

// NoopEventPublisher drops events.
var NoopEventPublisher EventPublisher = noopEventPublisher{}

type noopEventPublisher struct{}

func (noopEventPublisher) PublishOrderPlaced(context.Context, domain.OrderPlaced) error { return nil }
