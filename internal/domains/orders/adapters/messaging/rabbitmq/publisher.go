package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Apurer/go-storefront-api/internal/domains/orders/domain"
	"github.com/Apurer/go-storefront-api/internal/domains/orders/ports"
)

// OrderPlacedQueue receives one message per committed order.
const OrderPlacedQueue = "orders.order_placed"

const publishTimeout = 3 * time.Second

var _ ports.EventPublisher = (*Publisher)(nil)

// Publisher sends order events to RabbitMQ through the default exchange.
type Publisher struct {
	mu sync.Mutex
	ch *amqp.Channel
}

// NewPublisher opens a channel on conn and declares the durable event queue.
func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	if conn == nil {
		return nil, errors.New("rabbitmq connection is nil")
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(OrderPlacedQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare %s: %w", OrderPlacedQueue, err)
	}
	return &Publisher{ch: ch}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

// PublishOrderPlaced publishes event as persistent JSON keyed by the order id.
func (p *Publisher) PublishOrderPlaced(ctx context.Context, event domain.OrderPlaced) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal OrderPlaced: %w", err)
	}
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(
		pubCtx,
		"",
		OrderPlacedQueue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.OrderID,
			Timestamp:    event.OccurredAt,
			Type:         "OrderPlaced",
			Body:         body,
		},
	)
}
