package rabbitmq

import (
	"fmt"
	"log/slog"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Dial opens an AMQP connection.
func Dial(url string) (*amqp.Connection, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("rabbitmq url is empty")
	}
	return amqp.Dial(url)
}

// DialOrFallback returns nil with a no-op cleanup when RabbitMQ is not configured or unreachable.
func DialOrFallback(url string, logger *slog.Logger) (*amqp.Connection, func()) {
	if strings.TrimSpace(url) == "" {
		return nil, func() {}
	}
	conn, err := Dial(url)
	if err != nil {
		if logger != nil {
			logger.Warn("failed to connect to rabbitmq, order events disabled", slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	if logger != nil {
		logger.Info("rabbitmq connection established")
	}
	return conn, func() { _ = conn.Close() }
}
