package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersapp "github.com/Apurer/go-storefront-api/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/go-storefront-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-storefront-api/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-storefront-api/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core order service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) PlaceOrder(ctx context.Context, userID string, delivery ordersdomain.DeliveryInfo) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.PlaceOrder", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()
	order, err := s.inner.PlaceOrder(ctx, userID, delivery)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.String("user_id", userID))
	}
	s.recordPlaced(ctx, span, order)
	return order, nil
}

func (s *Service) CommitOrder(ctx context.Context, orderID, userID string, delivery ordersdomain.DeliveryInfo) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CommitOrder", trace.WithAttributes(
		attribute.String("user.id", userID), attribute.String("order.id", orderID)))
	defer span.End()
	order, err := s.inner.CommitOrder(ctx, orderID, userID, delivery)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to commit order", slog.String("user_id", userID))
	}
	s.recordPlaced(ctx, span, order)
	return order, nil
}

func (s *Service) CompleteCheckout(ctx context.Context, order *ordersdomain.Order) error {
	var orderID string
	if order != nil {
		orderID = order.ID
	}
	ctx, span := s.tracer.Start(ctx, "OrderService.CompleteCheckout", trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()
	if err := s.inner.CompleteCheckout(ctx, order); err != nil {
		return s.handleError(ctx, span, err, "failed to complete checkout", slog.String("order_id", orderID))
	}
	return nil
}

func (s *Service) ListOrders(ctx context.Context, userID string) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()
	orders, err := s.inner.ListOrders(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.String("user_id", userID))
	}
	span.SetAttributes(attribute.Int("orders.count", len(orders)))
	return orders, nil
}

func (s *Service) GetOrder(ctx context.Context, userID, orderID string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.String("order.id", orderID),
	))
	defer span.End()
	order, err := s.inner.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to get order", slog.String("user_id", userID), slog.String("order_id", orderID))
	}
	return order, nil
}

func (s *Service) recordPlaced(ctx context.Context, span trace.Span, order *ordersdomain.Order) {
	total, _ := order.Total.Float64()
	span.SetAttributes(
		attribute.String("order.id", order.ID),
		attribute.Int("order.items", order.ItemCount()),
		attribute.String("order.total", order.Total.StringFixed(2)),
	)
	s.metrics.recordPlaced(ctx, total)
	s.logInfo(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.String("user_id", order.UserID),
		slog.String("total", order.Total.StringFixed(2)),
	)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	level := slog.LevelError
	if errors.Is(err, ordersapp.ErrInvalidInput) ||
		errors.Is(err, ordersapp.ErrEmptyCart) ||
		errors.Is(err, ordersports.ErrNotFound) {
		level = slog.LevelWarn
	}
	s.log(ctx, level, msg, append(attrs, slog.String("error", err.Error()))...)
	return err
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	s.log(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) log(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, level, msg, attrs...)
}

type serviceMetrics struct {
	ordersPlaced metric.Int64Counter
	orderTotal   metric.Float64Histogram
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("orders.service.orders_placed", metric.WithDescription("Orders committed"))
	total, _ := m.Float64Histogram("orders.service.order_total", metric.WithDescription("Order totals"), metric.WithUnit("USD"))
	return serviceMetrics{ordersPlaced: placed, orderTotal: total}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, total float64) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1)
	}
	if m.orderTotal != nil {
		m.orderTotal.Record(ctx, total)
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ ordersports.Service = (*Service)(nil)
