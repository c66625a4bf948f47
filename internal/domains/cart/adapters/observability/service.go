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

	cartapp "github.com/Apurer/go-storefront-api/internal/domains/cart/application"
	cartdomain "github.com/Apurer/go-storefront-api/internal/domains/cart/domain"
	cartports "github.com/Apurer/go-storefront-api/internal/domains/cart/ports"
)

const tracerName = "github.com/Apurer/go-storefront-api/internal/domains/cart/adapters/observability/service"

// Service decorates the cart service with tracing, logging, and metrics.
type Service struct {
	inner   cartports.Service
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

// New wraps the core cart service.
func New(inner cartports.Service, opts ...Option) cartports.Service {
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

func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (*cartdomain.Line, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddItem", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.String("product.id", productID),
		attribute.Int("cart.quantity", quantity),
	))
	defer span.End()
	line, err := s.inner.AddItem(ctx, userID, productID, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add cart item", slog.String("user_id", userID), slog.String("product_id", productID))
	}
	s.metrics.recordAdded(ctx, quantity)
	s.logInfo(ctx, "cart item added", slog.String("user_id", userID), slog.String("product_id", productID), slog.Int("quantity", line.Quantity))
	return line, nil
}

func (s *Service) SetQuantity(ctx context.Context, userID, productID string, quantity int) (*cartdomain.Line, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.SetQuantity", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.String("product.id", productID),
		attribute.Int("cart.quantity", quantity),
	))
	defer span.End()
	line, err := s.inner.SetQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update cart quantity", slog.String("user_id", userID), slog.String("product_id", productID))
	}
	if line == nil {
		s.metrics.recordRemoved(ctx)
	}
	return line, nil
}

func (s *Service) RemoveItem(ctx context.Context, userID, productID string) error {
	ctx, span := s.tracer.Start(ctx, "CartService.RemoveItem", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.String("product.id", productID),
	))
	defer span.End()
	if err := s.inner.RemoveItem(ctx, userID, productID); err != nil {
		return s.handleError(ctx, span, err, "failed to remove cart item", slog.String("user_id", userID), slog.String("product_id", productID))
	}
	s.metrics.recordRemoved(ctx)
	return nil
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	ctx, span := s.tracer.Start(ctx, "CartService.Clear", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()
	if err := s.inner.Clear(ctx, userID); err != nil {
		return s.handleError(ctx, span, err, "failed to clear cart", slog.String("user_id", userID))
	}
	s.metrics.recordCleared(ctx)
	return nil
}

func (s *Service) ListLines(ctx context.Context, userID string) ([]*cartdomain.Line, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.ListLines", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()
	lines, err := s.inner.ListLines(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list cart lines", slog.String("user_id", userID))
	}
	span.SetAttributes(attribute.Int("cart.lines", len(lines)))
	return lines, nil
}

func (s *Service) ListItems(ctx context.Context, userID string) ([]*cartdomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.ListItems", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()
	items, err := s.inner.ListItems(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list cart items", slog.String("user_id", userID))
	}
	span.SetAttributes(attribute.Int("cart.lines", len(items)))
	return items, nil
}

func (s *Service) Summary(ctx context.Context, userID string) (*cartdomain.Summary, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Summary", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()
	summary, err := s.inner.Summary(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to summarize cart", slog.String("user_id", userID))
	}
	span.SetAttributes(
		attribute.Int("cart.item_count", summary.ItemCount),
		attribute.String("cart.total", summary.Total.StringFixed(2)),
	)
	return summary, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	level := slog.LevelError
	if errors.Is(err, cartapp.ErrInvalidInput) ||
		errors.Is(err, cartapp.ErrProductNotFound) ||
		errors.Is(err, cartports.ErrNotFound) {
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
	itemsAdded   metric.Int64Counter
	itemsRemoved metric.Int64Counter
	cartsCleared metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	added, _ := m.Int64Counter("cart.service.items_added", metric.WithDescription("Units added to carts"))
	removed, _ := m.Int64Counter("cart.service.items_removed", metric.WithDescription("Cart lines removed"))
	cleared, _ := m.Int64Counter("cart.service.carts_cleared", metric.WithDescription("Carts cleared"))
	return serviceMetrics{itemsAdded: added, itemsRemoved: removed, cartsCleared: cleared}
}

func (m serviceMetrics) recordAdded(ctx context.Context, quantity int) {
	if m.itemsAdded != nil {
		m.itemsAdded.Add(ctx, int64(quantity))
	}
}

func (m serviceMetrics) recordRemoved(ctx context.Context) {
	if m.itemsRemoved != nil {
		m.itemsRemoved.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordCleared(ctx context.Context) {
	if m.cartsCleared != nil {
		m.cartsCleared.Add(ctx, 1)
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ cartports.Service = (*Service)(nil)
