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

	catalogapp "github.com/Apurer/go-storefront-api/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/go-storefront-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-storefront-api/internal/domains/catalog/ports"
)

const tracerName = "github.com/Apurer/go-storefront-api/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
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

// New wraps the core catalog service.
func New(inner catalogports.Service, opts ...Option) catalogports.Service {
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

func (s *Service) GetByID(ctx context.Context, id string) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetByID", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()
	product, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to get product", slog.String("product_id", id))
	}
	return product, nil
}

func (s *Service) ListAll(ctx context.Context) ([]*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListAll")
	defer span.End()
	products, err := s.inner.ListAll(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("product.count", len(products)))
	return products, nil
}

func (s *Service) ListByCategory(ctx context.Context, category string) ([]*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListByCategory", trace.WithAttributes(attribute.String("product.category", category)))
	defer span.End()
	products, err := s.inner.ListByCategory(ctx, category)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products by category", slog.String("category", category))
	}
	span.SetAttributes(attribute.Int("product.count", len(products)))
	return products, nil
}

func (s *Service) Create(ctx context.Context, product *catalogdomain.Product) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Create")
	defer span.End()
	result, err := s.inner.Create(ctx, product)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create product")
	}
	s.metrics.recordCreated(ctx, 1)
	s.logInfo(ctx, "product created", slog.String("product_id", result.ID), slog.String("category", result.Category))
	return result, nil
}

func (s *Service) Seed(ctx context.Context) (int, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Seed")
	defer span.End()
	created, err := s.inner.Seed(ctx)
	if err != nil {
		return created, s.handleError(ctx, span, err, "failed to seed products", slog.Int("created", created))
	}
	span.SetAttributes(attribute.Int("product.created", created))
	s.metrics.recordCreated(ctx, created)
	s.logInfo(ctx, "catalog seeded", slog.Int("created", created))
	return created, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	level := slog.LevelError
	if errors.Is(err, catalogports.ErrNotFound) || errors.Is(err, catalogapp.ErrInvalidInput) {
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
	productsCreated metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("catalog.service.products_created", metric.WithDescription("Number of products added to the catalog"))
	return serviceMetrics{productsCreated: created}
}

func (m serviceMetrics) recordCreated(ctx context.Context, n int) {
	if m.productsCreated != nil && n > 0 {
		m.productsCreated.Add(ctx, int64(n))
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ catalogports.Service = (*Service)(nil)
