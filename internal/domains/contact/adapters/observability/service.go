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

	contactapp "github.com/Apurer/go-storefront-api/internal/domains/contact/application"
	contactdomain "github.com/Apurer/go-storefront-api/internal/domains/contact/domain"
	contactports "github.com/Apurer/go-storefront-api/internal/domains/contact/ports"
)

const tracerName = "github.com/Apurer/go-storefront-api/internal/domains/contact/adapters/observability/service"

// Service decorates the contact service with tracing, logging, and metrics.
type Service struct {
	inner     contactports.Service
	tracer    trace.Tracer
	logger    *slog.Logger
	submitted metric.Int64Counter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m != nil {
			s.submitted, _ = m.Int64Counter("contact.service.messages_submitted", metric.WithDescription("Contact messages stored"))
		}
	}
}

func New(inner contactports.Service, opts ...Option) contactports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) Submit(ctx context.Context, input contactports.SubmitInput) (*contactdomain.Contact, error) {
	ctx, span := s.tracer.Start(ctx, "ContactService.Submit", trace.WithAttributes(attribute.Bool("contact.has_order", input.OrderNumber != "")))
	defer span.End()
	contact, err := s.inner.Submit(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		level := slog.LevelError
		if errors.Is(err, contactapp.ErrInvalidInput) {
			level = slog.LevelWarn
		}
		s.logger.LogAttrs(ctx, level, "failed to submit contact message", slog.String("error", err.Error()))
		return nil, err
	}
	if s.submitted != nil {
		s.submitted.Add(ctx, 1)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "contact message received", slog.String("contact_id", contact.ID))
	return contact, nil
}

var _ contactports.Service = (*Service)(nil)
