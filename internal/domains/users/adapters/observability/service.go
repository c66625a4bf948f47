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

	userapp "github.com/Apurer/go-storefront-api/internal/domains/users/application"
	userdomain "github.com/Apurer/go-storefront-api/internal/domains/users/domain"
	userports "github.com/Apurer/go-storefront-api/internal/domains/users/ports"
)

const tracerName = "github.com/Apurer/go-storefront-api/internal/domains/users/adapters/observability/service"

// Service decorates the user service with tracing, logging, and metrics.
type Service struct {
	inner   userports.Service
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

// New wraps the core user service.
func New(inner userports.Service, opts ...Option) userports.Service {
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

func (s *Service) Register(ctx context.Context, input userports.RegisterInput) (*userdomain.User, *userdomain.Session, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Register", trace.WithAttributes(attribute.String("user.username", input.Username)))
	defer span.End()
	user, session, err := s.inner.Register(ctx, input)
	if err != nil {
		return nil, nil, s.handleError(ctx, span, err, "failed to register user", slog.String("username", input.Username))
	}
	span.SetAttributes(attribute.String("user.id", user.ID))
	s.metrics.recordRegistration(ctx)
	s.logInfo(ctx, "user registered", slog.String("user_id", user.ID), slog.String("username", user.Username))
	return user, session, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (*userdomain.User, *userdomain.Session, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Login", trace.WithAttributes(attribute.String("user.username", username)))
	defer span.End()
	user, session, err := s.inner.Login(ctx, username, password)
	if err != nil {
		s.metrics.recordLogin(ctx, false)
		return nil, nil, s.handleError(ctx, span, err, "login failed", slog.String("username", username))
	}
	span.SetAttributes(attribute.String("user.id", user.ID))
	s.metrics.recordLogin(ctx, true)
	s.logInfo(ctx, "user logged in", slog.String("user_id", user.ID))
	return user, session, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	ctx, span := s.tracer.Start(ctx, "UserService.Logout")
	defer span.End()
	if err := s.inner.Logout(ctx, token); err != nil {
		return s.handleError(ctx, span, err, "logout failed")
	}
	return nil
}

func (s *Service) CurrentUser(ctx context.Context, token string) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.CurrentUser")
	defer span.End()
	user, err := s.inner.CurrentUser(ctx, token)
	if err != nil {
		if errors.Is(err, userapp.ErrAuthentication) {
			span.SetAttributes(attribute.Bool("user.authenticated", false))
			return nil, err
		}
		return nil, s.handleError(ctx, span, err, "failed to resolve session")
	}
	span.SetAttributes(attribute.String("user.id", user.ID), attribute.Bool("user.authenticated", true))
	return user, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	level := slog.LevelError
	if errors.Is(err, userapp.ErrInvalidInput) || errors.Is(err, userapp.ErrAuthentication) {
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
	registrations metric.Int64Counter
	logins        metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	registrations, _ := m.Int64Counter("users.service.registrations", metric.WithDescription("Users registered"))
	logins, _ := m.Int64Counter("users.service.logins", metric.WithDescription("Login attempts by outcome"))
	return serviceMetrics{registrations: registrations, logins: logins}
}

func (m serviceMetrics) recordRegistration(ctx context.Context) {
	if m.registrations != nil {
		m.registrations.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordLogin(ctx context.Context, success bool) {
	if m.logins != nil {
		m.logins.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ userports.Service = (*Service)(nil)
