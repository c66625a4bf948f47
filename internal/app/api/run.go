package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	storefrontserver "github.com/Apurer/go-storefront-api/go"
	ordersworkflows "github.com/Apurer/go-storefront-api/internal/domains/orders/adapters/workflows"
	ordersports "github.com/Apurer/go-storefront-api/internal/domains/orders/ports"
	platformobservability "github.com/Apurer/go-storefront-api/internal/platform/observability"
	platformtemporal "github.com/Apurer/go-storefront-api/internal/platform/temporal"
)

const shutdownTimeout = 10 * time.Second

// Run boots the storefront HTTP API and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	const serviceName = "storefront-api"
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	services, cleanup, err := BuildServices(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer cleanup()

	checkout, closeCheckout := buildCheckout(cfg, services, instruments)
	defer closeCheckout()

	handlers := storefrontserver.ApiHandleFunctions{
		ProductAPI: storefrontserver.NewProductAPI(services.Catalog),
		CartAPI:    storefrontserver.NewCartAPI(services.Cart),
		OrderAPI:   storefrontserver.NewOrderAPI(services.Orders, checkout),
		ContactAPI: storefrontserver.NewContactAPI(services.Contact),
		AuthAPI:    storefrontserver.NewAuthAPI(services.Users, cfg.SessionCookieSecure),
	}
	router := storefrontserver.NewRouter(handlers,
		otelgin.Middleware(serviceName),
		storefrontserver.RequestTimeout(cfg.QueryTimeout),
	)

	server := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("storefront API listening", slog.String("addr", server.Addr))
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("storefront API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down storefront API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// buildCheckout uses the Temporal orchestrator only when the worker shares the API's store.
// Otherwise checkout runs inline in the API process.
func buildCheckout(cfg Config, services *Services, instruments *platformobservability.Instruments) (ordersports.CheckoutOrchestrator, func()) {
	logger := effectiveLogger(instruments)
	inline := ordersworkflows.NewInlineCheckout(services.Orders)
	if !services.Shared {
		if !cfg.TemporalDisabled {
			logger.Warn("Temporal checkout needs a shared Postgres store, running checkout inline")
		}
		return inline, func() {}
	}
	temporalClient, err := platformtemporal.Dial(platformtemporal.Options{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Disabled:  cfg.TemporalDisabled,
	}, instruments)
	if err != nil {
		logger.Warn("Temporal workflows unavailable, running checkout inline", slog.String("error", err.Error()))
		return inline, func() {}
	}
	logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	return ordersworkflows.NewTemporalCheckout(temporalClient), temporalClient.Close
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
