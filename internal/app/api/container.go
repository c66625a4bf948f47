package api

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	cartmemory "github.com/Apurer/go-storefront-api/internal/domains/cart/adapters/memory"
	cartobs "github.com/Apurer/go-storefront-api/internal/domains/cart/adapters/observability"
	cartpostgres "github.com/Apurer/go-storefront-api/internal/domains/cart/adapters/persistence/postgres"
	cartapp "github.com/Apurer/go-storefront-api/internal/domains/cart/application"
	cartports "github.com/Apurer/go-storefront-api/internal/domains/cart/ports"
	catalogmemory "github.com/Apurer/go-storefront-api/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/Apurer/go-storefront-api/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/Apurer/go-storefront-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/go-storefront-api/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-storefront-api/internal/domains/catalog/ports"
	contactmemory "github.com/Apurer/go-storefront-api/internal/domains/contact/adapters/memory"
	contactobs "github.com/Apurer/go-storefront-api/internal/domains/contact/adapters/observability"
	contactpostgres "github.com/Apurer/go-storefront-api/internal/domains/contact/adapters/persistence/postgres"
	contactapp "github.com/Apurer/go-storefront-api/internal/domains/contact/application"
	contactports "github.com/Apurer/go-storefront-api/internal/domains/contact/ports"
	ordersmemory "github.com/Apurer/go-storefront-api/internal/domains/orders/adapters/memory"
	ordersrabbitmq "github.com/Apurer/go-storefront-api/internal/domains/orders/adapters/messaging/rabbitmq"
	ordersobs "github.com/Apurer/go-storefront-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-storefront-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/go-storefront-api/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-storefront-api/internal/domains/orders/ports"
	usermemory "github.com/Apurer/go-storefront-api/internal/domains/users/adapters/memory"
	userobs "github.com/Apurer/go-storefront-api/internal/domains/users/adapters/observability"
	userpostgres "github.com/Apurer/go-storefront-api/internal/domains/users/adapters/persistence/postgres"
	userredis "github.com/Apurer/go-storefront-api/internal/domains/users/adapters/redis"
	userapp "github.com/Apurer/go-storefront-api/internal/domains/users/application"
	userports "github.com/Apurer/go-storefront-api/internal/domains/users/ports"
	"github.com/Apurer/go-storefront-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-storefront-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-storefront-api/internal/platform/postgres"
	platformrabbitmq "github.com/Apurer/go-storefront-api/internal/platform/rabbitmq"
	platformredis "github.com/Apurer/go-storefront-api/internal/platform/redis"
)

// Services holds the decorated domain services shared by the API and the worker.
type Services struct {
	Catalog catalogports.Service
	Cart    cartports.Service
	Orders  ordersports.Service
	Users   userports.Service
	Contact contactports.Service
	// Shared is true when repositories live in Postgres and other processes see the same data.
	Shared bool
}

// BuildServices connects every configured backend and wires the services on top of them.
// The returned cleanup closes connections in reverse order.
func BuildServices(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (*Services, func(), error) {
	logger := effectiveLogger(instruments)
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	db, closeDB := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, logger)
	cleanups = append(cleanups, closeDB)
	if db != nil {
		if err := migrations.Run(db); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	catalogRepo, cartRepo, orderRepo, userRepo, contactRepo := buildRepositories(db)

	catalogService := catalogobs.New(
		catalogapp.NewService(catalogRepo),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)
	cartService := cartobs.New(
		cartapp.NewService(cartRepo, catalogService, cartapp.WithTaxRate(cfg.TaxRate)),
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)

	transactor, err := buildTransactor(db)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	publisher, closePublisher := buildPublisher(cfg, logger)
	cleanups = append(cleanups, closePublisher)
	orderService := ordersobs.New(
		ordersapp.NewService(orderRepo, cartService, catalogService,
			ordersapp.WithTransactor(transactor),
			ordersapp.WithPublisher(publisher),
			ordersapp.WithLogger(logger),
			ordersapp.WithTaxRate(cfg.TaxRate),
		),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	sessions, closeSessions := buildSessionStore(ctx, cfg, db, logger)
	cleanups = append(cleanups, closeSessions)
	userService := userobs.New(
		userapp.NewService(userRepo, sessions, userapp.WithSessionTTL(cfg.SessionTTL)),
		userobs.WithLogger(logger),
		userobs.WithTracer(instruments.Tracer("internal.users.application")),
		userobs.WithMeter(instruments.Meter("internal.users.application")),
	)
	contactService := contactobs.New(
		contactapp.NewService(contactRepo),
		contactobs.WithLogger(logger),
		contactobs.WithTracer(instruments.Tracer("internal.contact.application")),
		contactobs.WithMeter(instruments.Meter("internal.contact.application")),
	)

	return &Services{
		Catalog: catalogService,
		Cart:    cartService,
		Orders:  orderService,
		Users:   userService,
		Contact: contactService,
		Shared:  db != nil,
	}, cleanup, nil
}

func buildRepositories(db *gorm.DB) (catalogports.Repository, cartports.Repository, ordersports.Repository, userports.Repository, contactports.Repository) {
	if db == nil {
		return catalogmemory.NewRepository(),
			cartmemory.NewRepository(),
			ordersmemory.NewRepository(),
			usermemory.NewRepository(),
			contactmemory.NewRepository()
	}
	return catalogpostgres.NewRepository(db),
		cartpostgres.NewRepository(db),
		orderspostgres.NewRepository(db),
		userpostgres.NewRepository(db),
		contactpostgres.NewRepository(db)
}

func buildTransactor(db *gorm.DB) (ordersports.Transactor, error) {
	if db == nil {
		return ordersmemory.NewTransactor(), nil
	}
	return platformpostgres.NewTransactor(db)
}

func buildPublisher(cfg Config, logger *slog.Logger) (ordersports.EventPublisher, func()) {
	conn, closeConn := platformrabbitmq.DialOrFallback(cfg.RabbitMQURL, logger)
	if conn == nil {
		return ordersports.NoopEventPublisher, closeConn
	}
	publisher, err := ordersrabbitmq.NewPublisher(conn)
	if err != nil {
		logger.Warn("failed to open rabbitmq publisher, order events disabled", slog.String("error", err.Error()))
		return ordersports.NoopEventPublisher, closeConn
	}
	return publisher, func() {
		_ = publisher.Close()
		closeConn()
	}
}

// buildSessionStore prefers Redis, then PostgreSQL, then process memory.
func buildSessionStore(ctx context.Context, cfg Config, db *gorm.DB, logger *slog.Logger) (userports.SessionStore, func()) {
	client, closeClient := platformredis.ConnectOrFallback(ctx, platformredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, logger)
	if client != nil {
		logger.Info("session store configured with redis")
		return userredis.NewSessionStore(client), closeClient
	}
	if db != nil {
		logger.Info("session store configured with postgres")
		return userpostgres.NewSessionStore(db), func() {}
	}
	logger.Warn("sessions are kept in process memory and will not survive a restart")
	return usermemory.NewSessionStore(), func() {}
}
