package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Apurer/go-storefront-api/internal/app/api"
	userpostgres "github.com/Apurer/go-storefront-api/internal/domains/users/adapters/persistence/postgres"
	"github.com/Apurer/go-storefront-api/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-storefront-api/internal/platform/postgres"
)

const purgeTimeout = 30 * time.Second

// The purger runs once, or every SESSION_PURGE_INTERVAL_MINUTES until interrupted.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("service", "storefront-session-purger"))
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	db, cleanup := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge sessions")
	}
	if err := migrations.Run(db); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}
	store := userpostgres.NewSessionStore(db)

	purge := func() error {
		purgeCtx, cancel := context.WithTimeout(ctx, purgeTimeout)
		defer cancel()
		removed, err := store.PurgeExpired(purgeCtx)
		if err != nil {
			return err
		}
		logger.Info("session purge completed", slog.Int64("removed", removed))
		return nil
	}

	if cfg.SessionPurgeInterval <= 0 {
		if err := purge(); err != nil {
			log.Fatalf("failed to purge sessions: %v", err)
		}
		return
	}
	ticker := time.NewTicker(cfg.SessionPurgeInterval)
	defer ticker.Stop()
	for {
		if err := purge(); err != nil {
			logger.Error("session purge failed", slog.String("error", err.Error()))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
