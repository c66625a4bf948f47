package redis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Options describe how to reach the Redis server.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Connect opens a Redis client and verifies connectivity.
func Connect(ctx context.Context, opts Options) (*goredis.Client, error) {
	if strings.TrimSpace(opts.Addr) == "" {
		return nil, fmt.Errorf("redis address is empty")
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// ConnectOrFallback returns nil with a no-op cleanup when Redis is not configured or unreachable.
func ConnectOrFallback(ctx context.Context, opts Options, logger *slog.Logger) (*goredis.Client, func()) {
	if strings.TrimSpace(opts.Addr) == "" {
		return nil, func() {}
	}
	client, err := Connect(ctx, opts)
	if err != nil {
		if logger != nil {
			logger.Warn("failed to connect to redis, sessions will use the next available store",
				slog.String("addr", opts.Addr), slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	if logger != nil {
		logger.Info("redis connection established", slog.String("addr", opts.Addr))
	}
	return client, func() { _ = client.Close() }
}
