package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.temporal.io/sdk/client"

	userapp "github.com/Apurer/go-storefront-api/internal/domains/users/application"
	"github.com/Apurer/go-storefront-api/internal/shared/pricing"
)

// Config carries environment-driven settings for the storefront processes.
type Config struct {
	Port                string
	PostgresDSN         string
	RedisAddr           string
	RedisPassword       string
	RabbitMQURL         string
	TemporalAddress     string
	TemporalNamespace   string
	TemporalDisabled    bool
	SessionTTL          time.Duration
	SessionCookieSecure bool
	TaxRate             decimal.Decimal
	// QueryTimeout bounds each request context, and with it every store call.
	QueryTimeout         time.Duration
	SessionPurgeInterval time.Duration
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:                envDefault("PORT", "8080"),
		PostgresDSN:         strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		RedisAddr:           strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RabbitMQURL:         strings.TrimSpace(os.Getenv("RABBITMQ_URL")),
		TemporalAddress:     envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace:   envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:    isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		SessionTTL:          userapp.DefaultSessionTTL,
		SessionCookieSecure: isTruthy(os.Getenv("SESSION_COOKIE_SECURE")),
		TaxRate:             pricing.DefaultTaxRate,
		QueryTimeout:        10 * time.Second,
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}
	hours, err := positiveInt("SESSION_TTL_HOURS")
	if err != nil {
		return Config{}, err
	}
	if hours > 0 {
		cfg.SessionTTL = time.Duration(hours) * time.Hour
	}
	seconds, err := positiveInt("DB_QUERY_TIMEOUT_SECONDS")
	if err != nil {
		return Config{}, err
	}
	if seconds > 0 {
		cfg.QueryTimeout = time.Duration(seconds) * time.Second
	}
	minutes, err := positiveInt("SESSION_PURGE_INTERVAL_MINUTES")
	if err != nil {
		return Config{}, err
	}
	cfg.SessionPurgeInterval = time.Duration(minutes) * time.Minute
	if raw := strings.TrimSpace(os.Getenv("TAX_RATE")); raw != "" {
		rate, err := decimal.NewFromString(raw)
		if err == nil {
			err = pricing.ValidateRate(rate)
		}
		if err != nil || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return Config{}, fmt.Errorf("TAX_RATE must be a decimal in [0, 1), got %q", raw)
		}
		cfg.TaxRate = rate
	}
	return cfg, nil
}

// positiveInt returns 0 when key is unset.
func positiveInt(key string) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return n, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
