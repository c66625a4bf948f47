package api

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
)

var configKeys = []string{
	"PORT", "POSTGRES_DSN", "REDIS_ADDR", "REDIS_PASSWORD", "RABBITMQ_URL",
	"TEMPORAL_ADDRESS", "TEMPORAL_NAMESPACE", "TEMPORAL_DISABLED",
	"SESSION_TTL_HOURS", "SESSION_COOKIE_SECURE", "TAX_RATE",
	"DB_QUERY_TIMEOUT_SECONDS", "SESSION_PURGE_INTERVAL_MINUTES",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.PostgresDSN)
	assert.Equal(t, client.DefaultHostPort, cfg.TemporalAddress)
	assert.Equal(t, client.DefaultNamespace, cfg.TemporalNamespace)
	assert.False(t, cfg.TemporalDisabled)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "0.08", cfg.TaxRate.String())
	assert.Equal(t, 10*time.Second, cfg.QueryTimeout)
	assert.Zero(t, cfg.SessionPurgeInterval)
}

func TestLoadConfigOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("TEMPORAL_DISABLED", "true")
	t.Setenv("SESSION_TTL_HOURS", "12")
	t.Setenv("SESSION_COOKIE_SECURE", "1")
	t.Setenv("TAX_RATE", "0.2")
	t.Setenv("DB_QUERY_TIMEOUT_SECONDS", "3")
	t.Setenv("SESSION_PURGE_INTERVAL_MINUTES", "15")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.True(t, cfg.TemporalDisabled)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.SessionCookieSecure)
	assert.True(t, cfg.TaxRate.Equal(decimal.RequireFromString("0.2")))
	assert.Equal(t, 3*time.Second, cfg.QueryTimeout)
	assert.Equal(t, 15*time.Minute, cfg.SessionPurgeInterval)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":                           "http",
		"SESSION_TTL_HOURS":              "-1",
		"DB_QUERY_TIMEOUT_SECONDS":       "soon",
		"SESSION_PURGE_INTERVAL_MINUTES": "0",
		"TAX_RATE":                       "1.5",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(key, value)

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}
