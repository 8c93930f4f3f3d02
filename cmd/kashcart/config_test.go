package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 5432, cfg.Storage.Postgres.Port)
	assert.Zero(t, cfg.Storage.Latency)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, 2*time.Hour, cfg.CartIdleTTL)
	assert.Equal(t, 3*time.Second, cfg.TrackingInterval)
	assert.Equal(t, 2*time.Second, cfg.RiderInterval)
	assert.Equal(t, 20.0, cfg.RateLimitRPS)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/k.db")
	t.Setenv("STORAGE_LATENCY", "250ms")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("TRACKING_INTERVAL", "1s")
	t.Setenv("RATE_LIMIT_RPS", "0")

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/k.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 250*time.Millisecond, cfg.Storage.Latency)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, time.Second, cfg.TrackingInterval)
	assert.Zero(t, cfg.RateLimitRPS)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("CART_IDLE_TTL", "soon")
	t.Setenv("DB_PORT", "abc")
	t.Setenv("PAYMENT_DECLINE_PERCENT", "150")

	_, err := loadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CART_IDLE_TTL")
	assert.Contains(t, err.Error(), "DB_PORT")
	assert.Contains(t, err.Error(), "PAYMENT_DECLINE_PERCENT")
}

func TestLoadSeed_Default(t *testing.T) {
	seed, err := loadSeed("")
	require.NoError(t, err)
	assert.NotEmpty(t, seed.Marts)

	_, err = loadSeed("/does/not/exist.yaml")
	assert.Error(t, err)
}
