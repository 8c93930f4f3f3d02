package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tanzeelaayaz69/kashcart/internal/storage"
)

type Config struct {
	HTTPPort        string
	LogLevel        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	Storage         storage.Config
	CatalogSeedPath string
	KafkaBrokers    []string

	CartIdleTTL           time.Duration
	TrackingInterval      time.Duration
	RiderInterval         time.Duration
	RateLimitRPS          float64
	PaymentDeclinePercent int
}

func loadConfig() (*Config, error) {
	var errs []string
	duration := func(key, def string) time.Duration {
		d, err := time.ParseDuration(getEnv(key, def))
		if err != nil || d < 0 {
			errs = append(errs, fmt.Sprintf("%s: invalid duration %q", key, os.Getenv(key)))
		}
		return d
	}
	integer := func(key, def string) int {
		n, err := strconv.Atoi(getEnv(key, def))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: invalid integer %q", key, os.Getenv(key)))
		}
		return n
	}

	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		Storage: storage.Config{
			Driver:     getEnv("STORAGE_DRIVER", "memory"),
			SQLitePath: getEnv("SQLITE_PATH", "kashcart.db"),
			Postgres: storage.Credentials{
				Host:     getEnv("DB_HOST", "localhost"),
				Port:     integer("DB_PORT", "5432"),
				User:     getEnv("DB_USER", "postgres"),
				Password: getEnv("DB_PASSWORD", "postgres"),
				DBName:   getEnv("DB_NAME", "kashcart"),
			},
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisTTL:      duration("REDIS_TTL", "0s"),
			MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			MongoDB:       getEnv("MONGO_DB_NAME", "kashcart"),
			Latency:       duration("STORAGE_LATENCY", "0s"),
			Breaker:       storage.DefaultBreakerSettings(),
		},
		CatalogSeedPath:       getEnv("CATALOG_SEED_PATH", ""),
		KafkaBrokers:          splitList(getEnv("KAFKA_BROKERS", "")),
		CartIdleTTL:           duration("CART_IDLE_TTL", "2h"),
		TrackingInterval:      duration("TRACKING_INTERVAL", "3s"),
		RiderInterval:         duration("RIDER_INTERVAL", "2s"),
		PaymentDeclinePercent: integer("PAYMENT_DECLINE_PERCENT", "0"),
	}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "20"), 64)
	if err != nil || rps < 0 {
		errs = append(errs, fmt.Sprintf("RATE_LIMIT_RPS: invalid rate %q", os.Getenv("RATE_LIMIT_RPS")))
	}
	cfg.RateLimitRPS = rps

	if cfg.PaymentDeclinePercent < 0 || cfg.PaymentDeclinePercent > 100 {
		errs = append(errs, "PAYMENT_DECLINE_PERCENT: must be between 0 and 100")
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
