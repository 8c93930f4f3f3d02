package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

type Config struct {
	Driver        string
	SQLitePath    string
	Postgres      Credentials
	RedisAddr     string
	RedisPassword string
	RedisTTL      time.Duration
	MongoURI      string
	MongoDB       string
	// Latency is added in front of every call; zero disables it.
	Latency time.Duration
	Breaker BreakerSettings
}

// Open builds the configured backend. Network backends are wrapped in a
// circuit breaker.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (Store, error) {
	var (
		s      Store
		remote bool
		err    error
	)
	switch cfg.Driver {
	case "", "memory":
		s = NewMemoryStore()
	case "sqlite":
		s, err = NewSQLiteStore(cfg.SQLitePath)
	case "postgres":
		s, err = NewPostgresStore(&cfg.Postgres)
		remote = true
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if e2 := client.Ping(ctx).Err(); e2 != nil {
			client.Close()
			return nil, fmt.Errorf("redis connection failed: %w", e2)
		}
		s = NewRedisStore(client, "kashcart", cfg.RedisTTL)
		remote = true
	case "mongo":
		db, e2 := ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDB)
		if e2 != nil {
			return nil, e2
		}
		s = NewMongoStore(db)
		remote = true
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if remote {
		settings := cfg.Breaker
		if settings.ConsecutiveFailures == 0 {
			settings = DefaultBreakerSettings()
		}
		s = WithBreaker(s, "storage-"+cfg.Driver, settings, log)
	}
	return WithLatency(s, cfg.Latency, clockwork.NewRealClock()), nil
}
