package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

type BreakerSettings struct {
	// ConsecutiveFailures trips the breaker.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{ConsecutiveFailures: 5, OpenTimeout: 10 * time.Second}
}

type breakerStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker[[]byte]
}

// WithBreaker fails fast with ErrUnavailable while next keeps erroring.
// ErrNotFound and cancelled contexts do not count as failures.
func WithBreaker(next Store, name string, settings BreakerSettings, log zerolog.Logger) Store {
	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrNotFound) ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("storage breaker state changed")
		},
	})
	return &breakerStore{next: next, cb: cb}
}

func (b *breakerStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := b.cb.Execute(func() ([]byte, error) {
		return b.next.Load(ctx, key)
	})
	return data, mapBreakerErr(err)
}

func (b *breakerStore) Save(ctx context.Context, key string, record []byte) error {
	_, err := b.cb.Execute(func() ([]byte, error) {
		return nil, b.next.Save(ctx, key, record)
	})
	return mapBreakerErr(err)
}

func (b *breakerStore) Remove(ctx context.Context, key string) error {
	_, err := b.cb.Execute(func() ([]byte, error) {
		return nil, b.next.Remove(ctx, key)
	})
	return mapBreakerErr(err)
}

func (b *breakerStore) Close() error {
	return b.next.Close()
}

func mapBreakerErr(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
