package storage

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

type latencyStore struct {
	next  Store
	delay time.Duration
	clock clockwork.Clock
}

// WithLatency delays every call by a fixed amount before reaching next. The
// wait ends early with ctx's error if ctx is cancelled first.
func WithLatency(next Store, delay time.Duration, clock clockwork.Clock) Store {
	if delay <= 0 {
		return next
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &latencyStore{next: next, delay: delay, clock: clock}
}

func (l *latencyStore) wait(ctx context.Context) error {
	select {
	case <-l.clock.After(l.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *latencyStore) Load(ctx context.Context, key string) ([]byte, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	return l.next.Load(ctx, key)
}

func (l *latencyStore) Save(ctx context.Context, key string, record []byte) error {
	if err := l.wait(ctx); err != nil {
		return err
	}
	return l.next.Save(ctx, key, record)
}

func (l *latencyStore) Remove(ctx context.Context, key string) error {
	if err := l.wait(ctx); err != nil {
		return err
	}
	return l.next.Remove(ctx, key)
}

func (l *latencyStore) Close() error {
	return l.next.Close()
}
