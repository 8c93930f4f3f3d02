package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithLatency_WaitsOnClock(t *testing.T) {
	clock := clockwork.NewFakeClock()
	inner := NewMemoryStore()
	require.NoError(t, inner.Save(context.Background(), "k", []byte("v")))
	s := WithLatency(inner, 500*time.Millisecond, clock)

	done := make(chan []byte, 1)
	go func() {
		v, _ := s.Load(context.Background(), "k")
		done <- v
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	select {
	case <-done:
		t.Fatal("load returned before the delay elapsed")
	default:
	}

	clock.Advance(500 * time.Millisecond)
	select {
	case v := <-done:
		assert.Equal(t, "v", string(v))
	case <-time.After(time.Second):
		t.Fatal("load did not return after the delay")
	}
}

func TestWithLatency_ContextCancelled(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := WithLatency(NewMemoryStore(), time.Minute, clock)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Save(ctx, "k", []byte("v"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithLatency_ZeroDelayIsPassthrough(t *testing.T) {
	inner := NewMemoryStore()
	assert.Same(t, Store(inner), WithLatency(inner, 0, nil))
}

func TestWithBreaker_OpensAfterFailures(t *testing.T) {
	inner := &failingStore{err: errors.New("connection refused")}
	s := WithBreaker(inner, "test", BreakerSettings{ConsecutiveFailures: 3, OpenTimeout: time.Minute}, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.Load(ctx, "k")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnavailable)
	}
	assert.Equal(t, 3, inner.calls)

	_, err := s.Load(ctx, "k")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, s.Save(ctx, "k", nil), ErrUnavailable)
	assert.Equal(t, 3, inner.calls, "open breaker must not reach the backend")
}

func TestWithBreaker_NotFoundIsNotAFailure(t *testing.T) {
	inner := &failingStore{err: ErrNotFound}
	s := WithBreaker(inner, "test", BreakerSettings{ConsecutiveFailures: 2, OpenTimeout: time.Minute}, zerolog.Nop())

	for i := 0; i < 5; i++ {
		_, err := s.Load(context.Background(), "k")
		assert.ErrorIs(t, err, ErrNotFound)
	}
	assert.Equal(t, 5, inner.calls)
}
