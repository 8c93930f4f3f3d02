package order

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_AdvanceCapsAtFinalStep(t *testing.T) {
	tr := NewTracker()
	assert.Equal(t, StepConfirmed, tr.Step())

	tr.Advance()
	tr.Advance()
	assert.Equal(t, StepOutForDelivery, tr.Advance())
	assert.True(t, tr.Done())

	assert.Equal(t, StepOutForDelivery, tr.Advance(), "no overflow past the final step")
	assert.Equal(t, StepOutForDelivery, tr.Step())
}

func TestTracker_NewTrackerStartsOver(t *testing.T) {
	tr := NewTracker()
	tr.Advance()
	tr.Advance()

	assert.Equal(t, StepConfirmed, NewTracker().Step())
}

func TestTrackingStep_Title(t *testing.T) {
	assert.Equal(t, "Order Confirmed", StepConfirmed.Title())
	assert.Equal(t, "Order Packed", StepPacked.Title())
	assert.Equal(t, "Rider Picked Up", StepPickedUp.Title())
	assert.Equal(t, "Out for Delivery", StepOutForDelivery.String())
	assert.Equal(t, "Unknown", TrackingStep(7).Title())
}

func TestTracker_RunEmitsEveryStep(t *testing.T) {
	clock := clockwork.NewFakeClock()
	tr := NewTracker()

	steps := make(chan TrackingStep, 8)
	done := make(chan error, 1)
	go func() {
		done <- tr.Run(context.Background(), clock, DefaultTrackingInterval, func(s TrackingStep) {
			steps <- s
		})
	}()

	assert.Equal(t, StepConfirmed, receive(t, steps))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	for want := StepPacked; want <= FinalStep; want++ {
		require.NoError(t, clock.BlockUntilContext(ctx, 1))
		clock.Advance(DefaultTrackingInterval)
		assert.Equal(t, want, receive(t, steps))
	}

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop at the final step")
	}
	assert.Empty(t, steps)
}

func TestTracker_RunStopsOnCancel(t *testing.T) {
	clock := clockwork.NewFakeClock()
	tr := NewTracker()
	ctx, cancel := context.WithCancel(context.Background())

	steps := make(chan TrackingStep, 8)
	done := make(chan error, 1)
	go func() {
		done <- tr.Run(ctx, clock, time.Second, func(s TrackingStep) { steps <- s })
	}()
	receive(t, steps)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run ignored cancellation")
	}
	assert.Equal(t, StepConfirmed, tr.Step())
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for value")
	}
	var zero T
	return zero
}
