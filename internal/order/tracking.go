package order

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultTrackingInterval is the time between tracking steps.
const DefaultTrackingInterval = 3 * time.Second

type TrackingStep int

const (
	StepConfirmed TrackingStep = iota
	StepPacked
	StepPickedUp
	StepOutForDelivery
)

// FinalStep is where tracking stops advancing.
const FinalStep = StepOutForDelivery

var stepTitles = [...]string{
	StepConfirmed:      "Order Confirmed",
	StepPacked:         "Order Packed",
	StepPickedUp:       "Rider Picked Up",
	StepOutForDelivery: "Out for Delivery",
}

func (s TrackingStep) Title() string {
	if s < StepConfirmed || s > FinalStep {
		return "Unknown"
	}
	return stepTitles[s]
}

func (s TrackingStep) String() string {
	return s.Title()
}

// Tracker is the per-view progress indicator. It is never persisted and has
// no relation to the stored order status; every view starts a fresh one.
type Tracker struct {
	mu   sync.Mutex
	step TrackingStep
}

func NewTracker() *Tracker {
	return &Tracker{step: StepConfirmed}
}

func (t *Tracker) Step() TrackingStep {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.step
}

// Advance moves one step forward and returns the new step. It stays on
// FinalStep once reached.
func (t *Tracker) Advance() TrackingStep {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.step < FinalStep {
		t.step++
	}
	return t.step
}

func (t *Tracker) Done() bool {
	return t.Step() == FinalStep
}

// Run emits the current step, then advances and emits once per interval
// until FinalStep is emitted or ctx is done. It returns ctx.Err() when
// stopped early.
func (t *Tracker) Run(ctx context.Context, clock clockwork.Clock, interval time.Duration, emit func(TrackingStep)) error {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = DefaultTrackingInterval
	}

	emit(t.Step())
	if t.Done() {
		return nil
	}

	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
			step := t.Advance()
			emit(step)
			if step == FinalStep {
				return nil
			}
		}
	}
}
