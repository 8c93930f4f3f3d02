package order

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	DefaultRiderInterval = 2 * time.Second

	// riderStepFraction is the share of the remaining distance covered per tick.
	riderStepFraction = 0.05
	// arrivalThreshold is how close, in degrees on both axes, counts as arrived.
	arrivalThreshold = 0.0005
)

type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

var (
	// RiderStart is where every simulated courier sets off from.
	RiderStart = Position{Lat: 34.0736, Lng: 74.7873}
	// DefaultDestination is used when the customer location is unknown.
	DefaultDestination = Position{Lat: 34.0836, Lng: 74.7973}
)

// Rider simulates a courier easing toward a destination.
type Rider struct {
	mu          sync.Mutex
	pos         Position
	destination Position
}

func NewRider(destination Position) *Rider {
	return &Rider{pos: RiderStart, destination: destination}
}

func (r *Rider) Position() Position {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pos
}

func (r *Rider) arrived() bool {
	return math.Abs(r.destination.Lat-r.pos.Lat) < arrivalThreshold &&
		math.Abs(r.destination.Lng-r.pos.Lng) < arrivalThreshold
}

func (r *Rider) Arrived() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.arrived()
}

// Step moves the rider a fixed fraction of the remaining distance. It
// reports false, without moving, once the rider has arrived.
func (r *Rider) Step() (Position, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.arrived() {
		return r.pos, false
	}
	r.pos.Lat += (r.destination.Lat - r.pos.Lat) * riderStepFraction
	r.pos.Lng += (r.destination.Lng - r.pos.Lng) * riderStepFraction
	return r.pos, true
}

// Run emits a position on every tick the rider moves, returning nil on
// arrival or ctx.Err() when cancelled.
func (r *Rider) Run(ctx context.Context, clock clockwork.Clock, interval time.Duration, emit func(Position)) error {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = DefaultRiderInterval
	}

	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
			pos, moved := r.Step()
			if !moved {
				return nil
			}
			emit(pos)
		}
	}
}
