// Package cart holds the per-session shopping cart: an insertion-ordered set
// of lines keyed by product id, plus the registry that owns one cart per
// device session.
package cart

import (
	"errors"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/tanzeelaayaz69/kashcart/internal/domain"
)

// MaxLineQuantity bounds a single line.
const MaxLineQuantity = 99

var ErrUnknownProduct = errors.New("unknown product")

// ProductLookup resolves current product data by id.
type ProductLookup interface {
	Product(id string) (domain.Product, bool)
}

type line struct {
	productID string
	quantity  int
	recurring bool
	frequency domain.RecurringFrequency
}

// effectiveFrequency is none unless the line is recurring.
func (l *line) effectiveFrequency() domain.RecurringFrequency {
	if !l.recurring {
		return domain.FrequencyNone
	}
	return l.frequency
}

// Engine is one session's cart. All methods are safe for concurrent use and
// apply in the order they acquire the lock.
type Engine struct {
	mu      sync.Mutex
	catalog ProductLookup
	clock   clockwork.Clock
	log     zerolog.Logger
	lines   []*line
}

func NewEngine(catalog ProductLookup, clock clockwork.Clock, log zerolog.Logger) *Engine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Engine{
		catalog: catalog,
		clock:   clock,
		log:     log,
	}
}

func (e *Engine) find(productID string) (int, *line) {
	for i, l := range e.lines {
		if l.productID == productID {
			return i, l
		}
	}
	return -1, nil
}

// AddItem increments an existing line by one or appends a new line with
// quantity one. The recurring settings always overwrite the line's.
func (e *Engine) AddItem(productID string, recurring bool, frequency domain.RecurringFrequency) error {
	if !frequency.Valid() {
		return domain.ErrInvalidFrequency
	}
	if _, ok := e.catalog.Product(productID); !ok {
		return ErrUnknownProduct
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, l := e.find(productID); l != nil {
		if l.quantity < MaxLineQuantity {
			l.quantity++
		}
		l.recurring = recurring
		l.frequency = frequency
		return nil
	}

	e.lines = append(e.lines, &line{
		productID: productID,
		quantity:  1,
		recurring: recurring,
		frequency: frequency,
	})
	return nil
}

// UpdateQuantity adds delta to a line's quantity, clamped to
// [0, MaxLineQuantity]. Reaching zero removes the line. Absent lines are
// ignored.
func (e *Engine) UpdateQuantity(productID string, delta int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i, l := e.find(productID)
	if l == nil {
		return
	}

	switch {
	case delta <= -l.quantity:
		e.removeAt(i)
	case delta >= MaxLineQuantity-l.quantity:
		l.quantity = MaxLineQuantity
	default:
		l.quantity += delta
	}
}

func (e *Engine) RemoveItem(productID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if i, _ := e.find(productID); i >= 0 {
		e.removeAt(i)
	}
}

func (e *Engine) removeAt(i int) {
	e.lines = append(e.lines[:i], e.lines[i+1:]...)
}

// SetRecurring replaces only the recurring settings of an existing line.
// The stored frequency is kept when recurring is switched off.
func (e *Engine) SetRecurring(productID string, recurring bool, frequency domain.RecurringFrequency) error {
	if !frequency.Valid() {
		return domain.ErrInvalidFrequency
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, l := e.find(productID); l != nil {
		l.recurring = recurring
		if frequency != domain.FrequencyNone || recurring {
			l.frequency = frequency
		}
	}
	return nil
}

func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lines = nil
}

// RemoveOrdered takes the quantities of an ordered snapshot out of the cart.
// Lines added or topped up after the snapshot was taken stay behind.
func (e *Engine) RemoveOrdered(snapshot domain.CartSnapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, ordered := range snapshot.Lines {
		i, l := e.find(ordered.ProductID)
		if l == nil {
			continue
		}
		if l.quantity <= ordered.Quantity {
			e.removeAt(i)
			continue
		}
		l.quantity -= ordered.Quantity
	}
}

// Snapshot resolves every line against the catalog. Lines whose product is
// no longer listed are left out.
func (e *Engine) Snapshot() domain.CartSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	lines := make([]domain.CartLine, 0, len(e.lines))
	for _, l := range e.lines {
		p, ok := e.catalog.Product(l.productID)
		if !ok {
			e.log.Warn().Str("product_id", l.productID).Msg("dropping cart line for unlisted product")
			continue
		}
		lines = append(lines, domain.CartLine{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			MRP:       p.MRP,
			Image:     p.Image,
			Weight:    p.Weight,
			MartID:    p.MartID,
			Quantity:  l.quantity,
			Recurring: l.recurring,
			Frequency: l.effectiveFrequency(),
			LineTotal: p.Price * int64(l.quantity),
		})
	}

	return domain.CartSnapshot{
		Lines:      lines,
		ItemCount:  domain.ItemCount(lines),
		Subtotal:   domain.Subtotal(lines),
		CapturedAt: e.clock.Now(),
	}
}
