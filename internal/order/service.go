// Package order turns cart snapshots into placed orders, keeps each
// namespace's order history and simulates delivery tracking.
package order

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tanzeelaayaz69/kashcart/internal/domain"
	"github.com/tanzeelaayaz69/kashcart/internal/storage"
)

var ErrEmptyCart = errors.New("cart is empty, nothing to order")

// HistoryLoadTimeout bounds a shared history load. The load is detached from
// the caller that started it, so cancelling one request does not fail the
// others waiting on the same namespace.
const HistoryLoadTimeout = 10 * time.Second

// MartNamer resolves a mart id to its display name.
type MartNamer interface {
	MartName(id string) string
}

// Details carries checkout data recorded on the order.
type Details struct {
	PaymentMethod domain.PaymentMethod
}

type Service struct {
	mu    sync.Mutex // serializes read-modify-write of order lists
	repo  Repository
	marts MartNamer
	clock clockwork.Clock
	log   zerolog.Logger
	sfg   singleflight.Group
}

func NewService(repo Repository, marts MartNamer, clock clockwork.Clock, log zerolog.Logger) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		repo:  repo,
		marts: marts,
		clock: clock,
		log:   log,
	}
}

// PlaceOrder freezes the snapshot into a new Processing order and puts it at
// the front of the namespace's history. Clearing the cart is left to the
// caller.
func (s *Service) PlaceOrder(ctx context.Context, namespace string, snapshot domain.CartSnapshot, fees FeeSchedule, details Details) (domain.Order, error) {
	if snapshot.IsEmpty() {
		return domain.Order{}, ErrEmptyCart
	}

	items := make([]domain.OrderItem, len(snapshot.Lines))
	for i, l := range snapshot.Lines {
		items[i] = domain.OrderItem{
			Name:     l.Name,
			Quantity: l.Quantity,
			Price:    l.UnitPrice,
		}
	}
	subtotal := domain.Subtotal(snapshot.Lines)

	order := domain.Order{
		ID:            "ord_" + uuid.NewString(),
		CreatedAt:     s.clock.Now().UTC(),
		Items:         items,
		Subtotal:      subtotal,
		DeliveryFee:   fees.DeliveryFee,
		PlatformFee:   fees.PlatformFee,
		Total:         fees.Total(subtotal),
		Status:        domain.OrderStatusProcessing,
		MartName:      s.marts.MartName(snapshot.Lines[0].MartID),
		PaymentMethod: details.PaymentMethod,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.LoadOrders(ctx, namespace)
	if err != nil {
		if !errors.Is(err, storage.ErrCorrupt) {
			return domain.Order{}, fmt.Errorf("failed to load order history: %w", err)
		}
		s.log.Warn().Err(err).Str("namespace", namespace).Msg("replacing corrupt order history")
		existing = nil
	}

	orders := make([]domain.Order, 0, len(existing)+1)
	orders = append(orders, order)
	orders = append(orders, existing...)
	if err := s.repo.SaveOrders(ctx, namespace, orders); err != nil {
		return domain.Order{}, fmt.Errorf("failed to save order: %w", err)
	}

	s.log.Info().
		Str("namespace", namespace).
		Str("order_id", order.ID).
		Int64("total", order.Total).
		Int("items", len(order.Items)).
		Msg("order placed")

	return copyOrder(order), nil
}

// ListOrders returns the namespace's history, most recent first. Storage
// failures read as an empty history.
func (s *Service) ListOrders(ctx context.Context, namespace string) []domain.Order {
	ch := s.sfg.DoChan(namespace, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), HistoryLoadTimeout)
		defer cancel()
		return s.repo.LoadOrders(loadCtx, namespace)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		s.log.Debug().Err(ctx.Err()).Str("namespace", namespace).Msg("order history request cancelled")
		return []domain.Order{}
	}
	if res.Err != nil {
		s.log.Warn().Err(res.Err).Str("namespace", namespace).Msg("order history unavailable, returning empty list")
		return []domain.Order{}
	}

	shared := res.Val.([]domain.Order)
	orders := make([]domain.Order, len(shared))
	for i, o := range shared {
		orders[i] = copyOrder(o)
	}
	return orders
}

func (s *Service) GetOrder(ctx context.Context, namespace, id string) (domain.Order, bool) {
	for _, o := range s.ListOrders(ctx, namespace) {
		if o.ID == id {
			return o, true
		}
	}
	return domain.Order{}, false
}

func copyOrder(o domain.Order) domain.Order {
	o.Items = append([]domain.OrderItem(nil), o.Items...)
	return o
}
