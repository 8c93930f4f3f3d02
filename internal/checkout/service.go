// Package checkout turns a session's cart into a placed order: payment
// method check, charge, order placement, event publish, then removal of the
// ordered lines from the cart.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tanzeelaayaz69/kashcart/internal/domain"
	"github.com/tanzeelaayaz69/kashcart/internal/events"
	"github.com/tanzeelaayaz69/kashcart/internal/order"
)

// Cart is the part of the cart engine checkout needs.
type Cart interface {
	Snapshot() domain.CartSnapshot
	RemoveOrdered(snapshot domain.CartSnapshot)
}

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, namespace string, snapshot domain.CartSnapshot, fees order.FeeSchedule, details order.Details) (domain.Order, error)
}

// Quote is the bill shown for the current cart.
type Quote struct {
	ItemCount   int   `json:"item_count"`
	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"delivery_fee"`
	PlatformFee int64 `json:"platform_fee"`
	Total       int64 `json:"total"`
}

type Service struct {
	orders    OrderPlacer
	payments  PaymentGateway
	publisher events.Publisher
	fees      order.FeeSchedule
	log       zerolog.Logger
}

func NewService(orders OrderPlacer, payments PaymentGateway, publisher events.Publisher, fees order.FeeSchedule, log zerolog.Logger) *Service {
	return &Service{
		orders:    orders,
		payments:  payments,
		publisher: publisher,
		fees:      fees,
		log:       log,
	}
}

// Quote prices the cart. An empty cart owes nothing, fees included.
func (s *Service) Quote(cart Cart) Quote {
	return s.quote(cart.Snapshot())
}

func (s *Service) quote(snap domain.CartSnapshot) Quote {
	if snap.IsEmpty() {
		return Quote{}
	}
	return Quote{
		ItemCount:   snap.ItemCount,
		Subtotal:    snap.Subtotal,
		DeliveryFee: s.fees.DeliveryFee,
		PlatformFee: s.fees.PlatformFee,
		Total:       s.fees.Total(snap.Subtotal),
	}
}

// Checkout places an order for everything in cart and takes the ordered
// lines out of it. The cart is left untouched on any error.
func (s *Service) Checkout(ctx context.Context, namespace string, cart Cart, method domain.PaymentMethod) (domain.Order, error) {
	if !method.Valid() {
		return domain.Order{}, ErrInvalidPaymentMethod
	}

	snap := cart.Snapshot()
	if snap.IsEmpty() {
		return domain.Order{}, ErrEmptyCart
	}
	q := s.quote(snap)

	charge, err := s.payments.Charge(ctx, namespace, q.Total, method)
	if err != nil {
		return domain.Order{}, fmt.Errorf("payment failed: %w", err)
	}
	if !charge.Approved {
		s.log.Info().Str("namespace", namespace).Str("reason", charge.Reason).Msg("payment declined")
		return domain.Order{}, fmt.Errorf("%w: %s", ErrPaymentDeclined, charge.Reason)
	}

	placed, err := s.orders.PlaceOrder(ctx, namespace, snap, s.fees, order.Details{PaymentMethod: method})
	if err != nil {
		if refundErr := s.payments.Refund(ctx, charge.TransactionID); refundErr != nil {
			s.log.Error().Err(refundErr).Str("transaction_id", charge.TransactionID).Msg("refund after failed order failed")
		}
		if errors.Is(err, order.ErrEmptyCart) {
			return domain.Order{}, ErrEmptyCart
		}
		return domain.Order{}, err
	}

	if err := s.publisher.PublishOrderPlaced(ctx, events.NewOrderPlaced(namespace, placed)); err != nil {
		s.log.Error().Err(err).Str("order_id", placed.ID).Msg("failed to publish order placed event")
	}

	cart.RemoveOrdered(snap)
	return placed, nil
}
