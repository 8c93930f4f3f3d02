package checkout

import (
	"context"
	"errors"
	"sync"

	"github.com/tanzeelaayaz69/kashcart/internal/domain"
	"github.com/tanzeelaayaz69/kashcart/internal/events"
)

type mockGateway struct {
	mu       sync.Mutex
	decline  string
	err      error
	charged  []int64
	refunded []string
}

func (m *mockGateway) Charge(_ context.Context, _ string, amount int64, _ domain.PaymentMethod) (Charge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return Charge{}, m.err
	}
	m.charged = append(m.charged, amount)
	if m.decline != "" {
		return Charge{TransactionID: "TXN-1", Reason: m.decline}, nil
	}
	return Charge{TransactionID: "TXN-1", Approved: true}, nil
}

func (m *mockGateway) Refund(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refunded = append(m.refunded, id)
	return nil
}

type mockPublisher struct {
	mu     sync.Mutex
	events []events.OrderPlaced
	err    error
}

func (m *mockPublisher) PublishOrderPlaced(_ context.Context, ev events.OrderPlaced) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, ev)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

var errOrderStore = errors.New("order store down")
