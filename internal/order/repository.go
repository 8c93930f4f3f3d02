package order

import (
	"context"
	"errors"

	"github.com/tanzeelaayaz69/kashcart/internal/domain"
	"github.com/tanzeelaayaz69/kashcart/internal/storage"
)

const ordersRecord = "orders"

// Repository persists a namespace's order history as a single record,
// most recent first.
type Repository interface {
	// LoadOrders returns an empty list for a namespace without history.
	// Undecodable history is reported as storage.ErrCorrupt.
	LoadOrders(ctx context.Context, namespace string) ([]domain.Order, error)
	SaveOrders(ctx context.Context, namespace string, orders []domain.Order) error
}

type StoreRepository struct {
	store storage.Store
}

func NewStoreRepository(store storage.Store) *StoreRepository {
	return &StoreRepository{store: store}
}

func (r *StoreRepository) LoadOrders(ctx context.Context, namespace string) ([]domain.Order, error) {
	orders, err := storage.DecodeJSON[[]domain.Order](ctx, r.store, storage.Key(namespace, ordersRecord))
	if errors.Is(err, storage.ErrNotFound) {
		return []domain.Order{}, nil
	}
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func (r *StoreRepository) SaveOrders(ctx context.Context, namespace string, orders []domain.Order) error {
	return storage.SaveJSON(ctx, r.store, storage.Key(namespace, ordersRecord), orders)
}
