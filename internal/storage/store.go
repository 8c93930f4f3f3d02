// Package storage is the key-value persistence layer behind users and order
// history. Records are indented JSON so fixtures stay diffable.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrCorrupt     = errors.New("record is corrupt")
	ErrUnavailable = errors.New("storage unavailable")
)

// Store defines the persistence operations used by accounts and orders.
// Save overwrites the whole record; there are no partial updates.
type Store interface {
	// Load returns ErrNotFound when the key has never been set or was removed.
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, record []byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Key scopes a record name to a device namespace, e.g. "dev-42:orders".
func Key(namespace, name string) string {
	return fmt.Sprintf("%s:%s", namespace, name)
}

// DecodeJSON loads key into a T. Undecodable data is reported as ErrCorrupt so
// callers can tell it apart from backend failures.
func DecodeJSON[T any](ctx context.Context, s Store, key string) (T, error) {
	var v T
	data, err := s.Load(ctx, key)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return v, nil
}

// LoadJSON treats absent, corrupt and unreachable records alike as not found,
// logging everything except plain absence.
func LoadJSON[T any](ctx context.Context, s Store, key string, log zerolog.Logger) (T, bool) {
	v, err := DecodeJSON[T](ctx, s, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn().Err(err).Str("key", key).Msg("falling back to empty record")
		}
		var zero T
		return zero, false
	}
	return v, true
}

func SaveJSON(ctx context.Context, s Store, key string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s failed: %w", key, err)
	}
	return s.Save(ctx, key, data)
}
