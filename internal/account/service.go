// Package account manages the device's logged-in user and saved addresses.
// There is no verification: logging in with a phone number either resumes
// the stored user for that number or replaces it with a new one.
package account

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tanzeelaayaz69/kashcart/internal/domain"
	"github.com/tanzeelaayaz69/kashcart/internal/storage"
)

const (
	userRecord = "user"

	DefaultName        = "User"
	DefaultHomeAddress = "H.No 12, Rajbagh Extension, Srinagar"
)

var (
	ErrInvalidPhone       = errors.New("phone number must be 10 digits")
	ErrEmptyAddress       = errors.New("address must not be empty")
	ErrInvalidAddressType = errors.New("address type must be Home, Work or Other")
	ErrNotLoggedIn        = errors.New("no user is logged in")
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

type Service struct {
	mu    sync.Mutex
	store storage.Store
	log   zerolog.Logger
}

func NewService(store storage.Store, log zerolog.Logger) *Service {
	return &Service{store: store, log: log}
}

func key(namespace string) string {
	return storage.Key(namespace, userRecord)
}

// Login returns the stored user when its phone matches, otherwise creates
// and stores a new user with a default Home address.
func (s *Service) Login(ctx context.Context, namespace, phone, name string) (domain.User, error) {
	phone = strings.TrimSpace(phone)
	if !phonePattern.MatchString(phone) {
		return domain.User{}, ErrInvalidPhone
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := storage.LoadJSON[domain.User](ctx, s.store, key(namespace), s.log); ok && existing.Phone == phone {
		return existing, nil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	user := domain.User{
		ID:    "u_" + uuid.NewString(),
		Name:  name,
		Phone: phone,
		Addresses: []domain.Address{
			{ID: "a1", Type: domain.AddressHome, Value: DefaultHomeAddress},
		},
	}
	if err := storage.SaveJSON(ctx, s.store, key(namespace), user); err != nil {
		return domain.User{}, fmt.Errorf("failed to save user: %w", err)
	}

	s.log.Info().Str("namespace", namespace).Str("user_id", user.ID).Msg("user created")
	return user, nil
}

// CheckUser reports whether the stored user has this phone number.
func (s *Service) CheckUser(ctx context.Context, namespace, phone string) bool {
	user, ok := storage.LoadJSON[domain.User](ctx, s.store, key(namespace), s.log)
	return ok && user.Phone == strings.TrimSpace(phone)
}

func (s *Service) CurrentUser(ctx context.Context, namespace string) (domain.User, bool) {
	return storage.LoadJSON[domain.User](ctx, s.store, key(namespace), s.log)
}

func (s *Service) Logout(ctx context.Context, namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Remove(ctx, key(namespace)); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to remove user: %w", err)
	}
	return nil
}

func (s *Service) AddAddress(ctx context.Context, namespace string, addrType domain.AddressType, value string) (domain.User, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return domain.User{}, ErrEmptyAddress
	}
	if !addrType.Valid() {
		return domain.User{}, ErrInvalidAddressType
	}

	return s.update(ctx, namespace, func(u *domain.User) bool {
		u.Addresses = append(u.Addresses, domain.Address{
			ID:    "a_" + uuid.NewString(),
			Type:  addrType,
			Value: value,
		})
		return true
	})
}

// RemoveAddress drops the address with id; an unknown id changes nothing.
func (s *Service) RemoveAddress(ctx context.Context, namespace, id string) (domain.User, error) {
	return s.update(ctx, namespace, func(u *domain.User) bool {
		for i, a := range u.Addresses {
			if a.ID == id {
				u.Addresses = append(u.Addresses[:i], u.Addresses[i+1:]...)
				return true
			}
		}
		return false
	})
}

// update applies fn to the stored user and saves it when fn reports a change.
func (s *Service) update(ctx context.Context, namespace string, fn func(*domain.User) bool) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := storage.DecodeJSON[domain.User](ctx, s.store, key(namespace))
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrCorrupt) {
		return domain.User{}, ErrNotLoggedIn
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to load user: %w", err)
	}

	if !fn(&user) {
		return user, nil
	}
	if err := storage.SaveJSON(ctx, s.store, key(namespace), user); err != nil {
		return domain.User{}, fmt.Errorf("failed to save user: %w", err)
	}
	return user, nil
}
