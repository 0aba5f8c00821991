package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/Domenick1991/lastchanceair/internal/domain"
)

// MemoryStore keeps users and bookings in process memory. It backs the
// "memory" database driver and enforces the same email uniqueness and
// booking-to-user reference as the PostgreSQL schema.
type MemoryStore struct {
	mu       sync.RWMutex
	users    []domain.User
	bookings []domain.Booking
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Users() UserRepository {
	return memoryUsers{s}
}

func (s *MemoryStore) Bookings() BookingRepository {
	return memoryBookings{s}
}

type memoryUsers struct {
	s *MemoryStore
}

func (r memoryUsers) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return fmt.Errorf("email %s: %w", user.Email, domain.ErrConflict)
		}
	}
	user.ID = int64(len(r.s.users) + 1)
	r.s.users = append(r.s.users, *user)
	return nil
}

func (r memoryUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
}

type memoryBookings struct {
	s *MemoryStore
}

func (r memoryBookings) Create(_ context.Context, b *domain.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if b.UserID <= 0 || b.UserID > int64(len(r.s.users)) {
		return fmt.Errorf("insert booking: user %d does not exist", b.UserID)
	}
	b.ID = int64(len(r.s.bookings) + 1)
	r.s.bookings = append(r.s.bookings, *b)
	return nil
}

func (r memoryBookings) ListByUser(_ context.Context, userID int64) ([]domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Booking, 0)
	for _, b := range r.s.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	// Newest first; insertion order breaks ties so the latest insert wins.
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b domain.Booking) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (r memoryBookings) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if id <= 0 || id > int64(len(r.s.bookings)) {
		return fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
	}
	r.s.bookings[id-1].Status = status
	return nil
}

var (
	_ UserRepository    = memoryUsers{}
	_ BookingRepository = memoryBookings{}
)
