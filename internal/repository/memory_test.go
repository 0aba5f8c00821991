package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/lastchanceair/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUsers_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryStore().Users()

	u := &domain.User{Email: "a@example.com", PasswordHash: "hash", CreatedAt: time.Now()}
	require.NoError(t, users.Create(ctx, u))
	assert.Equal(t, int64(1), u.ID)

	got, err := users.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)

	_, err = users.GetByEmail(ctx, "A@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryUsers_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryStore().Users()

	require.NoError(t, users.Create(ctx, &domain.User{Email: "a@example.com"}))
	err := users.Create(ctx, &domain.User{Email: "a@example.com"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestMemoryBookings_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Users().Create(ctx, &domain.User{Email: "a@example.com"}))
	bookings := store.Bookings()

	base := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	first := &domain.Booking{UserID: 1, BookingRef: "AAAAAA", Status: domain.BookingStatusConfirmed, CreatedAt: base}
	second := &domain.Booking{UserID: 1, BookingRef: "BBBBBB", Status: domain.BookingStatusConfirmed, CreatedAt: base.Add(time.Minute)}
	require.NoError(t, bookings.Create(ctx, first))
	require.NoError(t, bookings.Create(ctx, second))

	list, err := bookings.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "BBBBBB", list[0].BookingRef)
	assert.Equal(t, "AAAAAA", list[1].BookingRef)

	require.NoError(t, bookings.UpdateStatus(ctx, first.ID, domain.BookingStatusCancelled))
	list, err = bookings.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, list[1].Status)

	err = bookings.UpdateStatus(ctx, 99, domain.BookingStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	empty, err := bookings.ListByUser(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NotNil(t, empty)
}

func TestMemoryBookings_UnknownUser(t *testing.T) {
	err := NewMemoryStore().Bookings().Create(context.Background(), &domain.Booking{UserID: 5})
	assert.Error(t, err)
}
