package repository

import (
	"context"

	"github.com/Domenick1991/lastchanceair/internal/domain"
)

type UserRepository interface {
	// Create inserts the user and fills its ID. A duplicate email yields
	// domain.ErrConflict.
	Create(ctx context.Context, user *domain.User) error
	// GetByEmail returns domain.ErrNotFound when no user has the email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	// UpdateStatus returns domain.ErrNotFound when no booking has the id.
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}
