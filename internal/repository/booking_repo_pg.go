package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/lastchanceair/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `id, user_id, flight_id, booking_ref, cabin_class, passenger_name, passenger_email,
	passenger_age, total_price, seat, meal, drink, status, created_at`

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.QueryRow(ctx, `INSERT INTO bookings
		(user_id, flight_id, booking_ref, cabin_class, passenger_name, passenger_email,
		 passenger_age, total_price, seat, meal, drink, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`,
		b.UserID, b.FlightID, b.BookingRef, b.CabinClass, b.PassengerName, b.PassengerEmail,
		b.PassengerAge, b.TotalPrice, b.Seat, b.Meal, b.Drink, b.Status, b.CreatedAt).
		Scan(&b.ID)
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	cmd, err := r.db.Exec(ctx, `UPDATE bookings SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanBooking(row pgx.Row) (domain.Booking, error) {
	var (
		b           domain.Booking
		meal, drink *string
	)
	err := row.Scan(&b.ID, &b.UserID, &b.FlightID, &b.BookingRef, &b.CabinClass, &b.PassengerName, &b.PassengerEmail,
		&b.PassengerAge, &b.TotalPrice, &b.Seat, &meal, &drink, &b.Status, &b.CreatedAt)
	if meal != nil {
		b.Meal = *meal
	}
	if drink != nil {
		b.Drink = *drink
	}
	return b, err
}

var _ BookingRepository = (*PGBookingRepository)(nil)
