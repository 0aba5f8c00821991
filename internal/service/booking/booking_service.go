package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/lastchanceair/internal/catalog"
	"github.com/Domenick1991/lastchanceair/internal/domain"
	"github.com/Domenick1991/lastchanceair/internal/repository"
)

const (
	// RefAlphabet omits I, O, 0 and 1.
	RefAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	RefLength   = 6
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	CancelBooking(ctx context.Context, id int64) error
}

// FlightLookup resolves flight ids against the current catalog.
type FlightLookup interface {
	Snapshot() *catalog.Snapshot
}

type Notifier interface {
	BookingConfirmed(booking domain.Booking, flight *domain.Flight)
}

type BookingService struct {
	bookings repository.BookingRepository
	flights  FlightLookup
	notifier Notifier
	now      func() time.Time
	newRef   func() string
}

type CreateBookingInput struct {
	UserID         int64   `json:"userId"`
	FlightID       string  `json:"flightId"`
	CabinClass     string  `json:"cabinClass"`
	PassengerName  string  `json:"passengerName"`
	PassengerEmail string  `json:"passengerEmail"`
	PassengerAge   *int    `json:"passengerAge,omitempty"`
	TotalPrice     float64 `json:"totalPrice,omitempty"`
	Seat           string  `json:"seat,omitempty"`
	Meal           string  `json:"meal,omitempty"`
	Drink          string  `json:"drink,omitempty"`
}

type BookingServiceOption func(*BookingService)

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights FlightLookup,
	notifier Notifier,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings: bookings,
		flights:  flights,
		notifier: notifier,
		now:      time.Now,
		newRef:   NewBookingRef,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	flightID, err := strconv.ParseInt(strings.TrimSpace(input.FlightID), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("flight id %q: %w", input.FlightID, domain.ErrInvalidRequest)
	}
	flight, ok := s.flights.Snapshot().Get(flightID)
	if !ok {
		return nil, fmt.Errorf("flight %d is not in the current catalog: %w", flightID, domain.ErrInvalidRequest)
	}

	booking := &domain.Booking{
		UserID:         input.UserID,
		FlightID:       strconv.FormatInt(flightID, 10),
		BookingRef:     s.newRef(),
		CabinClass:     domain.CabinClass(input.CabinClass),
		PassengerName:  input.PassengerName,
		PassengerEmail: input.PassengerEmail,
		PassengerAge:   input.PassengerAge,
		TotalPrice:     input.TotalPrice,
		Seat:           optional(input.Seat),
		Meal:           orDefault(input.Meal, domain.DefaultMeal),
		Drink:          orDefault(input.Drink, domain.DefaultDrink),
		Status:         domain.BookingStatusConfirmed,
		CreatedAt:      s.now().UTC(),
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		log.Printf("DB booking error: %v", err)
		return nil, domain.ErrInternal
	}
	log.Printf("booking created: id=%d ref=%s flight=%s user=%d", booking.ID, booking.BookingRef, booking.FlightID, booking.UserID)

	if s.notifier != nil {
		s.notifier.BookingConfirmed(*booking, &flight)
	}
	return booking, nil
}

func (s *BookingService) ListForUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("get bookings error: %v", err)
		return nil, domain.ErrInternal
	}
	return bookings, nil
}

// CancelBooking marks the booking cancelled. Cancelling twice succeeds.
func (s *BookingService) CancelBooking(ctx context.Context, id int64) error {
	if err := s.bookings.UpdateStatus(ctx, id, domain.BookingStatusCancelled); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
		}
		log.Printf("cancel booking error: %v", err)
		return domain.ErrInternal
	}
	log.Printf("booking %d cancelled", id)
	return nil
}

// NewBookingRef samples RefLength characters from RefAlphabet with replacement.
// Collisions with existing references are not checked.
func NewBookingRef() string {
	var b strings.Builder
	b.Grow(RefLength)
	for i := 0; i < RefLength; i++ {
		b.WriteByte(RefAlphabet[rand.IntN(len(RefAlphabet))])
	}
	return b.String()
}

func validate(input CreateBookingInput) error {
	var missing []string
	if input.UserID <= 0 {
		missing = append(missing, "userId")
	}
	if strings.TrimSpace(input.FlightID) == "" {
		missing = append(missing, "flightId")
	}
	if input.CabinClass == "" {
		missing = append(missing, "cabinClass")
	}
	if input.PassengerName == "" {
		missing = append(missing, "passengerName")
	}
	if input.PassengerEmail == "" {
		missing = append(missing, "passengerEmail")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing booking fields %s: %w", strings.Join(missing, ", "), domain.ErrInvalidRequest)
	}
	if !domain.CabinClass(input.CabinClass).Valid() {
		return fmt.Errorf("unknown cabin class %q: %w", input.CabinClass, domain.ErrInvalidRequest)
	}
	return nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

var _ BookingUseCase = (*BookingService)(nil)
