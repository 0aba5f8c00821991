package client

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/Domenick1991/lastchanceair/internal/domain"
)

type View string

const (
	ViewAuth         View = "auth"
	ViewSearch       View = "search"
	ViewBooking      View = "booking"
	ViewConfirmation View = "confirmation"
	ViewBookings     View = "bookings"
)

type AuthMode string

const (
	AuthLogin  AuthMode = "login"
	AuthSignup AuthMode = "signup"
	AuthReset  AuthMode = "reset"
)

var (
	ErrInvalidTransition = errors.New("action not available in current view")
	ErrMissingCriteria   = errors.New("from, to and date are required")
	ErrSeatRequired      = errors.New("please select a seat")
	ErrNotSignedIn       = errors.New("missing user or flight")
)

// Backend is the slice of the API the flow drives.
type Backend interface {
	Signup(ctx context.Context, email, password string) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (*domain.Account, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	Cities(ctx context.Context) ([]domain.City, error)
	Deals(ctx context.Context) ([]domain.Flight, error)
	SearchFlights(ctx context.Context, from, to, date string) ([]domain.Flight, error)
	CreateBooking(ctx context.Context, req BookingRequest) (*domain.Booking, error)
	Bookings(ctx context.Context, userID int64) ([]domain.Booking, error)
	CancelBooking(ctx context.Context, id int64) error
}

// Passenger is what the booking form collects besides seat and cabin.
type Passenger struct {
	Name  string
	Email string
	Age   *int
	Meal  string
	Drink string
}

// Flow is the client's view state machine. It is not safe for concurrent use.
type Flow struct {
	api Backend
	rng *rand.Rand
	now func() time.Time

	view     View
	authMode AuthMode
	user     *domain.Account
	message  string

	cities   []domain.City
	deals    []domain.Flight
	results  []domain.Flight
	bookings []domain.Booking

	flight       *domain.Flight
	seat         *Seat
	cabin        domain.CabinClass
	confirmation *domain.Booking
}

type FlowOption func(*Flow)

// WithRand fixes the source used for seat surcharges.
func WithRand(rng *rand.Rand) FlowOption {
	return func(f *Flow) {
		f.rng = rng
	}
}

func WithClock(now func() time.Time) FlowOption {
	return func(f *Flow) {
		f.now = now
	}
}

func NewFlow(api Backend, opts ...FlowOption) *Flow {
	f := &Flow{
		api:      api,
		now:      time.Now,
		view:     ViewAuth,
		authMode: AuthLogin,
		cabin:    domain.CabinEconomy,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rng == nil {
		seed := uint64(time.Now().UnixNano())
		f.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return f
}

func (f *Flow) View() View { return f.view }
func (f *Flow) AuthMode() AuthMode { return f.authMode }
func (f *Flow) User() *domain.Account { return f.user }
func (f *Flow) Cities() []domain.City { return f.cities }
func (f *Flow) Deals() []domain.Flight { return f.deals }
func (f *Flow) Results() []domain.Flight { return f.results }
func (f *Flow) Bookings() []domain.Booking { return f.bookings }
func (f *Flow) SelectedFlight() *domain.Flight { return f.flight }
func (f *Flow) Seat() *Seat { return f.seat }
func (f *Flow) Cabin() domain.CabinClass { return f.cabin }
func (f *Flow) Confirmation() *domain.Booking { return f.confirmation }

// Message is the inline text the current form would show: an error or the
// password reset notice.
func (f *Flow) Message() string { return f.message }

// MinDate is the earliest date the search form accepts.
func (f *Flow) MinDate() string {
	return f.now().UTC().Format(domain.DateLayout)
}

func (f *Flow) SetAuthMode(mode AuthMode) error {
	if err := f.expect("switch auth tab", ViewAuth); err != nil {
		return err
	}
	f.authMode = mode
	f.message = ""
	return nil
}

func (f *Flow) Signup(ctx context.Context, email, password string) error {
	if err := f.expect("signup", ViewAuth); err != nil {
		return err
	}
	account, err := f.api.Signup(ctx, strings.TrimSpace(email), password)
	if err != nil {
		f.message = userMessage(err, "Signup failed")
		return err
	}
	f.enterApp(ctx, account)
	return nil
}

func (f *Flow) Login(ctx context.Context, email, password string) error {
	if err := f.expect("login", ViewAuth); err != nil {
		return err
	}
	account, err := f.api.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		f.message = userMessage(err, "Login failed")
		return err
	}
	f.enterApp(ctx, account)
	return nil
}

// RequestPasswordReset stays on the auth view and surfaces the server notice.
func (f *Flow) RequestPasswordReset(ctx context.Context, email string) error {
	if err := f.expect("request password reset", ViewAuth); err != nil {
		return err
	}
	msg, err := f.api.RequestPasswordReset(ctx, strings.TrimSpace(email))
	if err != nil {
		f.message = userMessage(err, "Reset failed")
		return err
	}
	if msg == "" {
		msg = "Reset link sent (demo)."
	}
	f.message = msg
	return nil
}

func (f *Flow) Logout() {
	*f = Flow{api: f.api, rng: f.rng, now: f.now, view: ViewAuth, authMode: AuthLogin, cabin: domain.CabinEconomy}
}

func (f *Flow) Search(ctx context.Context, from, to, date string) ([]domain.Flight, error) {
	if err := f.expect("search", ViewSearch); err != nil {
		return nil, err
	}
	from, to, date = strings.TrimSpace(from), strings.TrimSpace(to), strings.TrimSpace(date)
	if from == "" || to == "" || date == "" {
		return nil, ErrMissingCriteria
	}
	result, err := f.api.SearchFlights(ctx, from, to, date)
	if err != nil {
		f.message = userMessage(err, "Search failed")
		return nil, err
	}
	f.results = result
	return result, nil
}

// SelectFlight opens the booking view for flight with no seat and economy cabin.
func (f *Flow) SelectFlight(flight domain.Flight) error {
	if err := f.expect("select flight", ViewSearch); err != nil {
		return err
	}
	f.flight = &flight
	f.seat = nil
	f.cabin = domain.CabinEconomy
	f.message = ""
	f.view = ViewBooking
	return nil
}

// SelectSeat picks a seat. Extra legroom surcharges are rolled here and kept
// until another seat is picked.
func (f *Flow) SelectSeat(label string) error {
	if err := f.expect("select seat", ViewBooking); err != nil {
		return err
	}
	seat, err := pickSeat(strings.ToUpper(strings.TrimSpace(label)), f.rng)
	if err != nil {
		return err
	}
	f.seat = &seat
	return nil
}

func (f *Flow) SetCabin(cabin domain.CabinClass) error {
	if !cabin.Valid() {
		return fmt.Errorf("unknown cabin class %q", cabin)
	}
	f.cabin = cabin
	return nil
}

// Price is the total shown on the booking form, 0 with no flight selected.
func (f *Flow) Price() float64 {
	if f.flight == nil {
		return 0
	}
	return TotalPrice(*f.flight, f.seat, f.cabin)
}

func (f *Flow) BackToSearch() error {
	if err := f.expect("back to search", ViewBooking, ViewBookings); err != nil {
		return err
	}
	f.view = ViewSearch
	return nil
}

func (f *Flow) Submit(ctx context.Context, p Passenger) (*domain.Booking, error) {
	if err := f.expect("submit booking", ViewBooking); err != nil {
		return nil, err
	}
	if f.user == nil || f.flight == nil {
		return nil, ErrNotSignedIn
	}
	if f.seat == nil {
		f.message = "Please select a seat."
		return nil, ErrSeatRequired
	}

	created, err := f.api.CreateBooking(ctx, BookingRequest{
		UserID:         f.user.ID,
		FlightID:       f.flight.ID,
		CabinClass:     string(f.cabin),
		PassengerName:  strings.TrimSpace(p.Name),
		PassengerEmail: strings.TrimSpace(p.Email),
		PassengerAge:   p.Age,
		TotalPrice:     f.Price(),
		Seat:           f.seat.Label,
		Meal:           p.Meal,
		Drink:          p.Drink,
	})
	if err != nil {
		f.message = userMessage(err, "Could not complete booking")
		return nil, err
	}

	f.confirmation = created
	f.message = fmt.Sprintf("Your booking is confirmed. Reference %s. A confirmation email has been sent to %s (if email is configured).",
		created.BookingRef, created.PassengerEmail)
	f.view = ViewConfirmation
	f.loadBookings(ctx)
	return created, nil
}

// Dismiss leaves the confirmation and refreshes deals.
func (f *Flow) Dismiss(ctx context.Context) error {
	if err := f.expect("dismiss confirmation", ViewConfirmation); err != nil {
		return err
	}
	f.view = ViewSearch
	f.message = ""
	f.loadDeals(ctx)
	return nil
}

func (f *Flow) ShowBookings(ctx context.Context) error {
	if err := f.expect("show bookings", ViewSearch, ViewConfirmation, ViewBookings); err != nil {
		return err
	}
	f.view = ViewBookings
	f.loadBookings(ctx)
	return nil
}

func (f *Flow) ShowSearch() error {
	if err := f.expect("show search", ViewSearch, ViewConfirmation, ViewBookings, ViewBooking); err != nil {
		return err
	}
	f.view = ViewSearch
	return nil
}

// Cancel cancels one of the listed bookings and reloads the list.
func (f *Flow) Cancel(ctx context.Context, bookingID int64) error {
	if err := f.expect("cancel booking", ViewBookings); err != nil {
		return err
	}
	if err := f.api.CancelBooking(ctx, bookingID); err != nil {
		f.message = userMessage(err, "Could not cancel")
		return err
	}
	f.loadBookings(ctx)
	return nil
}

func (f *Flow) enterApp(ctx context.Context, account *domain.Account) {
	f.user = account
	f.message = ""
	f.view = ViewSearch

	cities, err := f.api.Cities(ctx)
	if err != nil {
		log.Printf("cities error: %v", err)
	} else {
		f.cities = cities
	}
	f.loadDeals(ctx)
}

func (f *Flow) loadDeals(ctx context.Context) {
	deals, err := f.api.Deals(ctx)
	if err != nil {
		log.Printf("deals error: %v", err)
		return
	}
	f.deals = deals
}

func (f *Flow) loadBookings(ctx context.Context) {
	if f.user == nil {
		return
	}
	bookings, err := f.api.Bookings(ctx, f.user.ID)
	if err != nil {
		log.Printf("load bookings error: %v", err)
		return
	}
	f.bookings = bookings
}

func (f *Flow) expect(action string, views ...View) error {
	for _, v := range views {
		if f.view == v {
			return nil
		}
	}
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, f.view)
}

// userMessage is the inline text for err: the server's message for API
// errors, "Network error" for transport failures, fallback otherwise.
func userMessage(err error, fallback string) string {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	case errors.Is(err, ErrNetwork):
		return "Network error"
	default:
		return fallback
	}
}
