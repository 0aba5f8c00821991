package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/lastchanceair/config"
	"github.com/Domenick1991/lastchanceair/internal/domain"
)

// ErrNetwork marks failures to reach the API at all.
var ErrNetwork = errors.New("network error")

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// BookingRequest is the body of POST /api/bookings.
type BookingRequest struct {
	UserID         int64   `json:"userId"`
	FlightID       int64   `json:"flightId"`
	CabinClass     string  `json:"cabinClass"`
	PassengerName  string  `json:"passengerName"`
	PassengerEmail string  `json:"passengerEmail"`
	PassengerAge   *int    `json:"passengerAge,omitempty"`
	TotalPrice     float64 `json:"totalPrice"`
	Seat           string  `json:"seat,omitempty"`
	Meal           string  `json:"meal,omitempty"`
	Drink          string  `json:"drink,omitempty"`
}

type APIClient struct {
	baseURL string
	http    *http.Client
}

func NewAPIClient(cfg config.ClientConfig) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

func (c *APIClient) Signup(ctx context.Context, email, password string) (*domain.Account, error) {
	var account domain.Account
	err := c.do(ctx, http.MethodPost, "/api/signup", map[string]string{"email": email, "password": password}, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *APIClient) Login(ctx context.Context, email, password string) (*domain.Account, error) {
	var account domain.Account
	err := c.do(ctx, http.MethodPost, "/api/login", map[string]string{"email": email, "password": password}, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// RequestPasswordReset returns the server's message, which is the same whether
// or not the email is registered.
func (c *APIClient) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/request-password-reset", map[string]string{"email": email}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *APIClient) Cities(ctx context.Context) ([]domain.City, error) {
	var cities []domain.City
	if err := c.do(ctx, http.MethodGet, "/api/cities", nil, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

func (c *APIClient) Deals(ctx context.Context) ([]domain.Flight, error) {
	var deals []domain.Flight
	if err := c.do(ctx, http.MethodGet, "/api/deals", nil, &deals); err != nil {
		return nil, err
	}
	return deals, nil
}

func (c *APIClient) SearchFlights(ctx context.Context, from, to, date string) ([]domain.Flight, error) {
	params := url.Values{}
	params.Set("from", from)
	params.Set("to", to)
	params.Set("date", date)

	var result []domain.Flight
	if err := c.do(ctx, http.MethodGet, "/api/flights?"+params.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *APIClient) Flight(ctx context.Context, id int64) (*domain.Flight, error) {
	var flight domain.Flight
	if err := c.do(ctx, http.MethodGet, "/api/flights/"+strconv.FormatInt(id, 10), nil, &flight); err != nil {
		return nil, err
	}
	return &flight, nil
}

func (c *APIClient) CreateBooking(ctx context.Context, req BookingRequest) (*domain.Booking, error) {
	var resp struct {
		Success bool            `json:"success"`
		Booking *domain.Booking `json:"booking"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/bookings", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Booking == nil {
		return nil, &APIError{Status: http.StatusOK, Message: "Could not complete booking"}
	}
	return resp.Booking, nil
}

func (c *APIClient) Bookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.do(ctx, http.MethodGet, "/api/bookings/user/"+strconv.FormatInt(userID, 10), nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *APIClient) CancelBooking(ctx context.Context, id int64) error {
	var resp struct {
		Success bool `json:"success"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/bookings/"+strconv.FormatInt(id, 10)+"/cancel", nil, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &APIError{Status: http.StatusOK, Message: "Could not cancel"}
	}
	return nil
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		msg := http.StatusText(resp.StatusCode)
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
