package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/lastchanceair/internal/domain"
	"github.com/Domenick1991/lastchanceair/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFlexibleID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    flexibleID
		wantErr bool
	}{
		{"number", `42`, "42", false},
		{"string", `"42"`, "42", false},
		{"null", `null`, "", false},
		{"bool", `true`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got flexibleID
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	body := `{"userId":1,"flightId":17,"cabinClass":"business","passengerName":"Ada","passengerEmail":"ada@example.com","totalPrice":301.5,"seat":"1A"}`
	c, w := jsonContext("POST", "/api/bookings", body)

	seat := "1A"
	created := &domain.Booking{
		ID:             9,
		UserID:         1,
		FlightID:       "17",
		BookingRef:     "K7P2QX",
		CabinClass:     domain.CabinBusiness,
		PassengerName:  "Ada",
		PassengerEmail: "ada@example.com",
		TotalPrice:     301.5,
		Seat:           &seat,
		Meal:           domain.DefaultMeal,
		Drink:          domain.DefaultDrink,
		Status:         domain.BookingStatusConfirmed,
		CreatedAt:      time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC),
	}
	mockService.On("CreateBooking", c.Request.Context(), booking.CreateBookingInput{
		UserID:         1,
		FlightID:       "17",
		CabinClass:     "business",
		PassengerName:  "Ada",
		PassengerEmail: "ada@example.com",
		TotalPrice:     301.5,
		Seat:           "1A",
	}).Return(created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp createBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, "K7P2QX", resp.Booking.BookingRef)
	assert.Equal(t, domain.BookingStatusConfirmed, resp.Booking.Status)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_createErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "missing fields",
			body:       `{"flightId":"17"}`,
			serviceErr: fmt.Errorf("Missing booking fields: %w", domain.ErrInvalidRequest),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "storage failure",
			body:       `{"userId":1,"flightId":"17","cabinClass":"economy","passengerName":"Ada","passengerEmail":"ada@example.com"}`,
			serviceErr: fmt.Errorf("failed to create booking: %w", domain.ErrInternal),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			handler := NewBookingHandler(mockService)
			c, w := jsonContext("POST", "/api/bookings", tt.body)
			mockService.On("CreateBooking", mock.Anything, mock.Anything).Return(nil, tt.serviceErr)

			handler.create(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestBookingHandler_createRejectsMalformedUserID(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)
	c, w := jsonContext("POST", "/api/bookings", `{"userId":"abc","flightId":"17"}`)

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestBookingHandler_listForUser(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "userId", Value: "4"}}
	c.Request = httptest.NewRequest("GET", "/api/bookings/user/4", nil)

	mockService.On("ListForUser", mock.Anything, int64(4)).Return([]domain.Booking{}, nil)

	handler.listForUser(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "userId", Value: "x"}}
	c.Request = httptest.NewRequest("GET", "/api/bookings/user/x", nil)

	handler.listForUser(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	mockService.AssertNumberOfCalls(t, "ListForUser", 1)
}

func TestBookingHandler_cancel(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		serviceErr error
		wantStatus int
	}{
		{"confirmed booking", "9", nil, http.StatusOK},
		{"already cancelled", "9", nil, http.StatusOK},
		{"unknown booking", "10", fmt.Errorf("booking 10: %w", domain.ErrNotFound), http.StatusNotFound},
		{"malformed id", "abc", nil, http.StatusNotFound},
		{"storage failure", "11", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			handler := NewBookingHandler(mockService)

			gin.SetMode(gin.TestMode)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Params = gin.Params{{Key: "id", Value: tt.id}}
			c.Request = httptest.NewRequest("POST", "/api/bookings/"+tt.id+"/cancel", nil)
			mockService.On("CancelBooking", mock.Anything, mock.Anything).Return(tt.serviceErr)

			handler.cancel(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"success":true}`, w.Body.String())
			}
		})
	}
}
