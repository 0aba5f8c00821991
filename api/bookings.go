package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Domenick1991/lastchanceair/internal/domain"
	"github.com/Domenick1991/lastchanceair/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

// flexibleID accepts a JSON number or string.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a number or string: %w", err)
	}
	*f = flexibleID(n.String())
	return nil
}

type createBookingRequest struct {
	UserID         flexibleID `json:"userId"`
	FlightID       flexibleID `json:"flightId"`
	CabinClass     string     `json:"cabinClass"`
	PassengerName  string     `json:"passengerName"`
	PassengerEmail string     `json:"passengerEmail"`
	PassengerAge   *int       `json:"passengerAge"`
	TotalPrice     float64    `json:"totalPrice"`
	Seat           string     `json:"seat"`
	Meal           string     `json:"meal"`
	Drink          string     `json:"drink"`
}

type createBookingResponse struct {
	Success bool            `json:"success"`
	Booking *domain.Booking `json:"booking"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/bookings", h.create)
	router.GET("/bookings/user/:userId", h.listForUser)
	router.POST("/bookings/:id/cancel", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Missing booking fields"})
		return
	}

	var userID int64
	if req.UserID != "" {
		id, err := strconv.ParseInt(string(req.UserID), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid userId"})
			return
		}
		userID = id
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		UserID:         userID,
		FlightID:       string(req.FlightID),
		CabinClass:     req.CabinClass,
		PassengerName:  req.PassengerName,
		PassengerEmail: req.PassengerEmail,
		PassengerAge:   req.PassengerAge,
		TotalPrice:     req.TotalPrice,
		Seat:           req.Seat,
		Meal:           req.Meal,
		Drink:          req.Drink,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, createBookingResponse{Success: true, Booking: created})
}

func (h *BookingHandler) listForUser(c *gin.Context) {
	// A non-numeric id matches no user, so it lists nothing.
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, []domain.Booking{})
		return
	}

	bookings, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: "Booking not found"})
		return
	}

	if err := h.service.CancelBooking(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse{Success: true})
}
