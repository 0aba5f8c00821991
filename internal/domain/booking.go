package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type CabinClass string

const (
	CabinEconomy  CabinClass = "economy"
	CabinBusiness CabinClass = "business"
	CabinFirst    CabinClass = "first"
)

func (c CabinClass) Valid() bool {
	switch c {
	case CabinEconomy, CabinBusiness, CabinFirst:
		return true
	}
	return false
}

const (
	DefaultMeal  = "standard"
	DefaultDrink = "soft-drink"
)

type Booking struct {
	ID             int64         `json:"id"`
	UserID         int64         `json:"userId"`
	FlightID       string        `json:"flightId"`
	BookingRef     string        `json:"bookingRef"`
	CabinClass     CabinClass    `json:"cabinClass"`
	PassengerName  string        `json:"passengerName"`
	PassengerEmail string        `json:"passengerEmail"`
	PassengerAge   *int          `json:"passengerAge"`
	TotalPrice     float64       `json:"totalPrice"`
	Seat           *string       `json:"seat"`
	Meal           string        `json:"meal"`
	Drink          string        `json:"drink"`
	Status         BookingStatus `json:"status"`
	CreatedAt      time.Time     `json:"createdAt"`
}
