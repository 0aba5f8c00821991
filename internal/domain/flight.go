package domain

import "time"

const DateLayout = "2006-01-02"

type City struct {
	City string `json:"city"`
	Code string `json:"code"`
}

type Flight struct {
	ID              int64  `json:"id"`
	Airline         string `json:"airline"`
	OriginCity      string `json:"originCity"`
	OriginCode      string `json:"originCode"`
	DestinationCity string `json:"destinationCity"`
	DestinationCode string `json:"destinationCode"`
	DepartureDate   string `json:"departureDate"`
	DepartureTime   string `json:"departureTime"`
	DurationHours   int    `json:"durationHours"`
	BasePrice       int    `json:"basePrice"`
	DiscountPercent int    `json:"discountPercent"`
	SeatsAvailable  int    `json:"seatsAvailable"`
}

// DepartureDay is UTC midnight of the departure date.
func (f Flight) DepartureDay() time.Time {
	d, err := time.Parse(DateLayout, f.DepartureDate)
	if err != nil {
		return time.Time{}
	}
	return d
}
