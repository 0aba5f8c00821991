package client

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/Domenick1991/lastchanceair/internal/domain"
)

const (
	SeatRows     = 8
	SeatsPerRow  = 6
	ExtraRows    = 2
	minSurcharge = 40.0
	maxSurcharge = 80.0
)

// Seat is a selected seat. Surcharge is drawn once when the seat is picked and
// is zero for standard seats.
type Seat struct {
	Label     string
	Row       int
	Extra     bool
	Surcharge float64
}

// SeatMap lists every seat label row by row, "1A" through "8F".
func SeatMap() [][]string {
	rows := make([][]string, SeatRows)
	for r := range rows {
		rows[r] = make([]string, SeatsPerRow)
		for s := range rows[r] {
			rows[r][s] = strconv.Itoa(r+1) + string(rune('A'+s))
		}
	}
	return rows
}

// IsExtraLegroom reports whether row is one of the front rows.
func IsExtraLegroom(row int) bool {
	return row >= 1 && row <= ExtraRows
}

func pickSeat(label string, rng *rand.Rand) (Seat, error) {
	if len(label) < 2 {
		return Seat{}, fmt.Errorf("unknown seat %q", label)
	}
	letter := label[len(label)-1]
	row, err := strconv.Atoi(label[:len(label)-1])
	if err != nil || row < 1 || row > SeatRows || letter < 'A' || letter >= 'A'+SeatsPerRow {
		return Seat{}, fmt.Errorf("unknown seat %q", label)
	}

	seat := Seat{Label: label, Row: row, Extra: IsExtraLegroom(row)}
	if seat.Extra {
		seat.Surcharge = minSurcharge + rng.Float64()*(maxSurcharge-minSurcharge)
	}
	return seat, nil
}

// CabinMultiplier scales the seat fare for the cabin class.
func CabinMultiplier(cabin domain.CabinClass) float64 {
	switch cabin {
	case domain.CabinBusiness:
		return 1.8
	case domain.CabinFirst:
		return 2.5
	default:
		return 1
	}
}

// TotalPrice is the discounted fare plus the seat surcharge, rounded to cents,
// then scaled by the cabin multiplier. The scaled value is not rounded again.
func TotalPrice(flight domain.Flight, seat *Seat, cabin domain.CabinClass) float64 {
	fare := float64(flight.BasePrice) * (1 - float64(flight.DiscountPercent)/100)
	if seat != nil {
		fare += seat.Surcharge
	}
	return roundCents(fare) * CabinMultiplier(cabin)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
