package catalog

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Domenick1991/lastchanceair/internal/domain"
)

const (
	// HorizonDays is the last day offset the generator covers.
	HorizonDays = 5

	minFlightsPerRoute = 4
	maxFlightsPerRoute = 7
	urgencyBoostDays   = 1
	urgencyBoost       = 10
)

// Generator draws mock flights for every ordered city pair over the horizon.
type Generator struct {
	rng    *rand.Rand
	cities []domain.City
}

func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &Generator{rng: rng, cities: cities}
}

// Generate builds flights for day offsets 0..HorizonDays starting at the UTC date of
// now. nextID is called once per flight to assign its id.
func (g *Generator) Generate(now time.Time, nextID func() int64) []domain.Flight {
	today := now.UTC().Truncate(24 * time.Hour)
	flights := make([]domain.Flight, 0, (HorizonDays+1)*len(g.cities)*(len(g.cities)-1)*6)

	for offset := 0; offset <= HorizonDays; offset++ {
		date := today.AddDate(0, 0, offset).Format(domain.DateLayout)
		for _, origin := range g.cities {
			for _, dest := range g.cities {
				if origin.Code == dest.Code {
					continue
				}
				count := g.between(minFlightsPerRoute, maxFlightsPerRoute)
				for i := 0; i < count; i++ {
					flights = append(flights, g.flight(nextID(), origin, dest, date, offset))
				}
			}
		}
	}
	return flights
}

func (g *Generator) flight(id int64, origin, dest domain.City, date string, offset int) domain.Flight {
	hour := g.between(6, 23)
	minute := "30"
	if g.rng.IntN(2) == 1 {
		minute = "00"
	}

	discount := g.between(10, 35)
	if offset <= urgencyBoostDays {
		discount += urgencyBoost
	}

	return domain.Flight{
		ID:              id,
		Airline:         airlines[g.rng.IntN(len(airlines))],
		OriginCity:      origin.City,
		OriginCode:      origin.Code,
		DestinationCity: dest.City,
		DestinationCode: dest.Code,
		DepartureDate:   date,
		DepartureTime:   fmt.Sprintf("%02d:%s", hour, minute),
		DurationHours:   g.between(2, 6),
		BasePrice:       g.between(90, 480),
		DiscountPercent: discount,
		SeatsAvailable:  g.between(5, 40),
	}
}

// between returns a uniform integer in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}
