package catalog

import (
	"cmp"
	"slices"
	"time"

	"github.com/Domenick1991/lastchanceair/internal/domain"
)

const urgencyWindowHours = 48

// DealScore combines discount depth with departure urgency. Past departures keep
// their discount term; the urgency term never goes below zero.
func DealScore(f domain.Flight, now time.Time) float64 {
	hoursUntil := f.DepartureDay().Sub(now).Hours()
	urgency := max(0, urgencyWindowHours-hoursUntil)
	return float64(f.DiscountPercent)*2 + urgency
}

// RankByDeal sorts flights in place by descending deal score. Equal scores keep
// their relative order.
func RankByDeal(flights []domain.Flight, now time.Time) {
	type scored struct {
		flight domain.Flight
		score  float64
	}
	ranked := make([]scored, len(flights))
	for i, f := range flights {
		ranked[i] = scored{flight: f, score: DealScore(f, now)}
	}
	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})
	for i, r := range ranked {
		flights[i] = r.flight
	}
}
