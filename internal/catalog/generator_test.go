package catalog

import (
	"math/rand/v2"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var departureTimeRe = regexp.MustCompile(`^([01]\d|2[0-3]):(00|30)$`)

func TestGenerator_Invariants(t *testing.T) {
	now := time.Date(2026, 10, 17, 15, 4, 0, 0, time.UTC)
	g := NewGenerator(rand.New(rand.NewPCG(1, 2)))

	var id int64
	flights := g.Generate(now, func() int64 { id++; return id })
	require.NotEmpty(t, flights)

	today := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	perRouteDay := map[string]int{}
	for i, f := range flights {
		assert.Equal(t, int64(i+1), f.ID)
		assert.NotEqual(t, f.OriginCode, f.DestinationCode)

		day := f.DepartureDay()
		assert.False(t, day.Before(today), "departure %s before today", f.DepartureDate)
		assert.False(t, day.After(today.AddDate(0, 0, HorizonDays)), "departure %s past horizon", f.DepartureDate)

		assert.Regexp(t, departureTimeRe, f.DepartureTime)
		hour := (int(f.DepartureTime[0]-'0'))*10 + int(f.DepartureTime[1]-'0')
		assert.GreaterOrEqual(t, hour, 6)

		assert.GreaterOrEqual(t, f.DurationHours, 2)
		assert.LessOrEqual(t, f.DurationHours, 6)
		assert.GreaterOrEqual(t, f.BasePrice, 90)
		assert.LessOrEqual(t, f.BasePrice, 480)
		assert.GreaterOrEqual(t, f.SeatsAvailable, 5)
		assert.LessOrEqual(t, f.SeatsAvailable, 40)

		offset := int(day.Sub(today).Hours() / 24)
		if offset <= 1 {
			assert.GreaterOrEqual(t, f.DiscountPercent, 20)
			assert.LessOrEqual(t, f.DiscountPercent, 45)
		} else {
			assert.GreaterOrEqual(t, f.DiscountPercent, 10)
			assert.LessOrEqual(t, f.DiscountPercent, 35)
		}
		assert.Contains(t, airlines, f.Airline)

		perRouteDay[f.OriginCode+f.DestinationCode+f.DepartureDate]++
	}

	// 15 cities -> 210 ordered pairs, 6 days each.
	assert.Len(t, perRouteDay, 210*6)
	for key, n := range perRouteDay {
		assert.True(t, n >= 4 && n <= 7, "%s has %d flights", key, n)
	}
}

func TestGenerator_DifferentRuns(t *testing.T) {
	now := time.Now()
	var a, b int64
	first := NewGenerator(nil).Generate(now, func() int64 { a++; return a })
	second := NewGenerator(rand.New(rand.NewPCG(99, 100))).Generate(now, func() int64 { b++; return b })
	assert.NotEqual(t, first, second)
}
