package flights

import (
	"context"
	"fmt"
	"log"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/Domenick1991/lastchanceair/internal/catalog"
	"github.com/Domenick1991/lastchanceair/internal/domain"
)

const (
	// MaxDeals caps the deals listing.
	MaxDeals = 24

	dealsWindow        = 3 * 24 * time.Hour
	searchToleranceDay = 1.01
	day                = 24 * time.Hour
)

type FlightUseCase interface {
	Cities(ctx context.Context) []domain.City
	Search(ctx context.Context, query SearchQuery) ([]domain.Flight, error)
	Deals(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
}

// Catalog is the read side of the in-memory flight catalog.
type Catalog interface {
	Snapshot() *catalog.Snapshot
	Now() time.Time
}

type DealsCache interface {
	GetDeals(ctx context.Context, generation string) ([]domain.Flight, error)
	SetDeals(ctx context.Context, generation string, flights []domain.Flight) error
}

type SearchQuery struct {
	From string
	To   string
	Date string
}

type FlightService struct {
	catalog Catalog
	cache   DealsCache
}

// NewFlightService builds the service. cache may be nil.
func NewFlightService(c Catalog, cache DealsCache) *FlightService {
	return &FlightService{catalog: c, cache: cache}
}

func (s *FlightService) Cities(_ context.Context) []domain.City {
	return catalog.Cities()
}

func (s *FlightService) Search(_ context.Context, q SearchQuery) ([]domain.Flight, error) {
	from, to := ExtractCode(q.From), ExtractCode(q.To)
	if from == "" || to == "" || strings.TrimSpace(q.Date) == "" {
		return nil, fmt.Errorf("missing from/to/date: %w", domain.ErrInvalidRequest)
	}
	selected, err := time.Parse(domain.DateLayout, strings.TrimSpace(q.Date))
	if err != nil {
		return nil, fmt.Errorf("date %q is not YYYY-MM-DD: %w", q.Date, domain.ErrInvalidRequest)
	}

	now := s.catalog.Now()
	result := make([]domain.Flight, 0)
	if selected.Sub(now) > catalog.HorizonDays*day {
		return result, nil
	}

	for _, f := range s.catalog.Snapshot().Flights {
		if f.OriginCode != from || f.DestinationCode != to {
			continue
		}
		delta := math.Abs(f.DepartureDay().Sub(selected).Hours() / 24)
		if delta <= searchToleranceDay {
			result = append(result, f)
		}
	}
	catalog.RankByDeal(result, now)
	return result, nil
}

func (s *FlightService) Deals(ctx context.Context) ([]domain.Flight, error) {
	snapshot := s.catalog.Snapshot()

	if s.cache != nil {
		if cached, err := s.cache.GetDeals(ctx, snapshot.Key()); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			log.Printf("deals cache read: %v", err)
		}
	}

	now := s.catalog.Now()
	startOfToday := now.UTC().Truncate(day)
	until := now.Add(dealsWindow)

	deals := make([]domain.Flight, 0)
	for _, f := range snapshot.Flights {
		d := f.DepartureDay()
		if d.Before(startOfToday) || d.After(until) {
			continue
		}
		deals = append(deals, f)
	}
	catalog.RankByDeal(deals, now)
	if len(deals) > MaxDeals {
		deals = deals[:MaxDeals]
	}

	if s.cache != nil {
		if err := s.cache.SetDeals(ctx, snapshot.Key(), deals); err != nil {
			log.Printf("deals cache write: %v", err)
		}
	}
	return deals, nil
}

func (s *FlightService) GetByID(_ context.Context, id int64) (*domain.Flight, error) {
	f, ok := s.catalog.Snapshot().Get(id)
	if !ok {
		return nil, fmt.Errorf("flight %d: %w", id, domain.ErrNotFound)
	}
	return &f, nil
}

var parenCode = regexp.MustCompile(`(?i)\(([A-Z0-9]{3})\)`)

// ExtractCode turns a free-form city descriptor into an airport code:
// "Los Angeles (LAX)" and "lax" both give "LAX"; anything else falls back to
// its last three characters. Empty input gives "".
func ExtractCode(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if m := parenCode.FindStringSubmatch(value); m != nil {
		return strings.ToUpper(m[1])
	}
	runes := []rune(value)
	if len(runes) <= 3 {
		return strings.ToUpper(value)
	}
	return strings.ToUpper(string(runes[len(runes)-3:]))
}

var _ FlightUseCase = (*FlightService)(nil)
