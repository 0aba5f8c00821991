package catalog

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/Domenick1991/lastchanceair/internal/domain"
	"github.com/google/uuid"
)

// Snapshot is an immutable generation of the catalog. Callers must not modify
// the Flights slice.
type Snapshot struct {
	// Instance identifies the catalog that built the snapshot. Versions restart
	// at 1 in every process, so Version alone does not name a flight set.
	Instance    string
	Version     uint64
	GeneratedAt time.Time
	Flights     []domain.Flight
	byID        map[int64]int
}

// Key names this generation across processes, e.g. for shared caches.
func (s *Snapshot) Key() string {
	return fmt.Sprintf("%s:v%d", s.Instance, s.Version)
}

func (s *Snapshot) Get(id int64) (domain.Flight, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return domain.Flight{}, false
	}
	return s.Flights[idx], true
}

// Catalog owns the current snapshot. Regenerate swaps in a fully built snapshot
// with a single atomic store, so readers never see a partial set.
type Catalog struct {
	instance  string
	generator *Generator
	now       func() time.Time
	current   atomic.Pointer[Snapshot]
	version   atomic.Uint64
	lastID    atomic.Int64
}

type Option func(*Catalog)

func WithClock(now func() time.Time) Option {
	return func(c *Catalog) {
		c.now = now
	}
}

func WithGenerator(g *Generator) Option {
	return func(c *Catalog) {
		c.generator = g
	}
}

// New builds a catalog and generates its first snapshot.
func New(opts ...Option) *Catalog {
	c := &Catalog{instance: uuid.NewString(), now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	if c.generator == nil {
		c.generator = NewGenerator(nil)
	}
	c.Regenerate()
	return c
}

// FromFlights builds a catalog over a fixed flight set. Regenerate on such a
// catalog draws a fresh random set like any other.
func FromFlights(flights []domain.Flight, opts ...Option) *Catalog {
	c := &Catalog{instance: uuid.NewString(), now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	if c.generator == nil {
		c.generator = NewGenerator(nil)
	}
	var maxID int64
	for _, f := range flights {
		maxID = max(maxID, f.ID)
	}
	c.lastID.Store(maxID)
	c.install(flights)
	return c
}

func (c *Catalog) Regenerate() *Snapshot {
	flights := c.generator.Generate(c.now(), func() int64 { return c.lastID.Add(1) })
	s := c.install(flights)
	log.Printf("catalog %s generated: %d flights", s.Key(), len(s.Flights))
	return s
}

func (c *Catalog) Snapshot() *Snapshot {
	return c.current.Load()
}

func (c *Catalog) Now() time.Time {
	return c.now()
}

func (c *Catalog) install(flights []domain.Flight) *Snapshot {
	byID := make(map[int64]int, len(flights))
	for i, f := range flights {
		byID[f.ID] = i
	}
	s := &Snapshot{
		Instance:    c.instance,
		Version:     c.version.Add(1),
		GeneratedAt: c.now(),
		Flights:     flights,
		byID:        byID,
	}
	c.current.Store(s)
	return s
}
