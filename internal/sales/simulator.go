//-------------------------------------------------------------------------
//
// pgEdge Textile Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package sales simulates day-by-day retail transactions and batches them
// out to a store.
package sales

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pgEdge/pgedge-textilegen/internal/holidays"
	"github.com/pgEdge/pgedge-textilegen/internal/logging"
)

var (
	// ErrEmptyCatalog is returned when there are no products to sell.
	ErrEmptyCatalog = errors.New("product catalog is empty")

	// ErrInvalidRange is returned when the end date precedes the start date.
	ErrInvalidRange = errors.New("end date is before start date")
)

// quantityWeights are the cumulative weights for quantities 1, 2 and 3.
var quantityWeights = [3]float64{0.86, 0.98, 1.0}

// Product is the simulator's view of a catalog product.
type Product struct {
	ID         int64
	CategoryID int64
	Price      float64
}

// ResolvePrice returns the offer price if set, else the current price,
// else 0.
func ResolvePrice(afterOffer, current *float64) float64 {
	if afterOffer != nil && *afterOffer != 0 {
		return *afterOffer
	}
	if current != nil && *current != 0 {
		return *current
	}
	return 0
}

// Config holds the simulation parameters.
type Config struct {
	// Start and End bound the simulated range; both days are included.
	Start time.Time
	End   time.Time

	Demand             DemandModel
	PopularityExponent float64
}

// Stats summarizes a simulation run.
type Stats struct {
	Days      int
	Attempted int64
	Emitted   int64
	Skipped   int64
}

// Simulator generates sale records over a date range.
type Simulator struct {
	cfg      Config
	dist     *Distribution
	products map[int64]Product
	variants map[int64][]int64
	calendar holidays.Calendar
	rng      *rand.Rand

	// counter numbers transactions across the whole run.
	counter int64
}

// New creates a simulator. Products without variants stay in the
// popularity distribution; transactions that draw them are dropped.
func New(cfg Config, products []Product, variants map[int64][]int64,
	cal holidays.Calendar, rng *rand.Rand) (*Simulator, error) {
	if cfg.End.Before(cfg.Start) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange,
			cfg.Start.Format(holidays.DateLayout), cfg.End.Format(holidays.DateLayout))
	}
	if rng == nil {
		return nil, errors.New("random source is required")
	}

	ids := make([]int64, len(products))
	byID := make(map[int64]Product, len(products))
	for i, p := range products {
		ids[i] = p.ID
		byID[p.ID] = p
	}

	dist, err := BuildDistribution(ids, cfg.PopularityExponent)
	if err != nil {
		return nil, err
	}

	if cal == nil {
		cal = holidays.Calendar{}
	}

	return &Simulator{
		cfg:      cfg,
		dist:     dist,
		products: byID,
		variants: variants,
		calendar: cal,
		rng:      rng,
	}, nil
}

// Run simulates every day from Start to End and passes each record to
// emit. The context is checked between days.
func (s *Simulator) Run(ctx context.Context, emit func(Record) error) (Stats, error) {
	var stats Stats

	start := truncateDay(s.cfg.Start)
	end := truncateDay(s.cfg.End)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if err := s.simulateDay(d, emit, &stats); err != nil {
			return stats, err
		}
		stats.Days++
	}

	logging.Info().
		Int("days", stats.Days).
		Int64("attempted", stats.Attempted).
		Int64("emitted", stats.Emitted).
		Int64("skipped", stats.Skipped).
		Msg("Sales simulation complete")

	return stats, nil
}

func (s *Simulator) simulateDay(d time.Time, emit func(Record) error, stats *Stats) error {
	weekend := IsWeekend(d)
	holidayName, isHoliday := s.calendar.Name(d)

	expected := s.cfg.Demand.Expected(d, s.calendar)
	count := s.cfg.Demand.Draw(expected, s.rng)

	logging.Debug().
		Str("date", d.Format(holidays.DateLayout)).
		Float64("expected", expected).
		Int("transactions", count).
		Bool("weekend", weekend).
		Str("holiday", holidayName).
		Msg("Simulating day")

	for i := 0; i < count; i++ {
		stats.Attempted++
		rec, ok := s.transaction(d, weekend, isHoliday, holidayName)
		if !ok {
			stats.Skipped++
			continue
		}
		if err := emit(rec); err != nil {
			return err
		}
		stats.Emitted++
	}
	return nil
}

// transaction produces one sale. It returns false, with the counter still
// advanced, when the drawn product has no variants; such sales are dropped
// rather than redrawn.
func (s *Simulator) transaction(d time.Time, weekend, isHoliday bool, holidayName string) (Record, bool) {
	s.counter++
	txnID := fmt.Sprintf("TX%s-%d", d.Format("20060102"), s.counter)

	productID := s.dist.Draw(s.rng)
	variants := s.variants[productID]
	if len(variants) == 0 {
		return Record{}, false
	}

	variantID := variants[s.rng.IntN(len(variants))]
	qty := s.quantity()
	unit := s.products[productID].Price

	return Record{
		TransactionID: txnID,
		SaleDate:      d,
		ProductID:     productID,
		VariantID:     variantID,
		Quantity:      qty,
		UnitPrice:     unit,
		TotalPrice:    LineTotal(unit, qty),
		IsWeekend:     weekend,
		IsHoliday:     isHoliday,
		HolidayName:   holidayName,
	}, true
}

func (s *Simulator) quantity() int {
	r := s.rng.Float64()
	for i, cum := range quantityWeights {
		if r < cum {
			return i + 1
		}
	}
	return len(quantityWeights)
}

// Counter returns the number of transaction ids issued so far.
func (s *Simulator) Counter() int64 {
	return s.counter
}

// LineTotal returns unit*qty rounded to two decimal places.
func LineTotal(unit float64, qty int) float64 {
	return decimal.NewFromFloat(unit).
		Mul(decimal.NewFromInt(int64(qty))).
		Round(2).
		InexactFloat64()
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
