//-------------------------------------------------------------------------
//
// pgEdge Textile Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package sales

import (
	"math/rand/v2"
	"time"

	"github.com/pgEdge/pgedge-textilegen/internal/holidays"
)

// DemandModel derives the daily transaction volume from calendar effects.
// Weekend, festival and seasonal factors compose multiplicatively.
type DemandModel struct {
	Average        float64
	WeekendFactor  float64
	FestivalFactor float64
	SeasonalFactor float64
	SeasonalMonths []time.Month

	// NoiseFraction is the standard deviation of the daily count as a
	// fraction of the expected count.
	NoiseFraction float64
}

// DefaultDemandModel returns the stock demand parameters.
func DefaultDemandModel() DemandModel {
	return DemandModel{
		Average:        120,
		WeekendFactor:  1.6,
		FestivalFactor: 2.2,
		SeasonalFactor: 1.2,
		SeasonalMonths: []time.Month{time.October, time.November, time.December},
		NoiseFraction:  0.16,
	}
}

// IsWeekend reports whether d is a Saturday or Sunday.
func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Multiplier returns the combined demand factor for a day.
func (m DemandModel) Multiplier(d time.Time, cal holidays.Calendar) float64 {
	mult := 1.0
	if IsWeekend(d) {
		mult *= m.WeekendFactor
	}
	if _, ok := cal.Name(d); ok {
		mult *= m.FestivalFactor
	}
	if m.inSeason(d.Month()) {
		mult *= m.SeasonalFactor
	}
	return mult
}

// Expected returns the expected transaction count for a day.
func (m DemandModel) Expected(d time.Time, cal holidays.Calendar) float64 {
	return m.Average * m.Multiplier(d, cal)
}

// Draw samples the actual count from N(expected, expected*NoiseFraction),
// truncated to an integer and floored at 1.
func (m DemandModel) Draw(expected float64, rng *rand.Rand) int {
	v := rng.NormFloat64()*expected*m.NoiseFraction + expected
	n := int(v)
	if n < 1 {
		return 1
	}
	return n
}

func (m DemandModel) inSeason(month time.Month) bool {
	for _, sm := range m.SeasonalMonths {
		if sm == month {
			return true
		}
	}
	return false
}
