//-------------------------------------------------------------------------
//
// pgEdge Textile Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package holidays resolves the holiday calendar used by the sales
// simulation. Whatever the source, the result is a plain date -> name map;
// provider failures degrade to an empty calendar.
package holidays

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pgEdge/pgedge-textilegen/internal/logging"
)

// DateLayout is the ISO date layout used as calendar key.
const DateLayout = "2006-01-02"

// Calendar maps an ISO date ("YYYY-MM-DD") to a holiday name.
// Absent dates are not holidays.
type Calendar map[string]string

// Name returns the holiday name for the given day, if any.
func (c Calendar) Name(d time.Time) (string, bool) {
	name, ok := c[d.Format(DateLayout)]
	return name, ok
}

// Dates returns the holiday dates in ascending order.
func (c Calendar) Dates() []string {
	dates := make([]string, 0, len(c))
	for d := range c {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Len returns the number of holidays.
func (c Calendar) Len() int {
	return len(c)
}

// MissingYears returns the years, in the given order, with no holiday in c.
func (c Calendar) MissingYears(years []int) []int {
	present := make(map[int]bool)
	for date := range c {
		if d, err := time.Parse(DateLayout, date); err == nil {
			present[d.Year()] = true
		}
	}

	var missing []int
	for _, y := range years {
		if !present[y] {
			missing = append(missing, y)
		}
	}
	return missing
}

// Provider fetches holidays for a set of years.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Fetch returns the holidays of the given years.
	Fetch(ctx context.Context, years []int) (Calendar, error)
}

// Options configures provider construction.
type Options struct {
	// Provider is calendarific, file or none.
	Provider string

	// APIKey is the Calendarific API key.
	APIKey string

	// Country is the ISO country code for Calendarific.
	Country string

	// File is the path of a YAML or JSON holiday file.
	File string

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration
}

// NewProvider returns the provider selected by opts.
func NewProvider(opts Options) (Provider, error) {
	switch opts.Provider {
	case "calendarific":
		return NewCalendarific(opts.APIKey, opts.Country, opts.Timeout), nil
	case "file":
		return NewFileProvider(opts.File), nil
	case "none", "":
		return NoneProvider{}, nil
	default:
		return nil, fmt.Errorf("unknown holiday provider: %s", opts.Provider)
	}
}

// Load fetches holidays from p and never fails: on error it logs a warning
// and returns whatever was resolved, possibly an empty calendar.
func Load(ctx context.Context, p Provider, years []int) Calendar {
	cal, err := p.Fetch(ctx, years)
	if err != nil {
		logging.Warn().
			Err(err).
			Str("provider", p.Name()).
			Msg("Holiday lookup failed; continuing without the missing holidays")
	}
	if cal == nil {
		cal = Calendar{}
	}

	logging.Info().
		Str("provider", p.Name()).
		Ints("years", years).
		Int("holidays", len(cal)).
		Msg("Resolved holiday calendar")

	return cal
}

// NoneProvider returns an empty calendar.
type NoneProvider struct{}

// Name returns the provider name.
func (NoneProvider) Name() string {
	return "none"
}

// Fetch returns an empty calendar.
func (NoneProvider) Fetch(ctx context.Context, years []int) (Calendar, error) {
	return Calendar{}, nil
}

func inYears(date string, years []int) bool {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	for _, y := range years {
		if d.Year() == y {
			return true
		}
	}
	return false
}
