//-------------------------------------------------------------------------
//
// pgEdge Textile Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package holidays

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pgEdge/pgedge-textilegen/internal/logging"
)

// DefaultCalendarificURL is the Calendarific holidays endpoint.
const DefaultCalendarificURL = "https://calendarific.com/api/v2/holidays"

// Calendarific fetches public holidays from the Calendarific API.
type Calendarific struct {
	BaseURL string
	APIKey  string
	Country string
	Client  *http.Client
}

// NewCalendarific creates a Calendarific provider.
func NewCalendarific(apiKey, country string, timeout time.Duration) *Calendarific {
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return &Calendarific{
		BaseURL: DefaultCalendarificURL,
		APIKey:  apiKey,
		Country: country,
		Client:  &http.Client{Timeout: timeout},
	}
}

// Name returns the provider name.
func (c *Calendarific) Name() string {
	return "calendarific"
}

type calendarificResponse struct {
	Response struct {
		Holidays []struct {
			Name string `json:"name"`
			Date struct {
				ISO string `json:"iso"`
			} `json:"date"`
		} `json:"holidays"`
	} `json:"response"`
}

// Fetch requests each year separately. A failed year is logged and skipped;
// an error is returned only when every year failed.
func (c *Calendarific) Fetch(ctx context.Context, years []int) (Calendar, error) {
	if c.APIKey == "" {
		return Calendar{}, errors.New("calendarific api key is not configured")
	}

	cal := Calendar{}
	var errs []error
	for _, year := range years {
		n, err := c.fetchYear(ctx, year, cal)
		if err != nil {
			logging.Warn().
				Err(err).
				Int("year", year).
				Msg("Error fetching Calendarific holidays")
			errs = append(errs, fmt.Errorf("year %d: %w", year, err))
			continue
		}
		logging.Debug().
			Int("year", year).
			Int("holidays", n).
			Msg("Fetched holidays via Calendarific")
	}

	if len(years) > 0 && len(errs) == len(years) {
		return cal, errors.Join(errs...)
	}
	return cal, nil
}

func (c *Calendarific) fetchYear(ctx context.Context, year int, cal Calendar) (int, error) {
	q := url.Values{}
	q.Set("api_key", c.APIKey)
	q.Set("country", c.Country)
	q.Set("year", strconv.Itoa(year))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var body calendarificResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	for _, h := range body.Response.Holidays {
		// ISO values may carry a time part for observances
		date, _, _ := strings.Cut(h.Date.ISO, "T")
		if date == "" {
			continue
		}
		cal[date] = h.Name
	}
	return len(body.Response.Holidays), nil
}
