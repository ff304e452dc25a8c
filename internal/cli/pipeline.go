//-------------------------------------------------------------------------
//
// pgEdge Textile Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/pgEdge/pgedge-textilegen/internal/catalog"
	"github.com/pgEdge/pgedge-textilegen/internal/config"
	"github.com/pgEdge/pgedge-textilegen/internal/datagen"
	"github.com/pgEdge/pgedge-textilegen/internal/holidays"
	"github.com/pgEdge/pgedge-textilegen/internal/logging"
	"github.com/pgEdge/pgedge-textilegen/internal/sales"
	"github.com/pgEdge/pgedge-textilegen/internal/store"
	"github.com/pgEdge/pgedge-textilegen/pkg/version"
)

const appName = "pgedge-textilegen"

// withSignals returns a context cancelled on SIGINT or SIGTERM.
func withSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logging.Info().
				Str("signal", sig.String()).
				Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

// resolveSeed returns the configured seed, or a time-based one when it is 0.
func resolveSeed(configured uint64) uint64 {
	if configured != 0 {
		return configured
	}
	s := uint64(time.Now().UnixNano())
	logging.Info().
		Uint64("seed", s).
		Msg("No seed configured; using a time-based seed")
	return s
}

// simulationConfig converts the sales configuration into simulator input.
func simulationConfig(s config.SalesConfig) (sales.Config, error) {
	start, end, err := s.DateRange()
	if err != nil {
		return sales.Config{}, err
	}
	return sales.Config{
		Start: start,
		End:   end,
		Demand: sales.DemandModel{
			Average:        s.AvgTransactionsPerDay,
			WeekendFactor:  s.WeekendMultiplier,
			FestivalFactor: s.FestivalMultiplier,
			SeasonalFactor: s.SeasonalMultiplier,
			SeasonalMonths: s.Months(),
			NoiseFraction:  s.NoiseFraction,
		},
		PopularityExponent: s.PopularityExponent,
	}, nil
}

// holidayProvider builds the configured holiday provider.
func holidayProvider(h config.HolidaysConfig) (holidays.Provider, error) {
	return holidays.NewProvider(holidays.Options{
		Provider: h.Provider,
		APIKey:   h.APIKey,
		Country:  h.Country,
		File:     h.File,
		Timeout:  time.Duration(h.Timeout) * time.Second,
	})
}

// resolveHolidays fetches holidays for every year of the sales range.
func resolveHolidays(ctx context.Context, c *config.Config) (holidays.Calendar, error) {
	years, err := c.Sales.Years()
	if err != nil {
		return nil, err
	}
	return fetchHolidays(ctx, c.Holidays, years)
}

func fetchHolidays(ctx context.Context, h config.HolidaysConfig, years []int) (holidays.Calendar, error) {
	provider, err := holidayProvider(h)
	if err != nil {
		return nil, err
	}
	return holidays.Load(ctx, provider, years), nil
}

// prepareStore readies st for a fresh run. A completed dataset is only
// replaced when dropExisting is set; tables left behind by an interrupted
// run are always dropped.
func prepareStore(ctx context.Context, st store.Store, dropExisting bool) error {
	initialized, err := st.IsInitialized(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing data: %w", err)
	}
	if initialized && !dropExisting {
		return fmt.Errorf("database is already initialized; use --drop-existing to reinitialize")
	}

	partial := false
	if !initialized {
		partial, err = st.HasSchema(ctx)
		if err != nil {
			return fmt.Errorf("failed to check existing data: %w", err)
		}
	}

	switch {
	case dropExisting:
		logging.Info().Msg("Dropping existing schema")
	case partial:
		logging.Warn().Msg("Found tables from an interrupted run; dropping them")
	default:
		return nil
	}
	return st.DropSchema(ctx)
}

// populate builds a complete dataset in an empty store and returns the
// metadata describing it.
func populate(ctx context.Context, st store.Store, c *config.Config, runSeed uint64) (map[string]string, error) {
	logging.Info().Msg("Creating schema")
	if err := st.CreateSchema(ctx); err != nil {
		return nil, err
	}

	master := catalog.DefaultMasterData()
	if err := st.SaveMasterData(ctx, master); err != nil {
		return nil, fmt.Errorf("failed to save master data: %w", err)
	}

	logging.Info().
		Int("products", c.Catalog.NumProducts).
		Msg("Generating catalog")
	cat, err := catalog.Generate(datagen.NewFakerWithSeed(runSeed), master, c.Catalog.NumProducts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate catalog: %w", err)
	}
	if err := st.SaveCatalog(ctx, cat); err != nil {
		return nil, fmt.Errorf("failed to save catalog: %w", err)
	}

	cal, err := resolveHolidays(ctx, c)
	if err != nil {
		return nil, err
	}
	if err := st.SaveHolidays(ctx, cal); err != nil {
		return nil, fmt.Errorf("failed to save holidays: %w", err)
	}

	products, variants := cat.SalesInputs()
	stats, err := generateSales(ctx, st, c.Sales, products, variants, cal, runSeed)
	if err != nil {
		return nil, err
	}

	return runMetadata(c, runSeed, stats), nil
}

// regenerate replaces the sales of an initialized store, reusing its catalog
// and persisted holidays. Years of the range with no persisted holidays are
// fetched from the provider and saved.
func regenerate(ctx context.Context, st store.Store, c *config.Config, runSeed uint64) (map[string]string, error) {
	products, variants, err := st.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	logging.Info().
		Int("products", len(products)).
		Msg("Loaded catalog")

	cal, err := st.LoadHolidays(ctx)
	if err != nil {
		return nil, err
	}
	if cal == nil {
		cal = holidays.Calendar{}
	}

	years, err := c.Sales.Years()
	if err != nil {
		return nil, err
	}
	if missing := cal.MissingYears(years); len(missing) > 0 {
		fetched, err := fetchHolidays(ctx, c.Holidays, missing)
		if err != nil {
			return nil, err
		}
		if err := st.SaveHolidays(ctx, fetched); err != nil {
			return nil, fmt.Errorf("failed to save holidays: %w", err)
		}
		for date, name := range fetched {
			cal[date] = name
		}
	}

	logging.Info().Msg("Clearing existing sales")
	if err := st.ClearSales(ctx); err != nil {
		return nil, err
	}

	stats, err := generateSales(ctx, st, c.Sales, products, variants, cal, runSeed)
	if err != nil {
		return nil, err
	}
	return runMetadata(c, runSeed, stats), nil
}

// generateSales simulates the configured date range into st. On error only
// batches already flushed remain in the store.
func generateSales(
	ctx context.Context,
	st store.Store,
	s config.SalesConfig,
	products []sales.Product,
	variants map[int64][]int64,
	cal holidays.Calendar,
	runSeed uint64,
) (sales.Stats, error) {
	simCfg, err := simulationConfig(s)
	if err != nil {
		return sales.Stats{}, err
	}

	rng := rand.New(rand.NewPCG(runSeed, runSeed))
	sim, err := sales.New(simCfg, products, variants, cal, rng)
	if err != nil {
		return sales.Stats{}, err
	}

	writer, err := sales.NewBatchWriter(st, s.BatchSize)
	if err != nil {
		return sales.Stats{}, err
	}

	logging.Info().
		Str("start", s.StartDate).
		Str("end", s.EndDate).
		Int("batch_size", s.BatchSize).
		Msg("Generating sales")

	stats, err := sim.Run(ctx, func(r sales.Record) error {
		return writer.Add(ctx, r)
	})
	if err != nil {
		logging.Warn().
			Int64("written", writer.Written()).
			Int("discarded", writer.Buffered()).
			Msg("Sales generation stopped")
		return stats, fmt.Errorf("sales generation failed: %w", err)
	}
	if err := writer.Close(ctx); err != nil {
		return stats, fmt.Errorf("failed to flush sales: %w", err)
	}

	logging.Info().
		Int("days", stats.Days).
		Int64("sales", stats.Emitted).
		Int64("skipped", stats.Skipped).
		Int("batches", writer.Flushes()).
		Msg("Sales generated")

	return stats, nil
}

// runMetadata describes a completed generation run.
func runMetadata(c *config.Config, runSeed uint64, stats sales.Stats) map[string]string {
	return map[string]string{
		"app":            appName,
		"version":        version.Short(),
		"driver":         c.Driver,
		"seed":           strconv.FormatUint(runSeed, 10),
		"run_id":         uuid.NewString(),
		"generated_at":   time.Now().UTC().Format(time.RFC3339),
		"start_date":     c.Sales.StartDate,
		"end_date":       c.Sales.EndDate,
		"holiday_source": c.Holidays.Provider,
		"sales_days":     strconv.Itoa(stats.Days),
		"sales_rows":     strconv.FormatInt(stats.Emitted, 10),
	}
}

// logCounts logs the row count of every dataset table.
func logCounts(ctx context.Context, st store.Store) {
	counts, err := st.TableCounts(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("Failed to count rows")
		return
	}
	for _, table := range store.Tables {
		logging.Info().
			Str("table", table).
			Int64("rows", counts[table]).
			Msg("Table populated")
	}
}
