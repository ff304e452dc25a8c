//-------------------------------------------------------------------------
//
// pgEdge Textile Data Generator
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-textilegen/internal/logging"
	"github.com/pgEdge/pgedge-textilegen/internal/store"
)

var (
	initProducts     int
	initStartDate    string
	initEndDate      string
	initBatchSize    int
	initHolidays     string
	initDropExisting bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the schema and generate a complete dataset",
	Long: `Create the textile retail schema, insert master data, generate the
product catalog, resolve holidays and simulate sales for the configured
date range.

Example:
  pgedge-textilegen init --driver postgres --connection "postgres://..." \
      --start-date 2023-01-01 --end-date 2024-12-31`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().IntVar(&initProducts, "products", 0,
		"number of products to generate")
	initCmd.Flags().StringVar(&initStartDate, "start-date", "",
		"first sales day (YYYY-MM-DD)")
	initCmd.Flags().StringVar(&initEndDate, "end-date", "",
		"last sales day, inclusive (YYYY-MM-DD)")
	initCmd.Flags().IntVar(&initBatchSize, "batch-size", 0,
		"sales rows per commit")
	initCmd.Flags().StringVar(&initHolidays, "holidays", "",
		"holiday provider (calendarific, file, none)")
	initCmd.Flags().BoolVar(&initDropExisting, "drop-existing", false,
		"drop existing schema before initialization")
}

func runInit(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if initProducts > 0 {
		cfg.Catalog.NumProducts = initProducts
	}
	if initStartDate != "" {
		cfg.Sales.StartDate = initStartDate
	}
	if initEndDate != "" {
		cfg.Sales.EndDate = initEndDate
	}
	if initBatchSize > 0 {
		cfg.Sales.BatchSize = initBatchSize
	}
	if initHolidays != "" {
		cfg.Holidays.Provider = initHolidays
	}
	if initDropExisting {
		cfg.Init.DropExisting = true
	}

	// Validate configuration
	if err := cfg.ValidateInit(); err != nil {
		return err
	}

	ctx, cancel := withSignals(context.Background())
	defer cancel()

	logging.Info().
		Str("driver", cfg.Driver).
		Int("products", cfg.Catalog.NumProducts).
		Msg("Initializing database")

	st, err := store.Open(ctx, cfg.Driver, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	if err := prepareStore(ctx, st, cfg.Init.DropExisting); err != nil {
		return err
	}

	runSeed := resolveSeed(cfg.Seed)
	meta, err := populate(ctx, st, cfg, runSeed)
	if err != nil {
		return err
	}

	meta["initialized_at"] = meta["generated_at"]
	if err := st.SaveMetadata(ctx, meta); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logCounts(ctx, st)
	logging.Info().
		Str("run_id", meta["run_id"]).
		Str("seed", meta["seed"]).
		Msg("Database initialization complete")

	return nil
}
