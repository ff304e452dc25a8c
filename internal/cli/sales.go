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

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-textilegen/internal/logging"
	"github.com/pgEdge/pgedge-textilegen/internal/store"
)

var (
	salesStartDate string
	salesEndDate   string
	salesBatchSize int
)

var salesCmd = &cobra.Command{
	Use:   "sales",
	Short: "Regenerate the sales history of an initialized database",
	Long: `Delete all sales and simulate them again from the stored catalog and
holidays. Master data and products are left untouched.

Example:
  pgedge-textilegen sales --seed 7 --start-date 2024-01-01 --end-date 2024-12-31`,
	RunE: runSales,
}

func init() {
	salesCmd.Flags().StringVar(&salesStartDate, "start-date", "",
		"first sales day (YYYY-MM-DD)")
	salesCmd.Flags().StringVar(&salesEndDate, "end-date", "",
		"last sales day, inclusive (YYYY-MM-DD)")
	salesCmd.Flags().IntVar(&salesBatchSize, "batch-size", 0,
		"sales rows per commit")
}

func runSales(cmd *cobra.Command, args []string) error {
	if salesStartDate != "" {
		cfg.Sales.StartDate = salesStartDate
	}
	if salesEndDate != "" {
		cfg.Sales.EndDate = salesEndDate
	}
	if salesBatchSize > 0 {
		cfg.Sales.BatchSize = salesBatchSize
	}

	if err := cfg.ValidateSales(); err != nil {
		return err
	}

	ctx, cancel := withSignals(context.Background())
	defer cancel()

	st, err := store.Open(ctx, cfg.Driver, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	initialized, err := st.IsInitialized(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing data: %w", err)
	}
	if !initialized {
		return fmt.Errorf("database is not initialized; run 'pgedge-textilegen init' first")
	}

	runSeed := resolveSeed(cfg.Seed)
	meta, err := regenerate(ctx, st, cfg, runSeed)
	if err != nil {
		return err
	}
	if err := st.SaveMetadata(ctx, meta); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Info().
		Str("run_id", meta["run_id"]).
		Str("sales", meta["sales_rows"]).
		Msg("Sales regeneration complete")

	return nil
}
