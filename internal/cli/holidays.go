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
)

var (
	holidaysStartDate string
	holidaysEndDate   string
	holidaysProvider  string
)

var holidaysCmd = &cobra.Command{
	Use:   "holidays",
	Short: "Resolve and print the holiday calendar",
	Long: `Resolve holidays for every year of the sales date range with the
configured provider and print them as "date  name" lines. Nothing is
written to the database.`,
	RunE: runHolidays,
}

func init() {
	holidaysCmd.Flags().StringVar(&holidaysStartDate, "start-date", "",
		"first sales day (YYYY-MM-DD)")
	holidaysCmd.Flags().StringVar(&holidaysEndDate, "end-date", "",
		"last sales day, inclusive (YYYY-MM-DD)")
	holidaysCmd.Flags().StringVar(&holidaysProvider, "provider", "",
		"holiday provider (calendarific, file, none)")
}

func runHolidays(cmd *cobra.Command, args []string) error {
	if holidaysStartDate != "" {
		cfg.Sales.StartDate = holidaysStartDate
	}
	if holidaysEndDate != "" {
		cfg.Sales.EndDate = holidaysEndDate
	}
	if holidaysProvider != "" {
		cfg.Holidays.Provider = holidaysProvider
	}

	if _, _, err := cfg.Sales.DateRange(); err != nil {
		return err
	}
	if err := cfg.ValidateHolidays(); err != nil {
		return err
	}

	ctx, cancel := withSignals(context.Background())
	defer cancel()

	cal, err := resolveHolidays(ctx, cfg)
	if err != nil {
		return err
	}

	for _, date := range cal.Dates() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", date, cal[date])
	}
	return nil
}
