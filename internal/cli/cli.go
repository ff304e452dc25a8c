//-------------------------------------------------------------------------
//
// pgEdge Textile Data Generator
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for pgedge-textilegen.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-textilegen/internal/config"
	"github.com/pgEdge/pgedge-textilegen/internal/logging"
	"github.com/pgEdge/pgedge-textilegen/internal/store"
	"github.com/pgEdge/pgedge-textilegen/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	driver     string
	connection string
	logLevel   string
	logFile    string
	seed       uint64

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "pgedge-textilegen",
		Short: "Synthetic retail textile dataset generator",
		Long: `pgedge-textilegen creates the schema of a fictional textile retailer,
fills it with master data and a product catalog, and simulates a multi-year
history of daily sales driven by weekends, festivals and the year-end season.

The dataset is written to PostgreSQL or to a SQLite file and is fully
reproducible for a given seed.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./pgedge-textilegen.yaml)")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "",
		"storage backend (sqlite, postgres)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"SQLite file path or PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also write JSON logs to this file")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0,
		"random seed (0 picks a time-based seed)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(salesCmd)
	rootCmd.AddCommand(holidaysCmd)
	rootCmd.AddCommand(driversCmd)
}

func initConfig(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if driver != "" {
		cfg.Driver = driver
	}
	if connection != "" {
		cfg.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
		File:   cfg.LogFile,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var driversCmd = &cobra.Command{
	Use:   "drivers",
	Short: "List available storage backends",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available storage backends:")
		cmd.Println()
		for _, name := range store.List() {
			cmd.Printf("  %s\n", name)
		}
		cmd.Println()
		cmd.Println("Select one with --driver or the 'driver' config key.")
	},
}
