//-------------------------------------------------------------------------
//
// pgEdge Textile Data Generator
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for pgedge-textilegen.
// Configuration is loaded from config files and CLI flags. CLI flags take
// precedence over config file values. Only secrets (the connection string and
// the holiday API key) are read from the environment, optionally via a .env
// file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pgEdge/pgedge-textilegen/internal/datagen"
)

// DateLayout is the layout used for dates in configuration.
const DateLayout = "2006-01-02"

// EnvPrefix prefixes the environment variables bound to secret settings.
const EnvPrefix = "PGEDGE_TEXTILEGEN"

var validate = validator.New()

// Config holds all configuration for pgedge-textilegen.
type Config struct {
	// Driver selects the storage backend (sqlite, postgres).
	Driver string `mapstructure:"driver" validate:"required,oneof=sqlite postgres"`

	// Connection is a SQLite file path or a PostgreSQL connection string.
	Connection string `mapstructure:"connection" validate:"required"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// LogFile optionally mirrors logs to a rotating JSON file.
	LogFile string `mapstructure:"log_file"`

	// Seed drives every random draw; equal seeds give identical datasets.
	Seed uint64 `mapstructure:"seed"`

	// Catalog holds configuration for product and variant generation.
	Catalog CatalogConfig `mapstructure:"catalog"`

	// Sales holds configuration for the transaction simulation.
	Sales SalesConfig `mapstructure:"sales"`

	// Holidays holds configuration for the holiday calendar.
	Holidays HolidaysConfig `mapstructure:"holidays"`

	// Init holds configuration for the init subcommand.
	Init InitConfig `mapstructure:"init"`
}

// CatalogConfig holds configuration for catalog generation.
type CatalogConfig struct {
	// NumProducts is the number of products to generate.
	NumProducts int `mapstructure:"num_products" validate:"gt=0"`
}

// SalesConfig holds configuration for the sales simulation.
type SalesConfig struct {
	// StartDate is the first simulated day (YYYY-MM-DD).
	StartDate string `mapstructure:"start_date" validate:"required"`

	// EndDate is the last simulated day, inclusive (YYYY-MM-DD).
	EndDate string `mapstructure:"end_date" validate:"required"`

	// AvgTransactionsPerDay is the baseline daily transaction count.
	AvgTransactionsPerDay float64 `mapstructure:"avg_transactions_per_day" validate:"gt=0"`

	// WeekendMultiplier applies on Saturdays and Sundays.
	WeekendMultiplier float64 `mapstructure:"weekend_multiplier" validate:"gt=0"`

	// FestivalMultiplier applies on holidays.
	FestivalMultiplier float64 `mapstructure:"festival_multiplier" validate:"gt=0"`

	// SeasonalMultiplier applies during SeasonalMonths.
	SeasonalMultiplier float64 `mapstructure:"seasonal_multiplier" validate:"gt=0"`

	// SeasonalMonths lists the months (1-12) of the year-end spike.
	SeasonalMonths []int `mapstructure:"seasonal_months" validate:"dive,min=1,max=12"`

	// NoiseFraction is the daily standard deviation as a fraction of the
	// expected count.
	NoiseFraction float64 `mapstructure:"noise_fraction" validate:"gte=0"`

	// PopularityExponent shapes the rank-based product popularity.
	PopularityExponent float64 `mapstructure:"popularity_exponent" validate:"gte=0"`

	// BatchSize is the number of sales rows per commit.
	BatchSize int `mapstructure:"batch_size" validate:"gt=0"`
}

// HolidaysConfig holds configuration for the holiday calendar.
type HolidaysConfig struct {
	// Provider is the holiday source: calendarific, file or none.
	Provider string `mapstructure:"provider" validate:"oneof=calendarific file none"`

	// APIKey is the Calendarific API key.
	APIKey string `mapstructure:"api_key"`

	// Country is the ISO country code passed to Calendarific.
	Country string `mapstructure:"country" validate:"required_if=Provider calendarific"`

	// File is a YAML or JSON file with a "holidays" date->name map.
	File string `mapstructure:"file" validate:"required_if=Provider file"`

	// Timeout is the per-request HTTP timeout in seconds.
	Timeout int `mapstructure:"timeout" validate:"gte=0"`
}

// InitConfig holds configuration for database initialization.
type InitConfig struct {
	// DropExisting drops existing schema before initialization.
	DropExisting bool `mapstructure:"drop_existing"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Driver:     "sqlite",
		Connection: "textiles.db",
		LogLevel:   "info",
		Seed:       42,
		Catalog: CatalogConfig{
			NumProducts: 250,
		},
		Sales: SalesConfig{
			StartDate:             "2023-01-01",
			EndDate:               "2024-12-31",
			AvgTransactionsPerDay: 120,
			WeekendMultiplier:     1.6,
			FestivalMultiplier:    2.2,
			SeasonalMultiplier:    1.2,
			SeasonalMonths:        []int{10, 11, 12},
			NoiseFraction:         0.16,
			PopularityExponent:    0.9,
			BatchSize:             datagen.DefaultBatchConfig().BatchSize,
		},
		Holidays: HolidaysConfig{
			Provider: "calendarific",
			Country:  "IN",
			Timeout:  12,
		},
		Init: InitConfig{
			DropExisting: false,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./pgedge-textilegen.yaml
// 3. ~/.config/pgedge-textilegen/config.yaml
//
// A .env file in the working directory, if present, is loaded first so that
// PGEDGE_TEXTILEGEN_CONNECTION and PGEDGE_TEXTILEGEN_HOLIDAYS_API_KEY can be
// kept out of the config file.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and type
	v.SetConfigName("pgedge-textilegen")
	v.SetConfigType("yaml")

	// Add config paths
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pgedge-textilegen"))
	}

	// Use specific config file if provided
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range []string{"connection", "holidays.api_key"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", key, err)
		}
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Unmarshal config file values
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that the storage configuration is present.
func (c *Config) Validate() error {
	if err := validate.Var(c.Driver, "required"); err != nil {
		return fmt.Errorf("driver is required")
	}
	if err := validate.Var(c.Driver, "oneof=sqlite postgres"); err != nil {
		return fmt.Errorf("driver must be 'sqlite' or 'postgres', got '%s'", c.Driver)
	}
	if err := validate.Var(c.Connection, "required"); err != nil {
		return fmt.Errorf("connection is required")
	}
	return nil
}

// ValidateSales checks configuration required to generate sales.
func (c *Config) ValidateSales() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := validate.Struct(c.Sales); err != nil {
		return fmt.Errorf("invalid sales configuration: %w", err)
	}
	if _, _, err := c.Sales.DateRange(); err != nil {
		return err
	}
	return c.ValidateHolidays()
}

// ValidateHolidays checks the holiday provider configuration.
func (c *Config) ValidateHolidays() error {
	if err := validate.Struct(c.Holidays); err != nil {
		return fmt.Errorf("invalid holidays configuration: %w", err)
	}
	return nil
}

// ValidateInit checks configuration required for the init command.
func (c *Config) ValidateInit() error {
	if err := c.ValidateSales(); err != nil {
		return err
	}
	if err := validate.Struct(c.Catalog); err != nil {
		return fmt.Errorf("invalid catalog configuration: %w", err)
	}
	return nil
}

// DateRange parses the configured start and end dates.
func (s SalesConfig) DateRange() (time.Time, time.Time, error) {
	start, err := time.Parse(DateLayout, s.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date %q: %w", s.StartDate, err)
	}
	end, err := time.Parse(DateLayout, s.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date %q: %w", s.EndDate, err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date %s is before start_date %s", s.EndDate, s.StartDate)
	}
	return start, end, nil
}

// Years returns every calendar year touched by the sales date range.
func (s SalesConfig) Years() ([]int, error) {
	start, end, err := s.DateRange()
	if err != nil {
		return nil, err
	}
	years := make([]int, 0, end.Year()-start.Year()+1)
	for y := start.Year(); y <= end.Year(); y++ {
		years = append(years, y)
	}
	return years, nil
}

// Months converts SeasonalMonths to time.Month values.
func (s SalesConfig) Months() []time.Month {
	months := make([]time.Month, 0, len(s.SeasonalMonths))
	for _, m := range s.SeasonalMonths {
		months = append(months, time.Month(m))
	}
	return months
}
