//-------------------------------------------------------------------------
//
// pgEdge Textile Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package store defines the persistence interface for the textile dataset
// and a registry of database backends.
package store

import (
	"context"

	"github.com/pgEdge/pgedge-textilegen/internal/catalog"
	"github.com/pgEdge/pgedge-textilegen/internal/holidays"
	"github.com/pgEdge/pgedge-textilegen/internal/sales"
)

// MetadataTable holds key/value information about the last run.
const MetadataTable = "textilegen_metadata"

// Tables lists the dataset tables in dependency order.
var Tables = []string{
	"categories",
	"brands",
	"materials",
	"suppliers",
	"collections",
	"styles",
	"colors",
	"sizes",
	"products",
	"product_variants",
	"product_styles",
	"holidays",
	"sales",
}

// Store persists the textile dataset.
type Store interface {
	// Name returns the backend name.
	Name() string

	// CreateSchema creates all dataset tables.
	CreateSchema(ctx context.Context) error

	// DropSchema drops all dataset tables, including metadata.
	DropSchema(ctx context.Context) error

	// IsInitialized reports whether a previous run left metadata behind.
	IsInitialized(ctx context.Context) (bool, error)

	// HasSchema reports whether any dataset table exists. It is true for
	// a run that was interrupted before metadata was written.
	HasSchema(ctx context.Context) (bool, error)

	// SaveMasterData inserts the reference lists with 1-based ids.
	SaveMasterData(ctx context.Context, m catalog.MasterData) error

	// SaveCatalog inserts products, variants and product styles.
	SaveCatalog(ctx context.Context, c *catalog.Catalog) error

	// SaveHolidays upserts the holiday calendar.
	SaveHolidays(ctx context.Context, cal holidays.Calendar) error

	// LoadHolidays returns the persisted holiday calendar.
	LoadHolidays(ctx context.Context) (holidays.Calendar, error)

	// LoadCatalog returns products with their resolved unit price and the
	// variant ids of each product.
	LoadCatalog(ctx context.Context) ([]sales.Product, map[int64][]int64, error)

	// ClearSales deletes all sales rows.
	ClearSales(ctx context.Context) error

	// WriteSales inserts a batch of sales in a single transaction.
	WriteSales(ctx context.Context, records []sales.Record) error

	// SaveMetadata upserts metadata entries.
	SaveMetadata(ctx context.Context, values map[string]string) error

	// GetMetadata returns all metadata entries.
	GetMetadata(ctx context.Context) (map[string]string, error)

	// TableCounts returns the row count of each dataset table.
	TableCounts(ctx context.Context) (map[string]int64, error)

	// Close releases the database connection.
	Close() error
}
