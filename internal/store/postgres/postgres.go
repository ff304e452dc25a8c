//-------------------------------------------------------------------------
//
// pgEdge Textile Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package postgres implements the PostgreSQL store backend.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-textilegen/internal/catalog"
	"github.com/pgEdge/pgedge-textilegen/internal/db"
	"github.com/pgEdge/pgedge-textilegen/internal/holidays"
	"github.com/pgEdge/pgedge-textilegen/internal/logging"
	"github.com/pgEdge/pgedge-textilegen/internal/sales"
	"github.com/pgEdge/pgedge-textilegen/internal/store"
)

func init() {
	store.Register("postgres", func(ctx context.Context, connection string) (store.Store, error) {
		return Open(ctx, connection)
	})
}

var _ store.Store = (*Store)(nil)

// Store is a PostgreSQL-backed store.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to PostgreSQL.
func Open(ctx context.Context, connection string) (*Store, error) {
	pool, err := db.Connect(ctx, connection)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// New wraps an existing pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Name returns the backend name.
func (s *Store) Name() string {
	return "postgres"
}

// CreateSchema creates all dataset tables.
func (s *Store) CreateSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createSchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	logging.Info().Msg("Schema created")
	return nil
}

// DropSchema drops all dataset tables and the metadata table.
func (s *Store) DropSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, dropSchemaSQL); err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	if err := db.DropMetadata(ctx, s.pool); err != nil {
		return fmt.Errorf("failed to drop metadata: %w", err)
	}
	return nil
}

// IsInitialized reports whether the metadata table exists.
func (s *Store) IsInitialized(ctx context.Context) (bool, error) {
	return db.MetadataExists(ctx, s.pool)
}

// HasSchema reports whether any dataset table exists in the current schema.
func (s *Store) HasSchema(ctx context.Context) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM information_schema.tables
            WHERE table_schema = current_schema() AND table_name = ANY($1)
        )
    `, store.Tables).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check for existing tables: %w", err)
	}
	return exists, nil
}

// SaveMasterData inserts the reference lists.
func (s *Store) SaveMasterData(ctx context.Context, m catalog.MasterData) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		named := []struct {
			table  string
			column string
			names  []string
		}{
			{"categories", "category", m.CategoryNames()},
			{"brands", "brand", m.Brands},
			{"materials", "material", m.Materials},
			{"collections", "collection", m.Collections},
			{"styles", "style", m.Styles},
			{"colors", "color", m.Colors},
			{"sizes", "size", m.Sizes},
		}
		for _, n := range named {
			rows := make([][]any, len(n.names))
			for i, name := range n.names {
				rows[i] = []any{int64(i + 1), name}
			}
			if err := copyRows(ctx, tx, n.table, []string{n.column + "_id", n.column + "_name"}, rows); err != nil {
				return err
			}
		}

		rows := make([][]any, len(m.Suppliers))
		for i, sup := range m.Suppliers {
			rows[i] = []any{int64(i + 1), sup.Name, sup.BrandName, sup.ContactInfo}
		}
		return copyRows(ctx, tx, "suppliers",
			[]string{"supplier_id", "supplier_name", "brand_name", "contact_info"}, rows)
	})
}

// SaveCatalog inserts products, variants and product styles.
func (s *Store) SaveCatalog(ctx context.Context, c *catalog.Catalog) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		products := make([][]any, len(c.Products))
		for i, p := range c.Products {
			products[i] = []any{
				p.ID, p.Name, p.CategoryID, p.BrandID, p.MaterialID, p.SupplierID,
				p.CollectionID, p.BroughtUnitPrice, p.CurrentPrice, p.Offer, p.PriceAfterOffer,
			}
		}
		if err := copyRows(ctx, tx, "products", []string{
			"product_id", "product_name", "category_id", "brand_id", "material_id",
			"supplier_id", "collection_id", "brought_unit_price", "current_price",
			"offer", "price_after_offer",
		}, products); err != nil {
			return err
		}

		variants := make([][]any, len(c.Variants))
		for i, v := range c.Variants {
			variants[i] = []any{v.ID, v.ProductID, v.ColorID, v.SizeID, v.StockQuantity}
		}
		if err := copyRows(ctx, tx, "product_variants",
			[]string{"variant_id", "product_id", "color_id", "size_id", "stock_quantity"},
			variants); err != nil {
			return err
		}

		styles := make([][]any, len(c.ProductStyles))
		for i, ps := range c.ProductStyles {
			styles[i] = []any{ps.ProductID, ps.StyleID}
		}
		return copyRows(ctx, tx, "product_styles", []string{"product_id", "style_id"}, styles)
	})
}

// SaveHolidays upserts the holiday calendar.
func (s *Store) SaveHolidays(ctx context.Context, cal holidays.Calendar) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		for _, date := range cal.Dates() {
			d, err := time.Parse(holidays.DateLayout, date)
			if err != nil {
				return fmt.Errorf("invalid holiday date %q: %w", date, err)
			}
			_, err = tx.Exec(ctx, `
                INSERT INTO holidays (holiday_date, holiday_name) VALUES ($1, $2)
                ON CONFLICT (holiday_date) DO UPDATE SET holiday_name = EXCLUDED.holiday_name
            `, d, cal[date])
			if err != nil {
				return fmt.Errorf("failed to save holiday %s: %w", date, err)
			}
		}
		return nil
	})
}

// LoadHolidays returns the persisted holiday calendar.
func (s *Store) LoadHolidays(ctx context.Context) (holidays.Calendar, error) {
	rows, err := s.pool.Query(ctx, `SELECT holiday_date, holiday_name FROM holidays`)
	if err != nil {
		return nil, fmt.Errorf("failed to load holidays: %w", err)
	}
	defer rows.Close()

	cal := holidays.Calendar{}
	for rows.Next() {
		var d time.Time
		var name *string
		if err := rows.Scan(&d, &name); err != nil {
			return nil, err
		}
		if name != nil {
			cal[d.Format(holidays.DateLayout)] = *name
		} else {
			cal[d.Format(holidays.DateLayout)] = ""
		}
	}
	return cal, rows.Err()
}

// LoadCatalog returns products and their variant ids.
func (s *Store) LoadCatalog(ctx context.Context) ([]sales.Product, map[int64][]int64, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT product_id, category_id, price_after_offer, current_price
        FROM products
        ORDER BY product_id
    `)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load products: %w", err)
	}

	var products []sales.Product
	for rows.Next() {
		var p sales.Product
		var categoryID *int64
		var afterOffer, current *float64
		if err := rows.Scan(&p.ID, &categoryID, &afterOffer, &current); err != nil {
			rows.Close()
			return nil, nil, err
		}
		if categoryID != nil {
			p.CategoryID = *categoryID
		}
		p.Price = sales.ResolvePrice(afterOffer, current)
		products = append(products, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	rows, err = s.pool.Query(ctx, `
        SELECT variant_id, product_id FROM product_variants ORDER BY variant_id
    `)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load variants: %w", err)
	}
	defer rows.Close()

	variants := make(map[int64][]int64)
	for rows.Next() {
		var vid, pid int64
		if err := rows.Scan(&vid, &pid); err != nil {
			return nil, nil, err
		}
		variants[pid] = append(variants[pid], vid)
	}
	return products, variants, rows.Err()
}

// ClearSales deletes all sales rows.
func (s *Store) ClearSales(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `TRUNCATE sales RESTART IDENTITY`); err != nil {
		return fmt.Errorf("failed to clear sales: %w", err)
	}
	return nil
}

// WriteSales copies a batch of sales in one transaction.
func (s *Store) WriteSales(ctx context.Context, records []sales.Record) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		_, err := tx.CopyFrom(ctx, pgx.Identifier{"sales"}, sales.Columns,
			pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
				return records[i].Values(), nil
			}))
		if err != nil {
			return fmt.Errorf("failed to copy sales: %w", err)
		}
		return nil
	})
}

// SaveMetadata upserts metadata entries.
func (s *Store) SaveMetadata(ctx context.Context, values map[string]string) error {
	return db.SaveMetadata(ctx, s.pool, values)
}

// GetMetadata returns all metadata entries.
func (s *Store) GetMetadata(ctx context.Context) (map[string]string, error) {
	return db.GetAllMetadata(ctx, s.pool)
}

// TableCounts returns the row count of each dataset table.
func (s *Store) TableCounts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(store.Tables))
	for _, table := range store.Tables {
		var n int64
		err := s.pool.QueryRow(ctx, fmt.Sprintf("SELECT count(*) FROM %s", table)).Scan(&n)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func copyRows(ctx context.Context, tx pgx.Tx, table string, columns []string, rows [][]any) error {
	n, err := tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to copy into %s: %w", table, err)
	}
	logging.Debug().
		Str("table", table).
		Int64("rows", n).
		Msg("Copied rows")
	return nil
}
