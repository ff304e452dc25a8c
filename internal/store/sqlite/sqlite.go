//-------------------------------------------------------------------------
//
// pgEdge Textile Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package sqlite implements the SQLite file store backend on top of GORM.
package sqlite

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/pgEdge/pgedge-textilegen/internal/catalog"
	"github.com/pgEdge/pgedge-textilegen/internal/holidays"
	"github.com/pgEdge/pgedge-textilegen/internal/logging"
	"github.com/pgEdge/pgedge-textilegen/internal/sales"
	"github.com/pgEdge/pgedge-textilegen/internal/store"
)

// insertBatchSize keeps multi-row inserts under SQLite's bound parameter
// limit.
const insertBatchSize = 500

func init() {
	store.Register("sqlite", func(ctx context.Context, connection string) (store.Store, error) {
		return Open(connection)
	})
}

var _ store.Store = (*Store)(nil)

// Store is a SQLite-backed store.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the SQLite database file at path.
func Open(path string) (*Store, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(path), config)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	logging.Info().
		Str("path", path).
		Msg("Opened SQLite database")

	return &Store{db: db}, nil
}

// Name returns the backend name.
func (s *Store) Name() string {
	return "sqlite"
}

// CreateSchema creates all dataset tables.
func (s *Store) CreateSchema(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(models()...); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	logging.Info().Msg("Schema created")
	return nil
}

// DropSchema drops all dataset tables and the metadata table.
func (s *Store) DropSchema(ctx context.Context) error {
	m := models()
	tables := make([]any, 0, len(m)+1)
	for i := len(m) - 1; i >= 0; i-- {
		tables = append(tables, m[i])
	}
	tables = append(tables, &Metadata{})

	if err := s.db.WithContext(ctx).Migrator().DropTable(tables...); err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	return nil
}

// IsInitialized reports whether the metadata table exists.
func (s *Store) IsInitialized(ctx context.Context) (bool, error) {
	return s.db.WithContext(ctx).Migrator().HasTable(&Metadata{}), nil
}

// HasSchema reports whether any dataset table exists.
func (s *Store) HasSchema(ctx context.Context) (bool, error) {
	migrator := s.db.WithContext(ctx).Migrator()
	for _, m := range models() {
		if migrator.HasTable(m) {
			return true, nil
		}
	}
	return false, nil
}

// SaveMasterData inserts the reference lists.
func (s *Store) SaveMasterData(ctx context.Context, m catalog.MasterData) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := make([]Category, len(m.Categories))
		for i, c := range m.Categories {
			categories[i] = Category{CategoryID: int64(i + 1), CategoryName: c.Category}
		}
		brands := make([]Brand, len(m.Brands))
		for i, b := range m.Brands {
			brands[i] = Brand{BrandID: int64(i + 1), BrandName: b}
		}
		materials := make([]Material, len(m.Materials))
		for i, v := range m.Materials {
			materials[i] = Material{MaterialID: int64(i + 1), MaterialName: v}
		}
		suppliers := make([]Supplier, len(m.Suppliers))
		for i, v := range m.Suppliers {
			suppliers[i] = Supplier{
				SupplierID:   int64(i + 1),
				SupplierName: v.Name,
				BrandName:    v.BrandName,
				ContactInfo:  v.ContactInfo,
			}
		}
		collections := make([]Collection, len(m.Collections))
		for i, v := range m.Collections {
			collections[i] = Collection{CollectionID: int64(i + 1), CollectionName: v}
		}
		styles := make([]Style, len(m.Styles))
		for i, v := range m.Styles {
			styles[i] = Style{StyleID: int64(i + 1), StyleName: v}
		}
		colors := make([]Color, len(m.Colors))
		for i, v := range m.Colors {
			colors[i] = Color{ColorID: int64(i + 1), ColorName: v}
		}
		sizes := make([]Size, len(m.Sizes))
		for i, v := range m.Sizes {
			sizes[i] = Size{SizeID: int64(i + 1), SizeName: v}
		}

		for _, rows := range []any{
			&categories, &brands, &materials, &suppliers,
			&collections, &styles, &colors, &sizes,
		} {
			if err := tx.CreateInBatches(rows, insertBatchSize).Error; err != nil {
				return fmt.Errorf("failed to insert master data: %w", err)
			}
		}
		return nil
	})
}

// SaveCatalog inserts products, variants and product styles.
func (s *Store) SaveCatalog(ctx context.Context, c *catalog.Catalog) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := make([]Product, len(c.Products))
		for i, p := range c.Products {
			products[i] = Product{
				ProductID:        p.ID,
				ProductName:      p.Name,
				CategoryID:       &p.CategoryID,
				BrandID:          &p.BrandID,
				MaterialID:       &p.MaterialID,
				SupplierID:       &p.SupplierID,
				CollectionID:     &p.CollectionID,
				BroughtUnitPrice: &p.BroughtUnitPrice,
				CurrentPrice:     &p.CurrentPrice,
				Offer:            &p.Offer,
				PriceAfterOffer:  &p.PriceAfterOffer,
			}
		}
		if err := tx.CreateInBatches(&products, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert products: %w", err)
		}

		variants := make([]ProductVariant, len(c.Variants))
		for i, v := range c.Variants {
			variants[i] = ProductVariant{
				VariantID:     v.ID,
				ProductID:     v.ProductID,
				ColorID:       v.ColorID,
				SizeID:        v.SizeID,
				StockQuantity: v.StockQuantity,
			}
		}
		if err := tx.CreateInBatches(&variants, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert variants: %w", err)
		}

		styles := make([]ProductStyle, len(c.ProductStyles))
		for i, ps := range c.ProductStyles {
			styles[i] = ProductStyle{ProductID: ps.ProductID, StyleID: ps.StyleID}
		}
		if err := tx.CreateInBatches(&styles, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert product styles: %w", err)
		}
		return nil
	})
}

// SaveHolidays upserts the holiday calendar.
func (s *Store) SaveHolidays(ctx context.Context, cal holidays.Calendar) error {
	if len(cal) == 0 {
		return nil
	}
	rows := make([]Holiday, 0, len(cal))
	for _, date := range cal.Dates() {
		rows = append(rows, Holiday{HolidayDate: date, HolidayName: cal[date]})
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		CreateInBatches(&rows, insertBatchSize).Error
	if err != nil {
		return fmt.Errorf("failed to save holidays: %w", err)
	}
	return nil
}

// LoadHolidays returns the persisted holiday calendar.
func (s *Store) LoadHolidays(ctx context.Context) (holidays.Calendar, error) {
	var rows []Holiday
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load holidays: %w", err)
	}
	cal := make(holidays.Calendar, len(rows))
	for _, h := range rows {
		cal[h.HolidayDate] = h.HolidayName
	}
	return cal, nil
}

// LoadCatalog returns products and their variant ids.
func (s *Store) LoadCatalog(ctx context.Context) ([]sales.Product, map[int64][]int64, error) {
	db := s.db.WithContext(ctx)

	var rows []Product
	if err := db.Order("product_id").Find(&rows).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load products: %w", err)
	}
	products := make([]sales.Product, len(rows))
	for i, p := range rows {
		products[i] = sales.Product{
			ID:    p.ProductID,
			Price: sales.ResolvePrice(p.PriceAfterOffer, p.CurrentPrice),
		}
		if p.CategoryID != nil {
			products[i].CategoryID = *p.CategoryID
		}
	}

	var vrows []ProductVariant
	if err := db.Select("variant_id", "product_id").Order("variant_id").Find(&vrows).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load variants: %w", err)
	}
	variants := make(map[int64][]int64)
	for _, v := range vrows {
		variants[v.ProductID] = append(variants[v.ProductID], v.VariantID)
	}
	return products, variants, nil
}

// ClearSales deletes all sales rows.
func (s *Store) ClearSales(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Exec("DELETE FROM sales").Error; err != nil {
		return fmt.Errorf("failed to clear sales: %w", err)
	}
	return nil
}

// WriteSales inserts a batch of sales in one transaction.
func (s *Store) WriteSales(ctx context.Context, records []sales.Record) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]Sale, len(records))
	for i, r := range records {
		rows[i] = Sale{
			TransactionID: r.TransactionID,
			SaleDate:      r.SaleDate.Format(holidays.DateLayout),
			ProductID:     r.ProductID,
			VariantID:     r.VariantID,
			Quantity:      r.Quantity,
			UnitPrice:     r.UnitPrice,
			TotalPrice:    r.TotalPrice,
			IsWeekend:     r.IsWeekend,
			IsHoliday:     r.IsHoliday,
		}
		if r.HolidayName != "" {
			name := r.HolidayName
			rows[i].HolidayName = &name
		}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&rows, insertBatchSize).Error
	})
}

// SaveMetadata upserts metadata entries, creating the table if needed.
func (s *Store) SaveMetadata(ctx context.Context, values map[string]string) error {
	db := s.db.WithContext(ctx)
	if err := db.AutoMigrate(&Metadata{}); err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}
	if len(values) == 0 {
		return nil
	}

	rows := make([]Metadata, 0, len(values))
	for k, v := range values {
		rows = append(rows, Metadata{Key: k, Value: v})
	}
	err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}
	return nil
}

// GetMetadata returns all metadata entries.
func (s *Store) GetMetadata(ctx context.Context) (map[string]string, error) {
	var rows []Metadata
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load metadata: %w", err)
	}
	meta := make(map[string]string, len(rows))
	for _, m := range rows {
		meta[m.Key] = m.Value
	}
	return meta, nil
}

// TableCounts returns the row count of each dataset table.
func (s *Store) TableCounts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(store.Tables))
	for _, table := range store.Tables {
		var n int64
		if err := s.db.WithContext(ctx).Table(table).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
