//-------------------------------------------------------------------------
//
// pgEdge Textile Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-textilegen/internal/sales"
	"github.com/pgEdge/pgedge-textilegen/internal/store"
	"github.com/pgEdge/pgedge-textilegen/internal/store/storetest"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "textiles.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore(t *testing.T) {
	storetest.Run(t, openTemp(t))
}

func TestSQLiteRegistered(t *testing.T) {
	s, err := store.Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "reg.db"))
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	defer s.Close()

	if s.Name() != "sqlite" {
		t.Errorf("Expected backend sqlite, got %s", s.Name())
	}
}

func TestSQLiteSalesColumns(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	if err := s.CreateSchema(ctx); err != nil {
		t.Fatalf("CreateSchema() error = %v", err)
	}

	records := []sales.Record{
		{
			TransactionID: "TX20240126-1",
			SaleDate:      time.Date(2024, 1, 26, 0, 0, 0, 0, time.UTC),
			ProductID:     1,
			VariantID:     2,
			Quantity:      3,
			UnitPrice:     199.99,
			TotalPrice:    599.97,
			IsHoliday:     true,
			HolidayName:   "Republic Day",
		},
		{
			TransactionID: "TX20240127-2",
			SaleDate:      time.Date(2024, 1, 27, 0, 0, 0, 0, time.UTC),
			ProductID:     1,
			VariantID:     2,
			Quantity:      1,
			UnitPrice:     199.99,
			TotalPrice:    199.99,
			IsWeekend:     true,
		},
	}
	if err := s.WriteSales(ctx, records); err != nil {
		t.Fatalf("WriteSales() error = %v", err)
	}

	var rows []Sale
	if err := s.db.Order("sale_id").Find(&rows).Error; err != nil {
		t.Fatalf("Failed to read sales: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 sales, got %d", len(rows))
	}

	first := rows[0]
	if first.SaleDate != "2024-01-26" {
		t.Errorf("Expected ISO sale date, got %q", first.SaleDate)
	}
	if first.HolidayName == nil || *first.HolidayName != "Republic Day" {
		t.Errorf("Expected holiday name Republic Day, got %v", first.HolidayName)
	}
	if first.TotalPrice != 599.97 || first.Quantity != 3 {
		t.Errorf("Unexpected pricing: %+v", first)
	}
	if rows[1].HolidayName != nil {
		t.Errorf("Expected NULL holiday name, got %q", *rows[1].HolidayName)
	}
	if !rows[1].IsWeekend || rows[1].IsHoliday {
		t.Errorf("Unexpected flags: %+v", rows[1])
	}
	if rows[0].SaleID >= rows[1].SaleID {
		t.Errorf("Expected increasing sale ids, got %d and %d", rows[0].SaleID, rows[1].SaleID)
	}
}

func TestSQLiteEmptyWrites(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	if err := s.CreateSchema(ctx); err != nil {
		t.Fatalf("CreateSchema() error = %v", err)
	}
	if err := s.WriteSales(ctx, nil); err != nil {
		t.Errorf("WriteSales(nil) error = %v", err)
	}
	if err := s.SaveHolidays(ctx, nil); err != nil {
		t.Errorf("SaveHolidays(nil) error = %v", err)
	}

	products, variants, err := s.LoadCatalog(ctx)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if len(products) != 0 || len(variants) != 0 {
		t.Errorf("Expected empty catalog, got %d products", len(products))
	}
}
