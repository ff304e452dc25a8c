//-------------------------------------------------------------------------
//
// pgEdge Textile Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package storetest holds a behavioural test suite shared by all store
// backends.
package storetest

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-textilegen/internal/catalog"
	"github.com/pgEdge/pgedge-textilegen/internal/datagen"
	"github.com/pgEdge/pgedge-textilegen/internal/holidays"
	"github.com/pgEdge/pgedge-textilegen/internal/sales"
	"github.com/pgEdge/pgedge-textilegen/internal/store"
)

// Run exercises a freshly opened, empty store end to end.
func Run(t *testing.T, s store.Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	initialized, err := s.IsInitialized(ctx)
	if err != nil {
		t.Fatalf("IsInitialized() error = %v", err)
	}
	if initialized {
		t.Fatal("Expected a fresh store to be uninitialized")
	}

	expectSchema(t, ctx, s, false)
	if err := s.CreateSchema(ctx); err != nil {
		t.Fatalf("CreateSchema() error = %v", err)
	}
	expectSchema(t, ctx, s, true)

	master := catalog.DefaultMasterData()
	if err := s.SaveMasterData(ctx, master); err != nil {
		t.Fatalf("SaveMasterData() error = %v", err)
	}

	cat, err := catalog.Generate(datagen.NewFakerWithSeed(42), master, 20)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if err := s.SaveCatalog(ctx, cat); err != nil {
		t.Fatalf("SaveCatalog() error = %v", err)
	}

	testCatalogRoundTrip(t, ctx, s, cat)
	testHolidays(t, ctx, s)
	testSales(t, ctx, s, cat)

	if err := s.SaveMetadata(ctx, map[string]string{"app": "textiles", "seed": "42"}); err != nil {
		t.Fatalf("SaveMetadata() error = %v", err)
	}
	if err := s.SaveMetadata(ctx, map[string]string{"seed": "7"}); err != nil {
		t.Fatalf("SaveMetadata() update error = %v", err)
	}
	meta, err := s.GetMetadata(ctx)
	if err != nil {
		t.Fatalf("GetMetadata() error = %v", err)
	}
	if meta["app"] != "textiles" || meta["seed"] != "7" {
		t.Errorf("Unexpected metadata: %v", meta)
	}

	initialized, err = s.IsInitialized(ctx)
	if err != nil || !initialized {
		t.Errorf("Expected store to be initialized after saving metadata (err=%v)", err)
	}

	counts, err := s.TableCounts(ctx)
	if err != nil {
		t.Fatalf("TableCounts() error = %v", err)
	}
	want := map[string]int64{
		"categories":       int64(len(master.Categories)),
		"brands":           int64(len(master.Brands)),
		"suppliers":        int64(len(master.Suppliers)),
		"sizes":            int64(len(master.Sizes)),
		"products":         int64(len(cat.Products)),
		"product_variants": int64(len(cat.Variants)),
		"product_styles":   int64(len(cat.ProductStyles)),
	}
	for table, n := range want {
		if counts[table] != n {
			t.Errorf("Expected %d rows in %s, got %d", n, table, counts[table])
		}
	}

	if err := s.DropSchema(ctx); err != nil {
		t.Fatalf("DropSchema() error = %v", err)
	}
	initialized, err = s.IsInitialized(ctx)
	if err != nil {
		t.Fatalf("IsInitialized() after drop error = %v", err)
	}
	if initialized {
		t.Error("Expected store to be uninitialized after DropSchema")
	}
	expectSchema(t, ctx, s, false)
}

func expectSchema(t *testing.T, ctx context.Context, s store.Store, want bool) {
	t.Helper()
	got, err := s.HasSchema(ctx)
	if err != nil {
		t.Fatalf("HasSchema() error = %v", err)
	}
	if got != want {
		t.Errorf("Expected HasSchema() = %v, got %v", want, got)
	}
}

func testCatalogRoundTrip(t *testing.T, ctx context.Context, s store.Store, cat *catalog.Catalog) {
	t.Helper()

	products, variants, err := s.LoadCatalog(ctx)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	wantProducts, wantVariants := cat.SalesInputs()

	if len(products) != len(wantProducts) {
		t.Fatalf("Expected %d products, got %d", len(wantProducts), len(products))
	}
	for i, p := range products {
		w := wantProducts[i]
		if p.ID != w.ID || p.CategoryID != w.CategoryID {
			t.Errorf("Product %d mismatch: got %+v, want %+v", i, p, w)
		}
		if diff := p.Price - w.Price; diff > 0.001 || diff < -0.001 {
			t.Errorf("Product %d price mismatch: got %v, want %v", p.ID, p.Price, w.Price)
		}
	}
	for pid, vids := range wantVariants {
		if len(variants[pid]) != len(vids) {
			t.Errorf("Expected %d variants for product %d, got %d", len(vids), pid, len(variants[pid]))
		}
	}
}

func testHolidays(t *testing.T, ctx context.Context, s store.Store) {
	t.Helper()

	if err := s.SaveHolidays(ctx, holidays.Calendar{"2024-01-26": "Republic Day", "2024-03-25": "Holi"}); err != nil {
		t.Fatalf("SaveHolidays() error = %v", err)
	}
	// Saving again overwrites names.
	if err := s.SaveHolidays(ctx, holidays.Calendar{"2024-03-25": "Holika"}); err != nil {
		t.Fatalf("SaveHolidays() upsert error = %v", err)
	}

	cal, err := s.LoadHolidays(ctx)
	if err != nil {
		t.Fatalf("LoadHolidays() error = %v", err)
	}
	if len(cal) != 2 || cal["2024-01-26"] != "Republic Day" || cal["2024-03-25"] != "Holika" {
		t.Errorf("Unexpected holidays: %v", cal)
	}
}

func testSales(t *testing.T, ctx context.Context, s store.Store, cat *catalog.Catalog) {
	t.Helper()

	products, variants := cat.SalesInputs()
	cfg := sales.Config{
		Start:              time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC),
		End:                time.Date(2024, 1, 27, 0, 0, 0, 0, time.UTC),
		Demand:             sales.DefaultDemandModel(),
		PopularityExponent: sales.DefaultPopularityExponent,
	}
	cfg.Demand.Average = 20

	sim, err := sales.New(cfg, products, variants, holidays.Calendar{"2024-01-26": "Republic Day"},
		rand.New(rand.NewPCG(1, 1)))
	if err != nil {
		t.Fatalf("sales.New() error = %v", err)
	}
	w, err := sales.NewBatchWriter(s, 25)
	if err != nil {
		t.Fatalf("NewBatchWriter() error = %v", err)
	}
	stats, err := sim.Run(ctx, func(r sales.Record) error { return w.Add(ctx, r) })
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if err := w.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	counts, err := s.TableCounts(ctx)
	if err != nil {
		t.Fatalf("TableCounts() error = %v", err)
	}
	if counts["sales"] != stats.Emitted {
		t.Errorf("Expected %d sales rows, got %d", stats.Emitted, counts["sales"])
	}

	if err := s.ClearSales(ctx); err != nil {
		t.Fatalf("ClearSales() error = %v", err)
	}
	counts, _ = s.TableCounts(ctx)
	if counts["sales"] != 0 {
		t.Errorf("Expected no sales after ClearSales, got %d", counts["sales"])
	}
}
