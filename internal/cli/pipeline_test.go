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
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"
	"time"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pgEdge/pgedge-textilegen/internal/catalog"
	"github.com/pgEdge/pgedge-textilegen/internal/config"
	"github.com/pgEdge/pgedge-textilegen/internal/sales"
	"github.com/pgEdge/pgedge-textilegen/internal/store"
	"github.com/pgEdge/pgedge-textilegen/internal/store/sqlite"
)

// saleRow is a persisted sales row as read back from the SQLite file.
type saleRow struct {
	TransactionID string
	SaleDate      string
	ProductID     int64
	VariantID     int64
	Quantity      int
	UnitPrice     float64
	TotalPrice    float64
	IsWeekend     bool
	IsHoliday     bool
	HolidayName   *string
}

func readSales(t *testing.T, path string) []saleRow {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	var rows []saleRow
	if err := db.Table("sales").Order("sale_id").Find(&rows).Error; err != nil {
		t.Fatalf("Failed to read sales: %v", err)
	}
	return rows
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := config.DefaultConfig()
	c.Driver = "sqlite"
	c.Connection = filepath.Join(t.TempDir(), "textiles.db")
	c.Catalog.NumProducts = 15
	c.Sales.StartDate = "2024-01-01"
	c.Sales.EndDate = "2024-01-31"
	c.Sales.AvgTransactionsPerDay = 10
	c.Sales.BatchSize = 40
	c.Holidays.Provider = "none"
	return c
}

func openStore(t *testing.T, c *config.Config) store.Store {
	t.Helper()
	st, err := sqlite.Open(c.Connection)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestSimulationConfig(t *testing.T) {
	c := config.DefaultConfig()
	got, err := simulationConfig(c.Sales)
	if err != nil {
		t.Fatalf("simulationConfig() error = %v", err)
	}

	if got.Start != time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("Expected start 2023-01-01, got %v", got.Start)
	}
	if got.End != time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC) {
		t.Errorf("Expected end 2024-12-31, got %v", got.End)
	}

	want := sales.DefaultDemandModel()
	if got.Demand.Average != want.Average || got.Demand.WeekendFactor != want.WeekendFactor ||
		got.Demand.FestivalFactor != want.FestivalFactor || got.Demand.SeasonalFactor != want.SeasonalFactor ||
		got.Demand.NoiseFraction != want.NoiseFraction {
		t.Errorf("Expected default demand model %+v, got %+v", want, got.Demand)
	}
	if len(got.Demand.SeasonalMonths) != 3 || got.Demand.SeasonalMonths[0] != time.October {
		t.Errorf("Unexpected seasonal months: %v", got.Demand.SeasonalMonths)
	}
	if got.PopularityExponent != sales.DefaultPopularityExponent {
		t.Errorf("Expected exponent %v, got %v", sales.DefaultPopularityExponent, got.PopularityExponent)
	}
}

func TestSimulationConfigInvalidRange(t *testing.T) {
	c := config.DefaultConfig()
	c.Sales.StartDate = "2024-02-01"
	c.Sales.EndDate = "2024-01-01"
	if _, err := simulationConfig(c.Sales); err == nil {
		t.Error("Expected error for reversed date range")
	}
}

func TestResolveSeed(t *testing.T) {
	if got := resolveSeed(42); got != 42 {
		t.Errorf("Expected configured seed 42, got %d", got)
	}
	if got := resolveSeed(0); got == 0 {
		t.Error("Expected a non-zero time-based seed")
	}
}

func TestResolveHolidaysFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidays.yaml")
	content := "holidays:\n  \"2024-01-26\": Republic Day\n  \"2023-08-15\": Independence Day\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write holiday file: %v", err)
	}

	c := testConfig(t)
	c.Holidays.Provider = "file"
	c.Holidays.File = path

	cal, err := resolveHolidays(context.Background(), c)
	if err != nil {
		t.Fatalf("resolveHolidays() error = %v", err)
	}
	if cal.Len() != 1 || cal["2024-01-26"] != "Republic Day" {
		t.Errorf("Expected only the 2024 holiday, got %v", cal)
	}
}

func TestResolveHolidaysUnknownProvider(t *testing.T) {
	c := testConfig(t)
	c.Holidays.Provider = "almanac"
	if _, err := resolveHolidays(context.Background(), c); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestPopulate(t *testing.T) {
	c := testConfig(t)
	st := openStore(t, c)
	ctx := context.Background()

	meta, err := populate(ctx, st, c, 7)
	if err != nil {
		t.Fatalf("populate() error = %v", err)
	}

	if meta["seed"] != "7" || meta["app"] != appName || meta["run_id"] == "" {
		t.Errorf("Unexpected metadata: %v", meta)
	}
	if meta["sales_days"] != "31" {
		t.Errorf("Expected 31 sales days, got %s", meta["sales_days"])
	}

	counts, err := st.TableCounts(ctx)
	if err != nil {
		t.Fatalf("TableCounts() error = %v", err)
	}
	if counts["products"] != 15 {
		t.Errorf("Expected 15 products, got %d", counts["products"])
	}
	if strconv.FormatInt(counts["sales"], 10) != meta["sales_rows"] {
		t.Errorf("Expected %s sales rows, got %d", meta["sales_rows"], counts["sales"])
	}
	if counts["holidays"] != 0 {
		t.Errorf("Expected no holidays with the none provider, got %d", counts["holidays"])
	}
}

func TestPopulateDeterministic(t *testing.T) {
	ctx := context.Background()
	var runs [2][]saleRow
	for i := range runs {
		c := testConfig(t)
		st := openStore(t, c)
		if _, err := populate(ctx, st, c, 99); err != nil {
			t.Fatalf("populate() error = %v", err)
		}
		runs[i] = readSales(t, c.Connection)
	}

	if len(runs[0]) == 0 {
		t.Fatal("Expected sales to be generated")
	}
	if !reflect.DeepEqual(runs[0], runs[1]) {
		t.Errorf("Expected identical sales for equal seeds, got %d and %d rows",
			len(runs[0]), len(runs[1]))
	}
}

func TestPopulateSeedChangesSales(t *testing.T) {
	ctx := context.Background()
	var runs [2][]saleRow
	for i := range runs {
		c := testConfig(t)
		st := openStore(t, c)
		if _, err := populate(ctx, st, c, uint64(i+1)); err != nil {
			t.Fatalf("populate() error = %v", err)
		}
		runs[i] = readSales(t, c.Connection)
	}
	if reflect.DeepEqual(runs[0], runs[1]) {
		t.Error("Expected different seeds to produce different sales")
	}
}

// interruptingStore cancels the run after the first sales batch is written.
type interruptingStore struct {
	store.Store
	cancel context.CancelFunc
}

func (s *interruptingStore) WriteSales(ctx context.Context, records []sales.Record) error {
	if err := s.Store.WriteSales(ctx, records); err != nil {
		return err
	}
	s.cancel()
	return nil
}

func TestPrepareStoreAfterInterruptedRun(t *testing.T) {
	c := testConfig(t)
	st := openStore(t, c)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if _, err := populate(ctx, &interruptingStore{Store: st, cancel: cancel}, c, 3); err == nil {
		t.Fatal("Expected populate to stop after cancellation")
	}

	bg := context.Background()
	initialized, err := st.IsInitialized(bg)
	if err != nil || initialized {
		t.Fatalf("Expected interrupted run to be uninitialized (err=%v)", err)
	}
	partial, err := st.HasSchema(bg)
	if err != nil || !partial {
		t.Fatalf("Expected interrupted run to leave tables behind (err=%v)", err)
	}

	if err := prepareStore(bg, st, false); err != nil {
		t.Fatalf("prepareStore() error = %v", err)
	}
	if partial, _ := st.HasSchema(bg); partial {
		t.Error("Expected leftover tables to be dropped")
	}

	meta, err := populate(bg, st, c, 3)
	if err != nil {
		t.Fatalf("populate() after restart error = %v", err)
	}
	counts, err := st.TableCounts(bg)
	if err != nil {
		t.Fatalf("TableCounts() error = %v", err)
	}
	if counts["products"] != 15 || counts["categories"] != int64(len(catalog.DefaultMasterData().Categories)) {
		t.Errorf("Unexpected counts after restart: %v", counts)
	}
	if strconv.FormatInt(counts["sales"], 10) != meta["sales_rows"] {
		t.Errorf("Expected %s sales rows, got %d", meta["sales_rows"], counts["sales"])
	}
}

func TestPrepareStoreInitialized(t *testing.T) {
	c := testConfig(t)
	st := openStore(t, c)
	ctx := context.Background()

	if err := prepareStore(ctx, st, false); err != nil {
		t.Fatalf("prepareStore() on empty store error = %v", err)
	}

	meta, err := populate(ctx, st, c, 5)
	if err != nil {
		t.Fatalf("populate() error = %v", err)
	}
	if err := st.SaveMetadata(ctx, meta); err != nil {
		t.Fatalf("SaveMetadata() error = %v", err)
	}

	if err := prepareStore(ctx, st, false); err == nil {
		t.Error("Expected an initialized store to be refused without drop")
	}
	if err := prepareStore(ctx, st, true); err != nil {
		t.Fatalf("prepareStore(drop) error = %v", err)
	}
	if initialized, _ := st.IsInitialized(ctx); initialized {
		t.Error("Expected store to be uninitialized after drop")
	}
	if partial, _ := st.HasSchema(ctx); partial {
		t.Error("Expected no tables after drop")
	}
}

func TestRegenerate(t *testing.T) {
	c := testConfig(t)
	st := openStore(t, c)
	ctx := context.Background()

	first, err := populate(ctx, st, c, 1)
	if err != nil {
		t.Fatalf("populate() error = %v", err)
	}
	if err := st.SaveMetadata(ctx, first); err != nil {
		t.Fatalf("SaveMetadata() error = %v", err)
	}

	c.Sales.StartDate = "2024-02-01"
	c.Sales.EndDate = "2024-02-10"
	second, err := regenerate(ctx, st, c, 2)
	if err != nil {
		t.Fatalf("regenerate() error = %v", err)
	}
	if second["sales_days"] != "10" {
		t.Errorf("Expected 10 sales days, got %s", second["sales_days"])
	}

	counts, err := st.TableCounts(ctx)
	if err != nil {
		t.Fatalf("TableCounts() error = %v", err)
	}
	if strconv.FormatInt(counts["sales"], 10) != second["sales_rows"] {
		t.Errorf("Expected only regenerated sales (%s), got %d", second["sales_rows"], counts["sales"])
	}
	if counts["products"] != 15 {
		t.Errorf("Expected catalog to be kept, got %d products", counts["products"])
	}
}

func TestRegenerateFetchesMissingHolidayYears(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidays.yaml")
	content := "holidays:\n  \"2024-01-26\": Republic Day\n  \"2025-01-26\": Republic Day\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write holiday file: %v", err)
	}

	c := testConfig(t)
	c.Holidays.Provider = "file"
	c.Holidays.File = path
	st := openStore(t, c)
	ctx := context.Background()

	if _, err := populate(ctx, st, c, 11); err != nil {
		t.Fatalf("populate() error = %v", err)
	}
	stored, err := st.LoadHolidays(ctx)
	if err != nil {
		t.Fatalf("LoadHolidays() error = %v", err)
	}
	if stored.Len() != 1 {
		t.Fatalf("Expected only the 2024 holiday after init, got %v", stored)
	}

	c.Sales.StartDate = "2025-01-20"
	c.Sales.EndDate = "2025-01-31"
	if _, err := regenerate(ctx, st, c, 12); err != nil {
		t.Fatalf("regenerate() error = %v", err)
	}

	stored, err = st.LoadHolidays(ctx)
	if err != nil {
		t.Fatalf("LoadHolidays() error = %v", err)
	}
	if stored["2025-01-26"] != "Republic Day" || stored["2024-01-26"] != "Republic Day" {
		t.Errorf("Expected both years to be persisted, got %v", stored)
	}

	holidayRows := 0
	for _, r := range readSales(t, c.Connection) {
		if r.SaleDate == "2025-01-26" {
			holidayRows++
			if !r.IsHoliday || r.HolidayName == nil || *r.HolidayName != "Republic Day" {
				t.Errorf("Expected %s to be flagged as Republic Day: %+v", r.TransactionID, r)
			}
		} else if r.IsHoliday {
			t.Errorf("Unexpected holiday flag on %s", r.SaleDate)
		}
	}
	if holidayRows == 0 {
		t.Error("Expected sales on 2025-01-26")
	}
}

func TestGenerateSalesCancelled(t *testing.T) {
	c := testConfig(t)
	st := openStore(t, c)

	ctx, cancel := context.WithCancel(context.Background())
	if err := st.CreateSchema(ctx); err != nil {
		t.Fatalf("CreateSchema() error = %v", err)
	}
	cancel()

	products := []sales.Product{{ID: 1, Price: 100}}
	variants := map[int64][]int64{1: {1}}
	if _, err := generateSales(ctx, st, c.Sales, products, variants, nil, 1); err == nil {
		t.Error("Expected error from cancelled context")
	}
}
