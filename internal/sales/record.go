//-------------------------------------------------------------------------
//
// pgEdge Textile Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package sales

import (
	"time"
)

// Columns lists the sales columns in the order produced by Record.Values.
var Columns = []string{
	"transaction_id",
	"sale_date",
	"product_id",
	"variant_id",
	"quantity",
	"unit_price",
	"total_price",
	"is_weekend",
	"is_holiday",
	"holiday_name",
}

// Record is one simulated sale line.
type Record struct {
	TransactionID string
	SaleDate      time.Time
	ProductID     int64
	VariantID     int64
	Quantity      int
	UnitPrice     float64
	TotalPrice    float64
	IsWeekend     bool
	IsHoliday     bool
	HolidayName   string
}

// Values returns the record fields in Columns order. An empty holiday name
// is returned as nil.
func (r Record) Values() []any {
	var holidayName any
	if r.HolidayName != "" {
		holidayName = r.HolidayName
	}
	return []any{
		r.TransactionID,
		r.SaleDate,
		r.ProductID,
		r.VariantID,
		r.Quantity,
		r.UnitPrice,
		r.TotalPrice,
		r.IsWeekend,
		r.IsHoliday,
		holidayName,
	}
}
