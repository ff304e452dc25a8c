//-------------------------------------------------------------------------
//
// pgEdge Textile Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package sqlite

// Table models. Ids are assigned by the generator, except sale_id.

type Category struct {
	CategoryID   int64  `gorm:"primaryKey;autoIncrement:false"`
	CategoryName string `gorm:"not null"`
}

type Brand struct {
	BrandID   int64  `gorm:"primaryKey;autoIncrement:false"`
	BrandName string `gorm:"not null"`
}

type Material struct {
	MaterialID   int64  `gorm:"primaryKey;autoIncrement:false"`
	MaterialName string `gorm:"not null"`
}

type Supplier struct {
	SupplierID   int64  `gorm:"primaryKey;autoIncrement:false"`
	SupplierName string `gorm:"not null"`
	BrandName    string
	ContactInfo  string
}

type Collection struct {
	CollectionID   int64  `gorm:"primaryKey;autoIncrement:false"`
	CollectionName string `gorm:"not null"`
}

type Style struct {
	StyleID   int64  `gorm:"primaryKey;autoIncrement:false"`
	StyleName string `gorm:"not null"`
}

type Color struct {
	ColorID   int64  `gorm:"primaryKey;autoIncrement:false"`
	ColorName string `gorm:"not null"`
}

type Size struct {
	SizeID   int64  `gorm:"primaryKey;autoIncrement:false"`
	SizeName string `gorm:"not null"`
}

type Product struct {
	ProductID        int64  `gorm:"primaryKey;autoIncrement:false"`
	ProductName      string `gorm:"not null"`
	CategoryID       *int64 `gorm:"index"`
	BrandID          *int64
	MaterialID       *int64
	SupplierID       *int64
	CollectionID     *int64
	BroughtUnitPrice *float64 `gorm:"type:decimal(10,2)"`
	CurrentPrice     *float64 `gorm:"type:decimal(10,2)"`
	Offer            *float64 `gorm:"type:decimal(5,2)"`
	PriceAfterOffer  *float64 `gorm:"type:decimal(10,2)"`
}

type ProductVariant struct {
	VariantID     int64 `gorm:"primaryKey;autoIncrement:false"`
	ProductID     int64 `gorm:"index"`
	ColorID       int64
	SizeID        int64
	StockQuantity int
}

type ProductStyle struct {
	ProductID int64 `gorm:"primaryKey;autoIncrement:false"`
	StyleID   int64 `gorm:"primaryKey;autoIncrement:false"`
}

type Holiday struct {
	HolidayDate string `gorm:"primaryKey;type:text"`
	HolidayName string
}

// Sale stores sale_date as ISO text.
type Sale struct {
	SaleID        int64   `gorm:"primaryKey"`
	TransactionID string  `gorm:"not null"`
	SaleDate      string  `gorm:"type:text;not null;index"`
	ProductID     int64   `gorm:"index"`
	VariantID     int64
	Quantity      int     `gorm:"not null"`
	UnitPrice     float64 `gorm:"type:decimal(10,2)"`
	TotalPrice    float64 `gorm:"type:decimal(10,2)"`
	IsWeekend     bool
	IsHoliday     bool
	HolidayName   *string
}

type Metadata struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

// TableName overrides the default pluralized name.
func (Metadata) TableName() string {
	return "textilegen_metadata"
}

// models lists all tables in dependency order.
func models() []any {
	return []any{
		&Category{}, &Brand{}, &Material{}, &Supplier{}, &Collection{},
		&Style{}, &Color{}, &Size{}, &Product{}, &ProductVariant{},
		&ProductStyle{}, &Holiday{}, &Sale{},
	}
}
