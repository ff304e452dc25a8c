//-------------------------------------------------------------------------
//
// pgEdge Textile Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pgEdge/pgedge-textilegen/internal/datagen"
	"github.com/pgEdge/pgedge-textilegen/internal/sales"
)

// Offers are the discount percentages a product may carry.
var Offers = []int{0, 5, 10, 15, 20, 25}

// priceBand is an inclusive base price range selected by category keyword.
type priceBand struct {
	keywords []string
	min, max int
}

// Bands are checked in order; the first keyword match wins.
var priceBands = []priceBand{
	{[]string{"saree", "dress", "ethnic", "coat", "jacket", "blazer"}, 1200, 7000},
	{[]string{"jean", "trouser", "footwear", "formal", "blazer"}, 900, 4000},
	{[]string{"t-shirt", "shirt", "shorts", "innerwear", "activewear"}, 300, 2500},
}

var defaultBand = priceBand{min: 400, max: 3500}

// Product is a generated catalog product.
type Product struct {
	ID               int64
	Name             string
	CategoryID       int64
	BrandID          int64
	MaterialID       int64
	SupplierID       int64
	CollectionID     int64
	BroughtUnitPrice float64
	CurrentPrice     float64
	Offer            float64
	PriceAfterOffer  float64
}

// Variant is a colour/size combination of a product.
type Variant struct {
	ID            int64
	ProductID     int64
	ColorID       int64
	SizeID        int64
	StockQuantity int
}

// ProductStyle links a product to a style.
type ProductStyle struct {
	ProductID int64
	StyleID   int64
}

// Catalog is the generated product data.
type Catalog struct {
	Products      []Product
	Variants      []Variant
	ProductStyles []ProductStyle
}

// Generate creates numProducts products with their variants and style
// links. Output is fully determined by the faker's seed.
func Generate(f *datagen.Faker, m MasterData, numProducts int) (*Catalog, error) {
	if numProducts <= 0 {
		return nil, fmt.Errorf("number of products must be positive, got %d", numProducts)
	}
	if len(m.Categories) == 0 || len(m.Materials) == 0 || len(m.Suppliers) == 0 ||
		len(m.Collections) == 0 || len(m.Colors) == 0 || len(m.Sizes) == 0 || len(m.Styles) == 0 {
		return nil, fmt.Errorf("master data is incomplete")
	}

	c := &Catalog{
		Products: make([]Product, 0, numProducts),
	}

	for i := 1; i <= numProducts; i++ {
		catIdx := f.Int(0, len(m.Categories)-1)
		cat := m.Categories[catIdx]
		brand := datagen.Choose(f, cat.Brands)

		p := Product{
			ID:           int64(i),
			Name:         fmt.Sprintf("%s %s Style %d", brand, cat.Category, i),
			CategoryID:   int64(catIdx + 1),
			BrandID:      m.BrandID(brand),
			MaterialID:   int64(f.Int(1, len(m.Materials))),
			SupplierID:   int64(f.Int(1, len(m.Suppliers))),
			CollectionID: int64(f.Int(1, len(m.Collections))),
		}

		base, offer, after := randomPrice(f, cat.Category)
		p.BroughtUnitPrice = float64(base)
		p.CurrentPrice = float64(base)
		p.Offer = float64(offer)
		p.PriceAfterOffer = after

		c.Products = append(c.Products, p)
	}

	colorIDs := idRange(len(m.Colors))
	sizeIDs := idRange(len(m.Sizes))
	var variantID int64
	for _, p := range c.Products {
		colors := datagen.Sample(f, colorIDs, f.Int(1, min(5, len(colorIDs))))
		sizes := datagen.Sample(f, sizeIDs, f.Int(1, min(6, len(sizeIDs))))

		combos := make([]Variant, 0, len(colors)*len(sizes))
		for _, col := range colors {
			for _, sz := range sizes {
				combos = append(combos, Variant{
					ProductID:     p.ID,
					ColorID:       col,
					SizeID:        sz,
					StockQuantity: f.Int(10, 300),
				})
			}
		}

		for _, v := range datagen.Sample(f, combos, f.Int(1, min(10, len(combos)))) {
			variantID++
			v.ID = variantID
			c.Variants = append(c.Variants, v)
		}
	}

	styleIDs := idRange(len(m.Styles))
	for _, p := range c.Products {
		for _, sid := range datagen.Sample(f, styleIDs, f.Int(1, min(2, len(styleIDs)))) {
			c.ProductStyles = append(c.ProductStyles, ProductStyle{ProductID: p.ID, StyleID: sid})
		}
	}

	return c, nil
}

// SalesInputs returns the products and variants in the form the sales
// simulator consumes.
func (c *Catalog) SalesInputs() ([]sales.Product, map[int64][]int64) {
	products := make([]sales.Product, len(c.Products))
	for i, p := range c.Products {
		products[i] = sales.Product{
			ID:         p.ID,
			CategoryID: p.CategoryID,
			Price:      sales.ResolvePrice(&p.PriceAfterOffer, &p.CurrentPrice),
		}
	}

	variants := make(map[int64][]int64)
	for _, v := range c.Variants {
		variants[v.ProductID] = append(variants[v.ProductID], v.ID)
	}
	return products, variants
}

func randomPrice(f *datagen.Faker, category string) (base, offer int, after float64) {
	band := bandFor(category)
	base = f.Int(band.min, band.max)
	offer = datagen.Choose(f, Offers)
	after = decimal.NewFromInt(int64(base)).
		Mul(decimal.NewFromInt(int64(100 - offer))).
		Div(decimal.NewFromInt(100)).
		Round(2).
		InexactFloat64()
	return base, offer, after
}

func bandFor(category string) priceBand {
	name := strings.ToLower(category)
	for _, b := range priceBands {
		for _, k := range b.keywords {
			if strings.Contains(name, k) {
				return b
			}
		}
	}
	return defaultBand
}

func idRange(n int) []int64 {
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	return ids
}
