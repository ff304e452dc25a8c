//-------------------------------------------------------------------------
//
// pgEdge Textile Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package catalog holds the textile master data and generates the product
// catalog from it.
package catalog

import (
	"sort"
)

// CategoryBrands pairs a category with the brands that sell it.
type CategoryBrands struct {
	Category string
	Brands   []string
}

// Supplier is a fabric supplier.
type Supplier struct {
	Name        string
	BrandName   string
	ContactInfo string
}

// MasterData holds the fixed reference lists. Row ids are the 1-based
// positions in each list.
type MasterData struct {
	Categories  []CategoryBrands
	Brands      []string
	Materials   []string
	Suppliers   []Supplier
	Collections []string
	Styles      []string
	Colors      []string
	Sizes       []string
}

// DefaultMasterData returns the stock textile reference data.
func DefaultMasterData() MasterData {
	categories := []CategoryBrands{
		{"Shirts", []string{"Allen Solly", "Van Heusen", "Peter England", "Raymond", "Louis Philippe"}},
		{"T-Shirts", []string{"Nike", "Puma", "H&M", "Zara", "United Colors of Benetton", "Jack & Jones"}},
		{"Jeans", []string{"Levi's", "Wrangler", "Lee", "Pepe Jeans", "Spykar"}},
		{"Trousers", []string{"Arrow", "Van Heusen", "Louis Philippe", "Allen Solly", "H&M"}},
		{"Sarees", []string{"Nalli", "Biba", "FabIndia", "Sabyasachi", "Manyavar"}},
		{"Dresses", []string{"H&M", "Zara", "Forever 21", "FabIndia", "Biba"}},
		{"Sweaters", []string{"UCB", "Puma", "Adidas", "Peter England", "H&M"}},
		{"Kurtas", []string{"Biba", "FabIndia", "Manyavar", "W", "Aurelia"}},
		{"Ethnic Wear", []string{"FabIndia", "Biba", "Manyavar", "Sabyasachi", "W"}},
		{"Shorts", []string{"Nike", "Adidas", "Puma", "Reebok", "H&M"}},
		{"Skirts", []string{"H&M", "Zara", "Forever 21", "FabIndia", "Biba"}},
		{"Jackets", []string{"Levi's", "Nike", "Puma", "Zara", "Wildcraft"}},
		{"Coats", []string{"Zara", "H&M", "United Colors of Benetton", "Tommy Hilfiger", "Mango"}},
		{"Footwear", []string{"Bata", "Nike", "Adidas", "Puma", "Woodland", "Red Tape"}},
		{"Accessories", []string{"Fossil", "Titan", "Hidesign", "Fastrack", "Aldo"}},
		{"Kids Wear", []string{"Gini & Jony", "H&M Kids", "Mothercare", "Carter's", "Chicco"}},
		{"Innerwear", []string{"Jockey", "Enamor", "Calvin Klein", "Hanes", "Amante"}},
		{"Activewear", []string{"Nike", "Adidas", "Puma", "Reebok", "HRX"}},
		{"Formal Wear", []string{"Raymond", "Van Heusen", "Allen Solly", "Louis Philippe", "Arrow"}},
		{"Blazers", []string{"Van Heusen", "Louis Philippe", "Allen Solly", "Raymond", "Zara"}},
	}

	return MasterData{
		Categories: categories,
		Brands:     uniqueBrands(categories),
		Materials: []string{
			"Cotton", "Polyester", "Silk", "Wool", "Denim", "Linen", "Chiffon",
			"Georgette", "Rayon", "Velvet", "Leather", "Suede", "Nylon", "Viscose",
		},
		Suppliers: []Supplier{
			{"Eastern Fabrics Pvt Ltd", "Allen Solly", "eastern@fabrics.example"},
			{"South Textiles Co", "Biba", "south@textile.example"},
			{"Urban Suppliers", "H&M", "urban@suppliers.example"},
			{"Heritage Mills", "Raymond", "heritage@mills.example"},
			{"Global Fabrics", "Nike", "global@fabrics.example"},
			{"Style Hub", "FabIndia", "stylehub@shop.example"},
		},
		Collections: []string{"Summer", "Winter", "Festive", "Casual", "Formal", "Spring", "Autumn", "Monsoon"},
		Styles:      []string{"Casual", "Formal", "Ethnic", "Sporty", "Partywear", "Workwear", "Lounge"},
		Colors: []string{
			"Black", "White", "Red", "Blue", "Green", "Yellow", "Pink", "Grey", "Beige",
			"Brown", "Maroon", "Navy", "Olive", "Orange", "Purple", "Teal", "Mustard",
		},
		Sizes: []string{"XS", "S", "M", "L", "XL", "XXL", "28", "30", "32", "34", "36"},
	}
}

// CategoryNames returns the category names in id order.
func (m MasterData) CategoryNames() []string {
	names := make([]string, len(m.Categories))
	for i, c := range m.Categories {
		names[i] = c.Category
	}
	return names
}

// BrandID returns the 1-based id of a brand, or 0 if unknown.
func (m MasterData) BrandID(name string) int64 {
	for i, b := range m.Brands {
		if b == name {
			return int64(i + 1)
		}
	}
	return 0
}

func uniqueBrands(categories []CategoryBrands) []string {
	seen := make(map[string]bool)
	var brands []string
	for _, c := range categories {
		for _, b := range c.Brands {
			if !seen[b] {
				seen[b] = true
				brands = append(brands, b)
			}
		}
	}
	sort.Strings(brands)
	return brands
}
