//-------------------------------------------------------------------------
//
// pgEdge Textile Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package datagen provides data generation utilities.
package datagen

import (
	"github.com/brianvoe/gofakeit/v7"
)

// Faker provides fake data generation using gofakeit.
type Faker struct {
	faker *gofakeit.Faker
}

// NewFakerWithSeed creates a new Faker with a specific seed for reproducibility.
func NewFakerWithSeed(seed uint64) *Faker {
	return &Faker{
		faker: gofakeit.New(seed),
	}
}

// Int generates a random integer between min and max (inclusive).
func (f *Faker) Int(min, max int) int {
	return f.faker.IntRange(min, max)
}

// Choose returns a random element from the given slice.
func Choose[T any](f *Faker, items []T) T {
	if len(items) == 0 {
		var zero T
		return zero
	}
	return items[f.Int(0, len(items)-1)]
}

// Sample returns k distinct elements of items in random order.
// k is clamped to len(items). The input slice is not modified.
func Sample[T any](f *Faker, items []T, k int) []T {
	if k > len(items) {
		k = len(items)
	}
	if k <= 0 {
		return nil
	}

	pool := make([]T, len(items))
	copy(pool, items)

	// Partial Fisher-Yates: the first k slots end up holding the sample.
	for i := 0; i < k; i++ {
		j := f.Int(i, len(pool)-1)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
