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
	"math"
	"math/rand/v2"
	"slices"
)

// DefaultPopularityExponent gives a long tail that still favours early
// products noticeably.
const DefaultPopularityExponent = 0.9

// Weight pairs a product with its draw probability.
type Weight struct {
	ProductID   int64
	Probability float64
}

// Distribution is a fixed rank-based popularity distribution over products.
// Rank 0 is the smallest product id; weight(rank) is proportional to
// 1/(rank+1)^exponent.
type Distribution struct {
	weights []Weight
}

// BuildDistribution builds the distribution over ids. The input is not
// modified; ids are ranked in ascending order.
func BuildDistribution(ids []int64, exponent float64) (*Distribution, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyCatalog
	}

	sorted := slices.Clone(ids)
	slices.Sort(sorted)

	weights := make([]Weight, len(sorted))
	var sum float64
	for rank, id := range sorted {
		w := 1.0 / math.Pow(float64(rank+1), exponent)
		weights[rank] = Weight{ProductID: id, Probability: w}
		sum += w
	}
	for i := range weights {
		weights[i].Probability /= sum
	}

	return &Distribution{weights: weights}, nil
}

// Draw returns the first product whose cumulative probability reaches a
// uniform draw in [0,1). Rounding drift past the end yields the last product.
func (d *Distribution) Draw(rng *rand.Rand) int64 {
	r := rng.Float64()
	var cum float64
	for _, w := range d.weights {
		cum += w.Probability
		if r <= cum {
			return w.ProductID
		}
	}
	return d.weights[len(d.weights)-1].ProductID
}

// Weights returns a copy of the distribution in rank order.
func (d *Distribution) Weights() []Weight {
	return slices.Clone(d.weights)
}

// Len returns the number of products in the distribution.
func (d *Distribution) Len() int {
	return len(d.weights)
}
