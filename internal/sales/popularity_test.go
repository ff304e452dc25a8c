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
	"errors"
	"math"
	"testing"
)

func TestBuildDistributionSumsToOne(t *testing.T) {
	sizes := []int{1, 2, 7, 250, 5000}

	for _, n := range sizes {
		ids := make([]int64, n)
		for i := range ids {
			ids[i] = int64(i + 1)
		}
		d, err := BuildDistribution(ids, DefaultPopularityExponent)
		if err != nil {
			t.Fatalf("BuildDistribution(%d) error = %v", n, err)
		}

		var sum float64
		for _, w := range d.Weights() {
			sum += w.Probability
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("Expected probabilities to sum to 1 for %d products, got %v", n, sum)
		}
	}
}

func TestBuildDistributionRankOrder(t *testing.T) {
	ids := []int64{40, 3, 17, 8}
	d, err := BuildDistribution(ids, DefaultPopularityExponent)
	if err != nil {
		t.Fatalf("BuildDistribution() error = %v", err)
	}

	w := d.Weights()
	wantOrder := []int64{3, 8, 17, 40}
	for i, id := range wantOrder {
		if w[i].ProductID != id {
			t.Errorf("Expected product %d at rank %d, got %d", id, i, w[i].ProductID)
		}
	}
	for i := 1; i < len(w); i++ {
		if w[i].Probability >= w[0].Probability {
			t.Errorf("Rank 0 should have the highest probability, rank %d has %v >= %v",
				i, w[i].Probability, w[0].Probability)
		}
	}

	// Ratio between adjacent ranks follows the power law.
	want := math.Pow(2, DefaultPopularityExponent)
	if got := w[0].Probability / w[1].Probability; math.Abs(got-want) > 1e-12 {
		t.Errorf("Expected rank ratio %v, got %v", want, got)
	}

	if ids[0] != 40 {
		t.Error("BuildDistribution modified its input")
	}
}

func TestBuildDistributionEmpty(t *testing.T) {
	_, err := BuildDistribution(nil, DefaultPopularityExponent)
	if !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("Expected ErrEmptyCatalog, got %v", err)
	}
}

func TestDistributionDraw(t *testing.T) {
	ids := []int64{1, 2, 3, 4, 5}
	d, err := BuildDistribution(ids, DefaultPopularityExponent)
	if err != nil {
		t.Fatalf("BuildDistribution() error = %v", err)
	}

	rng := newRNG(11)
	counts := make(map[int64]int)
	for i := 0; i < 20000; i++ {
		counts[d.Draw(rng)]++
	}

	for id := range counts {
		if id < 1 || id > 5 {
			t.Errorf("Draw returned unknown product %d", id)
		}
	}
	if counts[1] <= counts[5] {
		t.Errorf("Expected product 1 to be drawn more than product 5: %v", counts)
	}
}

func TestDistributionDrawDeterministic(t *testing.T) {
	ids := []int64{1, 2, 3, 4, 5, 6, 7, 8}
	d, _ := BuildDistribution(ids, DefaultPopularityExponent)

	r1, r2 := newRNG(42), newRNG(42)
	for i := 0; i < 500; i++ {
		if a, b := d.Draw(r1), d.Draw(r2); a != b {
			t.Fatalf("Draw %d differs for the same seed: %d != %d", i, a, b)
		}
	}
}

func TestDistributionSingleProduct(t *testing.T) {
	d, _ := BuildDistribution([]int64{9}, DefaultPopularityExponent)
	if d.Len() != 1 {
		t.Errorf("Expected 1 product, got %d", d.Len())
	}
	if got := d.Draw(newRNG(1)); got != 9 {
		t.Errorf("Expected product 9, got %d", got)
	}
}
