//-------------------------------------------------------------------------
//
// pgEdge Textile Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"testing"
)

func TestNewFakerWithSeed(t *testing.T) {
	seed := uint64(12345)
	f1 := NewFakerWithSeed(seed)
	f2 := NewFakerWithSeed(seed)

	// Same seed should produce same sequence
	for i := 0; i < 10; i++ {
		v1 := f1.Int(0, 1000)
		v2 := f2.Int(0, 1000)
		if v1 != v2 {
			t.Errorf("Same seed produced different values: %d != %d", v1, v2)
		}
	}
}

func TestFakerInt(t *testing.T) {
	f := NewFakerWithSeed(1)
	for i := 0; i < 100; i++ {
		v := f.Int(5, 10)
		if v < 5 || v > 10 {
			t.Errorf("Int %d not in range [5, 10]", v)
		}
	}
}

func TestChoose(t *testing.T) {
	f := NewFakerWithSeed(2)
	items := []string{"a", "b", "c", "d", "e"}

	for i := 0; i < 100; i++ {
		chosen := Choose(f, items)
		found := false
		for _, item := range items {
			if item == chosen {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Choose returned item not in slice: %s", chosen)
		}
	}
}

func TestChooseEmpty(t *testing.T) {
	f := NewFakerWithSeed(3)
	var items []string

	chosen := Choose(f, items)
	if chosen != "" {
		t.Errorf("Choose on empty slice should return zero value, got: %s", chosen)
	}
}

func TestSample(t *testing.T) {
	f := NewFakerWithSeed(4)
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	for i := 0; i < 50; i++ {
		got := Sample(f, items, 4)
		if len(got) != 4 {
			t.Fatalf("Sample should return 4 items, got %d", len(got))
		}
		seen := make(map[int]bool)
		for _, v := range got {
			if v < 1 || v > 10 {
				t.Errorf("Sample returned item not in slice: %d", v)
			}
			if seen[v] {
				t.Errorf("Sample returned duplicate item: %d", v)
			}
			seen[v] = true
		}
	}

	// Input must be left untouched
	for i, v := range items {
		if v != i+1 {
			t.Fatalf("Sample modified the input slice: %v", items)
		}
	}
}

func TestSampleClamps(t *testing.T) {
	f := NewFakerWithSeed(5)
	items := []string{"x", "y"}

	if got := Sample(f, items, 5); len(got) != 2 {
		t.Errorf("Sample should clamp k to len(items), got %d", len(got))
	}
	if got := Sample(f, items, 0); got != nil {
		t.Errorf("Sample with k=0 should return nil, got %v", got)
	}
	if got := Sample(f, []string{}, 3); got != nil {
		t.Errorf("Sample on empty slice should return nil, got %v", got)
	}
}

func TestSampleDeterministic(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f"}
	s1 := Sample(NewFakerWithSeed(99), items, 3)
	s2 := Sample(NewFakerWithSeed(99), items, 3)
	for i := range s1 {
		if s1[i] != s2[i] {
			t.Errorf("Same seed produced different samples: %v != %v", s1, s2)
			break
		}
	}
}

func TestProgressReporter(t *testing.T) {
	p := NewProgressReporter("sales", 0, 100)

	if p.Update(60) {
		t.Error("Progress should not be logged before crossing the interval")
	}
	if !p.Update(60) {
		t.Error("Progress should be logged after crossing the interval")
	}
	if p.Rows() != 120 {
		t.Errorf("Expected 120 rows, got %d", p.Rows())
	}
	p.Done()
}

func TestDefaultBatchConfig(t *testing.T) {
	cfg := DefaultBatchConfig()
	if cfg.BatchSize != 3000 {
		t.Errorf("Expected BatchSize 3000, got %d", cfg.BatchSize)
	}
	if cfg.ProgressInterval != 30000 {
		t.Errorf("Expected ProgressInterval 30000, got %d", cfg.ProgressInterval)
	}
}

func TestProgressReporterDefaultInterval(t *testing.T) {
	p := NewProgressReporter("sales", 10, 0)
	if p.progressInterval != DefaultBatchConfig().ProgressInterval {
		t.Errorf("Expected default interval, got %d", p.progressInterval)
	}
}

// Benchmarks
func BenchmarkFakerInt(b *testing.B) {
	f := NewFakerWithSeed(1)
	for i := 0; i < b.N; i++ {
		f.Int(0, 1000)
	}
}

func BenchmarkSample(b *testing.B) {
	f := NewFakerWithSeed(1)
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	for i := 0; i < b.N; i++ {
		Sample(f, items, 6)
	}
}
