package raster

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	stats := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9}, -9999)

	if stats.Count != 8 {
		t.Errorf("Count = %d, want 8", stats.Count)
	}
	if stats.Mean != 5 {
		t.Errorf("Mean = %v, want 5", stats.Mean)
	}
	if stats.Min != 2 {
		t.Errorf("Min = %v, want 2", stats.Min)
	}
	if stats.Max != 9 {
		t.Errorf("Max = %v, want 9", stats.Max)
	}
	// Population std of this classic sequence is exactly 2.
	if math.Abs(stats.Std-2) > 1e-12 {
		t.Errorf("Std = %v, want 2", stats.Std)
	}
}

func TestSummarize_ExcludesNodata(t *testing.T) {
	stats := Summarize([]float64{-9999, 10, -9999, 20}, -9999)

	if stats.Count != 2 {
		t.Errorf("Count = %d, want 2", stats.Count)
	}
	if stats.Mean != 15 {
		t.Errorf("Mean = %v, want 15", stats.Mean)
	}
}

func TestSummarize_ExcludesNaN(t *testing.T) {
	stats := Summarize([]float64{math.NaN(), 3}, -9999)

	if stats.Count != 1 {
		t.Errorf("Count = %d, want 1", stats.Count)
	}
	if stats.Mean != 3 {
		t.Errorf("Mean = %v, want 3", stats.Mean)
	}
}

func TestSummarize_AllNodata(t *testing.T) {
	stats := Summarize([]float64{-9999, -9999}, -9999)

	if stats.Count != 0 {
		t.Errorf("Count = %d, want 0", stats.Count)
	}
	if !math.IsNaN(stats.Mean) || !math.IsNaN(stats.Min) || !math.IsNaN(stats.Max) || !math.IsNaN(stats.Std) {
		t.Errorf("value statistics = %+v, want all NaN", stats)
	}
}

func TestSummarize_Empty(t *testing.T) {
	stats := Summarize(nil, -9999)

	if stats.Count != 0 {
		t.Errorf("Count = %d, want 0", stats.Count)
	}
	if !math.IsNaN(stats.Mean) {
		t.Errorf("Mean = %v, want NaN", stats.Mean)
	}
}

func TestSummarize_SingleValue(t *testing.T) {
	stats := Summarize([]float64{42}, -9999)

	if stats.Count != 1 {
		t.Errorf("Count = %d, want 1", stats.Count)
	}
	if stats.Mean != 42 || stats.Min != 42 || stats.Max != 42 {
		t.Errorf("stats = %+v, want mean/min/max 42", stats)
	}
	if stats.Std != 0 {
		t.Errorf("Std = %v, want 0", stats.Std)
	}
}

func TestMaskedValues(t *testing.T) {
	buf := []float64{1, 2, 3, 4}
	mask := []bool{true, false, true, false}

	got := MaskedValues(buf, mask)
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("MaskedValues() = %v, want [1 3]", got)
	}
}

func TestMaskedValues_EmptyMask(t *testing.T) {
	if got := MaskedValues([]float64{1, 2}, nil); got != nil {
		t.Errorf("MaskedValues() = %v, want nil", got)
	}
}
