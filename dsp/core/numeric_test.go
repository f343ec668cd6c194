package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClampInt(t *testing.T) {
	if got := ClampInt(5, 0, 3); got != 3 {
		t.Fatalf("ClampInt(5, 0, 3) = %d, want 3", got)
	}
	if got := ClampInt(-1, 0, 3); got != 0 {
		t.Fatalf("ClampInt(-1, 0, 3) = %d, want 0", got)
	}
	if got := ClampInt(2, 3, 0); got != 2 {
		t.Fatalf("ClampInt(2, 3, 0) = %d, want 2", got)
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(1, 3, 0); got != 1 {
		t.Fatalf("Lerp(1, 3, 0) = %v, want 1", got)
	}
	if got := Lerp(1, 3, 1); got != 3 {
		t.Fatalf("Lerp(1, 3, 1) = %v, want 3", got)
	}
	if got := Lerp(1, 3, 0.5); got != 2 {
		t.Fatalf("Lerp(1, 3, 0.5) = %v, want 2", got)
	}
	// Unclamped by contract.
	if got := Lerp(0, 2, 1.5); got != 3 {
		t.Fatalf("Lerp(0, 2, 1.5) = %v, want 3", got)
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestDBConversions(t *testing.T) {
	linear := DBToLinear(-6)
	db := LinearToDB(linear)
	if !NearlyEqual(db, -6, 1e-10) {
		t.Fatalf("LinearToDB(DBToLinear(-6)) = %v, want -6", db)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}

func TestFlushDenormals(t *testing.T) {
	if got := FlushDenormals(1e-40); got != 0 {
		t.Fatalf("FlushDenormals(1e-40) = %v, want 0", got)
	}
	if got := FlushDenormals(0.5); got != 0.5 {
		t.Fatalf("FlushDenormals(0.5) = %v, want 0.5", got)
	}
}
