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

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestGainToDecibelsFloor(t *testing.T) {
	tests := []struct {
		name string
		gain float64
		want float64
	}{
		{name: "zero", gain: 0, want: -48},
		{name: "negative", gain: -1, want: -48},
		{name: "below floor", gain: 1e-4, want: -48},
		{name: "unity", gain: 1, want: 0},
		{name: "half", gain: 0.5, want: 20 * math.Log10(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GainToDecibels(tt.gain, -48)
			if !NearlyEqual(got, tt.want, 1e-12) {
				t.Fatalf("GainToDecibels(%v) = %v, want %v", tt.gain, got, tt.want)
			}
		})
	}
}

func TestFlushDenormals(t *testing.T) {
	if FlushDenormals(1e-35) != 0 {
		t.Fatal("expected tiny value flushed to zero")
	}
	if FlushDenormals(0.25) != 0.25 {
		t.Fatal("expected normal value unchanged")
	}
}

func TestIsFinite(t *testing.T) {
	if IsFinite(math.NaN()) || IsFinite(math.Inf(1)) || IsFinite(math.Inf(-1)) {
		t.Fatal("expected NaN/Inf to be non-finite")
	}
	if !IsFinite(-48) {
		t.Fatal("expected -48 to be finite")
	}
}
