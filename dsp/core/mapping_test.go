package core

import (
	"testing"
)

func TestMapRange(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{name: "floor maps to bottom", value: -48, want: 200},
		{name: "zero maps to top", value: 0, want: 0},
		{name: "midpoint", value: -24, want: 100},
		{name: "below floor extrapolates", value: -96, want: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapRange(tt.value, -48, 0, 200, 0)
			if !NearlyEqual(got, tt.want, 1e-12) {
				t.Fatalf("MapRange(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestLog10MappingRoundTrip(t *testing.T) {
	for _, f := range []float64{20, 50, 100, 1000, 2343.75, 10000, 20000} {
		p := MapFromLog10(f, 20, 20000)
		if p < 0 || p > 1 {
			t.Fatalf("MapFromLog10(%v) = %v, want within [0,1]", f, p)
		}
		back := MapToLog10(p, 20, 20000)
		if !NearlyEqual(back, f, 1e-9) {
			t.Fatalf("round trip %v -> %v -> %v", f, p, back)
		}
	}
}

func TestMapFromLog10Endpoints(t *testing.T) {
	if got := MapFromLog10(20, 20, 20000); got != 0 {
		t.Fatalf("MapFromLog10(20) = %v, want 0", got)
	}
	if got := MapFromLog10(20000, 20, 20000); !NearlyEqual(got, 1, 1e-12) {
		t.Fatalf("MapFromLog10(20000) = %v, want 1", got)
	}
	// One decade is a third of the 20..20k range.
	if got := MapFromLog10(200, 20, 20000); !NearlyEqual(got, 1.0/3, 1e-12) {
		t.Fatalf("MapFromLog10(200) = %v, want 1/3", got)
	}
}

func TestMapFromLog10ZeroIsNotFinite(t *testing.T) {
	if IsFinite(MapFromLog10(0, 20, 20000)) {
		t.Fatal("expected non-finite position for 0 Hz")
	}
}
