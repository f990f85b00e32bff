package testutil

import (
	"math"
	"testing"
)

func TestRMS(t *testing.T) {
	if got := RMS([]float64{1, -1, 1, -1}); got != 1 {
		t.Fatalf("RMS = %v, want 1", got)
	}
	if got := RMS(nil); got != 0 {
		t.Fatalf("RMS(nil) = %v, want 0", got)
	}
}

func TestGainDB(t *testing.T) {
	in := Sine(1000, 48000, 1, 4800)
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = 0.5 * v
	}
	got := GainDB(in, out, 100)
	if math.Abs(got-20*math.Log10(0.5)) > 1e-9 {
		t.Fatalf("GainDB = %v, want %v", got, 20*math.Log10(0.5))
	}
	if !math.IsNaN(GainDB(in, out, len(in))) {
		t.Fatal("expected NaN when skip covers the whole signal")
	}
}

func TestRequireHelpersPass(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2}, []float64{1, 2 + 1e-12}, 1e-9)
	RequireFinite(t, []float64{0, -48, 1e300})
}
