package spectrum

import (
	"math"
	"testing"
)

func TestSplitComplex(t *testing.T) {
	in := []complex128{complex(1, 2), complex(-3, 4), complex(5, -6)}
	re := make([]float64, 2)
	im := make([]float64, 2)
	SplitComplex(re, im, in)
	if re[0] != 1 || im[0] != 2 || re[1] != -3 || im[1] != 4 {
		t.Fatalf("SplitComplex = %v %v", re, im)
	}
}

func TestMagnitudeFromParts(t *testing.T) {
	re := []float64{3, -1, 0}
	im := []float64{4, -1, 0}
	dst := make([]float64, 3)
	MagnitudeFromParts(dst, re, im)

	want := []float64{5, math.Sqrt2, 0}
	for i := range want {
		if math.Abs(dst[i]-want[i]) > 1e-12 {
			t.Fatalf("MagnitudeFromParts[%d]=%f want=%f", i, dst[i], want[i])
		}
	}
}

func TestScale(t *testing.T) {
	bins := []float64{1024, 512, 0}
	Scale(bins, 1.0/1024)
	if bins[0] != 1 || bins[1] != 0.5 || bins[2] != 0 {
		t.Fatalf("Scale = %v", bins)
	}
}

func TestGainToDecibels(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
		tol  float64
	}{
		{name: "unity", in: 1, want: 0, tol: 1e-3},
		{name: "half", in: 0.5, want: -6.0206, tol: 1e-2},
		{name: "zero", in: 0, want: -48, tol: 0},
		{name: "negative", in: -1, want: -48, tol: 0},
		{name: "nan", in: math.NaN(), want: -48, tol: 0},
		{name: "below floor", in: 1e-5, want: -48, tol: 0},
		{name: "just above floor", in: 0.01, want: -40, tol: 1e-2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bins := []float64{tt.in}
			GainToDecibels(bins, -48)
			if math.Abs(bins[0]-tt.want) > tt.tol {
				t.Fatalf("GainToDecibels(%v) = %v, want %v", tt.in, bins[0], tt.want)
			}
		})
	}
}
