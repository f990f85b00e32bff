package eq

import (
	"math"
	"testing"

	"github.com/cwbudde/simple-eq/dsp/filter/biquad"
)

func TestMakeCutFilterSectionCounts(t *testing.T) {
	for _, slope := range []Slope{Slope12, Slope24, Slope36, Slope48} {
		t.Run(slope.String(), func(t *testing.T) {
			cs := ChainSettings{LowCutFreq: 100, HighCutFreq: 8000, LowCutSlope: slope, HighCutSlope: slope}
			low := MakeLowCutFilter(cs, 48000)
			high := MakeHighCutFilter(cs, 48000)
			if len(low) != slope.Sections() || len(high) != slope.Sections() {
				t.Fatalf("sections = %d/%d, want %d", len(low), len(high), slope.Sections())
			}
			for i, c := range low {
				if !c.IsStable() {
					t.Fatalf("low-cut section %d unstable: %+v", i, *c)
				}
			}
			for i, c := range high {
				if !c.IsStable() {
					t.Fatalf("high-cut section %d unstable: %+v", i, *c)
				}
			}
		})
	}
}

func TestMakeFiltersReturnFreshHandles(t *testing.T) {
	cs := ChainSettings{PeakFreq: 1000, PeakQuality: 1, LowCutFreq: 100, HighCutFreq: 8000, LowCutSlope: Slope24}
	a := MakePeakFilter(cs, 48000)
	b := MakePeakFilter(cs, 48000)
	if a == b || *a != *b {
		t.Fatal("MakePeakFilter should return equal coefficients in distinct handles")
	}
	la := MakeLowCutFilter(cs, 48000)
	lb := MakeLowCutFilter(cs, 48000)
	if la[0] == lb[0] || la[0] == la[1] {
		t.Fatal("cut handles are shared")
	}
}

func TestMakePeakFilterGain(t *testing.T) {
	for _, gain := range []float64{-24, -6, 0, 6, 24} {
		cs := ChainSettings{PeakFreq: 750, PeakGainDB: gain, PeakQuality: 1}
		got := MakePeakFilter(cs, 48000).MagnitudeDB(750, 48000)
		if math.Abs(got-gain) > 1e-9 {
			t.Fatalf("gain %v: |H(f0)| = %v dB", gain, got)
		}
	}
}

func TestCoefficientSetMatchesFactory(t *testing.T) {
	cs := ChainSettings{
		PeakFreq: 1200, PeakGainDB: 4.5, PeakQuality: 0.7,
		LowCutFreq: 60, HighCutFreq: 9000,
		LowCutSlope: Slope36, HighCutSlope: Slope48,
	}
	var set coefficientSet
	set.bind()
	low, high := set.fill(cs, 44100)

	if set.peak != *MakePeakFilter(cs, 44100) {
		t.Fatal("peak coefficients differ")
	}
	wantLow := MakeLowCutFilter(cs, 44100)
	wantHigh := MakeHighCutFilter(cs, 44100)
	if len(low) != len(wantLow) || len(high) != len(wantHigh) {
		t.Fatalf("lengths %d/%d, want %d/%d", len(low), len(high), len(wantLow), len(wantHigh))
	}
	for i := range low {
		if *low[i] != *wantLow[i] {
			t.Fatalf("low-cut section %d differs", i)
		}
	}
	for i := range high {
		if *high[i] != *wantHigh[i] {
			t.Fatalf("high-cut section %d differs", i)
		}
	}

	allocs := testing.AllocsPerRun(100, func() {
		set.fill(cs, 44100)
	})
	if allocs != 0 {
		t.Fatalf("fill allocated %v times", allocs)
	}
}

func TestStabilizeReplacesUnstableSections(t *testing.T) {
	stable := biquad.Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	coeffs := []biquad.Coefficients{
		stable,
		{B0: 1, A1: -2.5, A2: 1.5},
		{B0: 1, A2: 1},
	}
	stabilize(coeffs)

	if coeffs[0] != stable {
		t.Fatalf("stable section changed: %+v", coeffs[0])
	}
	for i := 1; i < len(coeffs); i++ {
		if coeffs[i] != *biquad.Identity() {
			t.Fatalf("section %d = %+v, want identity", i, coeffs[i])
		}
	}
}
