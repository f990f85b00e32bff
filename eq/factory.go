package eq

import (
	"github.com/cwbudde/simple-eq/dsp/filter/biquad"
	"github.com/cwbudde/simple-eq/dsp/filter/design"
)

// MaxCutSections is the fixed number of sections of a cut stage.
const MaxCutSections = 4

// MakePeakFilter designs the bell section, boosting or cutting by
// cs.PeakGainDB at cs.PeakFreq.
func MakePeakFilter(cs ChainSettings, sampleRate float64) *biquad.Coefficients {
	c := peakCoefficients(cs, sampleRate)
	stabilizeSection(&c)
	return &c
}

// MakeLowCutFilter designs the low-cut cascade: a Butterworth highpass of
// order 2*(slope+1), one fresh handle per section.
func MakeLowCutFilter(cs ChainSettings, sampleRate float64) []*biquad.Coefficients {
	return handles(design.ButterworthHP(cs.LowCutFreq, cs.LowCutSlope.Order(), sampleRate))
}

// MakeHighCutFilter designs the high-cut cascade as a Butterworth lowpass.
func MakeHighCutFilter(cs ChainSettings, sampleRate float64) []*biquad.Coefficients {
	return handles(design.ButterworthLP(cs.HighCutFreq, cs.HighCutSlope.Order(), sampleRate))
}

func peakCoefficients(cs ChainSettings, sampleRate float64) biquad.Coefficients {
	return design.Peak(cs.PeakFreq, cs.PeakGainDB, cs.PeakQuality, sampleRate)
}

// stabilizeSection replaces a section with a pole on or outside the unit
// circle by the identity passthrough.
func stabilizeSection(c *biquad.Coefficients) {
	if !c.IsStable() {
		*c = biquad.Coefficients{B0: 1}
	}
}

func stabilize(coeffs []biquad.Coefficients) {
	for i := range coeffs {
		stabilizeSection(&coeffs[i])
	}
}

func handles(coeffs []biquad.Coefficients) []*biquad.Coefficients {
	stabilize(coeffs)
	out := make([]*biquad.Coefficients, len(coeffs))
	for i := range coeffs {
		out[i] = &coeffs[i]
	}
	return out
}

// coefficientSet is one arena slot holding every coefficient of a chain.
// Handles point into the slot itself, so filling it never allocates.
type coefficientSet struct {
	peak    biquad.Coefficients
	lowCut  [MaxCutSections]biquad.Coefficients
	highCut [MaxCutSections]biquad.Coefficients

	lowCutHandles  [MaxCutSections]*biquad.Coefficients
	highCutHandles [MaxCutSections]*biquad.Coefficients
}

func (s *coefficientSet) bind() {
	for i := range s.lowCut {
		s.lowCutHandles[i] = &s.lowCut[i]
		s.highCutHandles[i] = &s.highCut[i]
	}
}

// fill designs every section for cs into the slot and returns the low-cut
// and high-cut handle slices.
func (s *coefficientSet) fill(cs ChainSettings, sampleRate float64) (low, high []*biquad.Coefficients) {
	s.peak = peakCoefficients(cs, sampleRate)
	nLow := design.ButterworthHPInto(s.lowCut[:], cs.LowCutFreq, cs.LowCutSlope.Order(), sampleRate)
	nHigh := design.ButterworthLPInto(s.highCut[:], cs.HighCutFreq, cs.HighCutSlope.Order(), sampleRate)
	stabilizeSection(&s.peak)
	stabilize(s.lowCut[:nLow])
	stabilize(s.highCut[:nHigh])
	return s.lowCutHandles[:nLow], s.highCutHandles[:nHigh]
}
