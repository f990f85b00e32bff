package eq

import (
	"sync/atomic"

	"github.com/cwbudde/simple-eq/dsp/filter/biquad"
)

// ChainPosition names a stage of the mono chain.
type ChainPosition int

const (
	LowCut ChainPosition = iota
	Peak
	HighCut

	numPositions
)

func (p ChainPosition) String() string {
	switch p {
	case LowCut:
		return "LowCut"
	case Peak:
		return "Peak"
	case HighCut:
		return "HighCut"
	default:
		return "unknown"
	}
}

// MonoChain is the per-channel filter chain: a four-section low cut, one
// peak section and a four-section high cut, processed in that order. Each
// stage can be bypassed as a whole.
type MonoChain struct {
	stages   [numPositions]*biquad.Chain
	bypassed [numPositions]atomic.Bool
}

// NewMonoChain returns a chain of identity sections.
func NewMonoChain() *MonoChain {
	return &MonoChain{
		stages: [numPositions]*biquad.Chain{
			LowCut:  biquad.NewChain(MaxCutSections),
			Peak:    biquad.NewChain(1),
			HighCut: biquad.NewChain(MaxCutSections),
		},
	}
}

// Stage returns the cascade at pos.
func (m *MonoChain) Stage(pos ChainPosition) *biquad.Chain {
	return m.stages[pos]
}

// SetStageBypassed toggles a whole stage.
func (m *MonoChain) SetStageBypassed(pos ChainPosition, b bool) {
	m.bypassed[pos].Store(b)
}

// IsStageBypassed reports whether pos is skipped.
func (m *MonoChain) IsStageBypassed(pos ChainPosition) bool {
	return m.bypassed[pos].Load()
}

// UpdateCutFilter bypasses every section of cut, then installs the first
// slope+1 handles of coeffs and enables those sections.
func UpdateCutFilter(cut *biquad.Chain, coeffs []*biquad.Coefficients, slope Slope) {
	for i := 0; i < cut.NumSections(); i++ {
		cut.SetBypassed(i, true)
	}
	n := min(slope.Sections(), len(coeffs), cut.NumSections())
	for i := 0; i < n; i++ {
		cut.Section(i).SetCoefficients(coeffs[i])
		cut.SetBypassed(i, false)
	}
}

// UpdatePeak installs the peak handle.
func (m *MonoChain) UpdatePeak(c *biquad.Coefficients) {
	m.stages[Peak].Section(0).SetCoefficients(c)
}

// Update redesigns every stage from cs. It allocates fresh handles and is
// meant for non-real-time consumers.
func (m *MonoChain) Update(cs ChainSettings, sampleRate float64) {
	m.apply(cs, MakePeakFilter(cs, sampleRate), MakeLowCutFilter(cs, sampleRate), MakeHighCutFilter(cs, sampleRate))
}

func (m *MonoChain) apply(cs ChainSettings, peak *biquad.Coefficients, low, high []*biquad.Coefficients) {
	m.SetStageBypassed(LowCut, cs.LowCutBypassed)
	m.SetStageBypassed(Peak, cs.PeakBypassed)
	m.SetStageBypassed(HighCut, cs.HighCutBypassed)

	m.UpdatePeak(peak)
	UpdateCutFilter(m.stages[LowCut], low, cs.LowCutSlope)
	UpdateCutFilter(m.stages[HighCut], high, cs.HighCutSlope)
}

// Process filters buf in place through every non-bypassed stage.
func (m *MonoChain) Process(buf []float64) {
	for pos := range m.stages {
		if m.bypassed[pos].Load() {
			continue
		}
		m.stages[pos].ProcessBlock(buf)
	}
}

// ProcessSample runs a single sample through the chain.
func (m *MonoChain) ProcessSample(x float64) float64 {
	for pos := range m.stages {
		if m.bypassed[pos].Load() {
			continue
		}
		x = m.stages[pos].ProcessSample(x)
	}
	return x
}

// MagnitudeForFrequency returns the linear magnitude of the whole chain at
// freq, the product over every active section of every active stage.
func (m *MonoChain) MagnitudeForFrequency(freq, sampleRate float64) float64 {
	mag := 1.0
	for pos := range m.stages {
		if m.bypassed[pos].Load() {
			continue
		}
		mag *= m.stages[pos].Magnitude(freq, sampleRate)
	}
	return mag
}

// Reset clears the filter state of every stage.
func (m *MonoChain) Reset() {
	for _, s := range m.stages {
		s.Reset()
	}
}
