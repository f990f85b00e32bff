package eq

import "fmt"

// Slope is the roll-off of a cut stage.
type Slope int

const (
	Slope12 Slope = iota
	Slope24
	Slope36
	Slope48
)

// Sections returns the number of active second-order sections.
func (s Slope) Sections() int {
	return int(s) + 1
}

// Order returns the Butterworth order realising the slope.
func (s Slope) Order() int {
	return 2 * s.Sections()
}

// DBPerOctave returns the asymptotic roll-off.
func (s Slope) DBPerOctave() int {
	return 12 * s.Sections()
}

func (s Slope) String() string {
	return fmt.Sprintf("%d dB/Oct", s.DBPerOctave())
}

func slopeFromValue(v float64) Slope {
	s := Slope(int(v))
	if s < Slope12 {
		return Slope12
	}
	if s > Slope48 {
		return Slope48
	}
	return s
}

// ChainSettings is an immutable snapshot of every parameter that shapes the
// filter chain.
type ChainSettings struct {
	PeakFreq        float64
	PeakGainDB      float64
	PeakQuality     float64
	LowCutFreq      float64
	HighCutFreq     float64
	LowCutSlope     Slope
	HighCutSlope    Slope
	LowCutBypassed  bool
	PeakBypassed    bool
	HighCutBypassed bool
}

// GetChainSettings reads the current parameter values into a new snapshot.
// It only performs atomic loads and may run on the audio thread.
func GetChainSettings(s *Store) ChainSettings {
	return ChainSettings{
		PeakFreq:        s.Value(PeakFreq),
		PeakGainDB:      s.Value(PeakGain),
		PeakQuality:     s.Value(PeakQuality),
		LowCutFreq:      s.Value(LowCutFreq),
		HighCutFreq:     s.Value(HighCutFreq),
		LowCutSlope:     slopeFromValue(s.Value(LowCutSlope)),
		HighCutSlope:    slopeFromValue(s.Value(HighCutSlope)),
		LowCutBypassed:  s.Bool(LowCutBypassed),
		PeakBypassed:    s.Bool(PeakBypassed),
		HighCutBypassed: s.Bool(HighCutBypassed),
	}
}
