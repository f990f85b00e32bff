package eq

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/simple-eq/dsp/core"
)

// ParamID indexes a parameter of the EQ layout.
type ParamID int

const (
	LowCutFreq ParamID = iota
	HighCutFreq
	PeakFreq
	PeakGain
	PeakQuality
	LowCutSlope
	HighCutSlope
	LowCutBypassed
	PeakBypassed
	HighCutBypassed
	AnalyzerEnabled

	numParams
)

// Kind tells how a parameter's value is interpreted.
type Kind int

const (
	KindFloat Kind = iota
	KindChoice
	KindBool
)

// Range maps a parameter between its natural range and [0, 1]. Skew < 1
// spends more of the normalised range on the low end, which suits
// frequencies.
type Range struct {
	Start, End float64
	// Interval is the snapping step; 0 means continuous.
	Interval float64
	Skew     float64
}

// Clamp limits v to [Start, End].
func (r Range) Clamp(v float64) float64 {
	return core.Clamp(v, r.Start, r.End)
}

// Snap rounds v to the nearest interval step and clamps it.
func (r Range) Snap(v float64) float64 {
	if r.Interval > 0 {
		v = r.Start + r.Interval*math.Floor((v-r.Start)/r.Interval+0.5)
	}
	return r.Clamp(v)
}

// ToNormalised maps v onto [0, 1] honouring the skew.
func (r Range) ToNormalised(v float64) float64 {
	p := core.Clamp((v-r.Start)/(r.End-r.Start), 0, 1)
	if r.Skew == 1 || r.Skew <= 0 || p == 0 {
		return p
	}
	return math.Pow(p, r.Skew)
}

// FromNormalised maps p in [0, 1] back onto the range. The result is not
// snapped.
func (r Range) FromNormalised(p float64) float64 {
	p = core.Clamp(p, 0, 1)
	if r.Skew != 1 && r.Skew > 0 && p > 0 {
		p = math.Exp(math.Log(p) / r.Skew)
	}
	return r.Start + (r.End-r.Start)*p
}

// Parameter describes one entry of the layout.
type Parameter struct {
	ID      ParamID
	Name    string
	Kind    Kind
	Range   Range
	Default float64
	Choices []string
}

var frequencyRange = Range{Start: 20, End: 20000, Interval: 1, Skew: 0.25}

// SlopeChoices are the labels of the cut slope choice parameters.
var SlopeChoices = []string{"12 dB/Oct", "24 dB/Oct", "36 dB/Oct", "48 dB/Oct"}

var layout = [numParams]Parameter{
	LowCutFreq:      {Name: "LowCut Freq", Kind: KindFloat, Range: frequencyRange, Default: 20},
	HighCutFreq:     {Name: "HighCut Freq", Kind: KindFloat, Range: frequencyRange, Default: 20000},
	PeakFreq:        {Name: "Peak Freq", Kind: KindFloat, Range: frequencyRange, Default: 750},
	PeakGain:        {Name: "Peak Gain", Kind: KindFloat, Range: Range{Start: -24, End: 24, Interval: 0.5, Skew: 1}, Default: 0},
	PeakQuality:     {Name: "Peak Quality", Kind: KindFloat, Range: Range{Start: 0.1, End: 10, Interval: 0.05, Skew: 1}, Default: 1},
	LowCutSlope:     {Name: "LowCut Slope", Kind: KindChoice, Range: choiceRange(len(SlopeChoices)), Choices: SlopeChoices},
	HighCutSlope:    {Name: "HighCut Slope", Kind: KindChoice, Range: choiceRange(len(SlopeChoices)), Choices: SlopeChoices},
	LowCutBypassed:  {Name: "LowCut Bypassed", Kind: KindBool, Range: boolRange},
	PeakBypassed:    {Name: "Peak Bypassed", Kind: KindBool, Range: boolRange},
	HighCutBypassed: {Name: "HighCut Bypassed", Kind: KindBool, Range: boolRange},
	AnalyzerEnabled: {Name: "Analyzer Enabled", Kind: KindBool, Range: boolRange, Default: 1},
}

var boolRange = Range{Start: 0, End: 1, Interval: 1, Skew: 1}

func choiceRange(n int) Range {
	return Range{Start: 0, End: float64(n - 1), Interval: 1, Skew: 1}
}

var paramsByName = func() map[string]ParamID {
	m := make(map[string]ParamID, numParams)
	for i := range layout {
		m[layout[i].Name] = ParamID(i)
	}
	return m
}()

func init() {
	for i := range layout {
		layout[i].ID = ParamID(i)
	}
}

// String returns the parameter name.
func (id ParamID) String() string {
	if id < 0 || id >= numParams {
		return "unknown"
	}
	return layout[id].Name
}

// Layout returns the parameter descriptions in ParamID order.
func Layout() []Parameter {
	out := make([]Parameter, numParams)
	copy(out, layout[:])
	return out
}

// Lookup resolves a parameter by name.
func Lookup(name string) (ParamID, bool) {
	id, ok := paramsByName[name]
	return id, ok
}

// Listener is notified with the parameter index and its new value. It may
// be called from any goroutine that sets a parameter and must not block.
type Listener func(id ParamID, value float64)

// Store holds the current parameter values. Reads are single atomic loads
// and safe on the audio thread. Writes snap the value to its range and
// notify listeners on the writing goroutine.
type Store struct {
	values [numParams]atomic.Uint64

	mu        sync.RWMutex
	listeners map[int]Listener
	nextID    int
}

// NewStore returns a store holding every parameter's default.
func NewStore() *Store {
	s := &Store{listeners: make(map[int]Listener)}
	for i := range layout {
		s.values[i].Store(math.Float64bits(layout[i].Default))
	}
	return s
}

// Value returns the current value of id.
func (s *Store) Value(id ParamID) float64 {
	return math.Float64frombits(s.values[id].Load())
}

// Bool returns whether a bool parameter is on.
func (s *Store) Bool(id ParamID) bool {
	return s.Value(id) >= 0.5
}

// Set stores v snapped to the parameter's range and returns the stored
// value. Listeners are notified only when the value changes.
func (s *Store) Set(id ParamID, v float64) float64 {
	if math.IsNaN(v) {
		return s.Value(id)
	}
	v = layout[id].Range.Snap(v)
	old := math.Float64frombits(s.values[id].Swap(math.Float64bits(v)))
	if old != v {
		s.notify(id, v)
	}
	return v
}

// SetBool sets a bool parameter.
func (s *Store) SetBool(id ParamID, on bool) {
	v := 0.0
	if on {
		v = 1
	}
	s.Set(id, v)
}

// SetNormalised sets id from a [0, 1] control position.
func (s *Store) SetNormalised(id ParamID, p float64) float64 {
	return s.Set(id, layout[id].Range.FromNormalised(p))
}

// Normalised returns the [0, 1] control position of id.
func (s *Store) Normalised(id ParamID) float64 {
	return layout[id].Range.ToNormalised(s.Value(id))
}

// Reset restores every default.
func (s *Store) Reset() {
	for i := range layout {
		s.Set(ParamID(i), layout[i].Default)
	}
}

// Values returns a copy of all values in ParamID order.
func (s *Store) Values() []float64 {
	out := make([]float64, numParams)
	for i := range out {
		out[i] = s.Value(ParamID(i))
	}
	return out
}

// AddListener registers fn and returns a handle for RemoveListener.
func (s *Store) AddListener(fn Listener) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.listeners[s.nextID] = fn
	return s.nextID
}

// RemoveListener unregisters the listener with the given handle.
func (s *Store) RemoveListener(handle int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listeners, handle)
}

func (s *Store) notify(id ParamID, v float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, fn := range s.listeners {
		fn(id, v)
	}
}

// Parameters returns the layout the store was built from.
func (s *Store) Parameters() []Parameter {
	return Layout()
}
