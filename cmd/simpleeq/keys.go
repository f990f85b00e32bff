package main

import (
	"fmt"
	"math"

	"github.com/cwbudde/simple-eq/eq"
)

const (
	gainStep = 1.0
	// Peak frequency moves in sixth-octave steps.
	freqStep = 1.122462048309373
)

// action is what a key press asks the main loop to do beyond changing
// parameters.
type action int

const (
	actionNone action = iota
	actionQuit
	actionSave
)

// handleKey applies the parameter change bound to key.
func handleKey(key byte, s *eq.Store) action {
	switch key {
	case '1':
		toggle(s, eq.LowCutBypassed)
	case '2':
		toggle(s, eq.PeakBypassed)
	case '3':
		toggle(s, eq.HighCutBypassed)
	case 'a':
		toggle(s, eq.AnalyzerEnabled)
	case '+', '=':
		s.Set(eq.PeakGain, s.Value(eq.PeakGain)+gainStep)
	case '-', '_':
		s.Set(eq.PeakGain, s.Value(eq.PeakGain)-gainStep)
	case ']':
		s.Set(eq.PeakFreq, math.Round(s.Value(eq.PeakFreq)*freqStep))
	case '[':
		s.Set(eq.PeakFreq, math.Round(s.Value(eq.PeakFreq)/freqStep))
	case '.':
		s.Set(eq.LowCutSlope, s.Value(eq.LowCutSlope)+1)
	case ',':
		s.Set(eq.LowCutSlope, s.Value(eq.LowCutSlope)-1)
	case 'r':
		s.Reset()
	case 's':
		return actionSave
	case 'q', 3: // Ctrl-C arrives as a byte in raw mode.
		return actionQuit
	}
	return actionNone
}

func toggle(s *eq.Store, id eq.ParamID) {
	s.SetBool(id, !s.Bool(id))
}

// status is the one-line summary printed after every key.
func status(s *eq.Store) string {
	cs := eq.GetChainSettings(s)
	return fmt.Sprintf("low-cut %s %5.0f Hz %-9s | peak %s %5.0f Hz %+5.1f dB Q %.2f | high-cut %s %5.0f Hz %-9s | analyzer %s",
		onOff(!cs.LowCutBypassed), cs.LowCutFreq, cs.LowCutSlope,
		onOff(!cs.PeakBypassed), cs.PeakFreq, cs.PeakGainDB, cs.PeakQuality,
		onOff(!cs.HighCutBypassed), cs.HighCutFreq, cs.HighCutSlope,
		onOff(s.Bool(eq.AnalyzerEnabled)))
}

func onOff(on bool) string {
	if on {
		return "on "
	}
	return "off"
}

const helpText = "keys: 1/2/3 bypass stages, +/- peak gain, [/] peak freq, ,/. low-cut slope, a analyzer, r reset, s save, q quit"
