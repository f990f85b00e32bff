package eq

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cwbudde/simple-eq/dsp/analyzer"
	"github.com/cwbudde/simple-eq/dsp/core"
)

// Response curve display constants.
const (
	// CurveRangeDB is the gain mapped onto the top and bottom edges.
	CurveRangeDB = 24.0
	// MagnitudeFloorDB is the lowest level Magnitudes reports.
	MagnitudeFloorDB = -100.0
	// DefaultRefreshRate is the Run tick rate in Hz.
	DefaultRefreshRate = 60
)

// GridFrequencies are the frequencies of the vertical grid lines.
var GridFrequencies = []float64{20, 50, 100, 200, 500, 1000, 2000, 5000, 10000, 20000}

// GridGains are the levels of the horizontal grid lines in dB.
var GridGains = []float64{-24, -12, 0, 12, 24}

// ResponseCurve is the display-side consumer. It keeps a private chain
// mirroring the parameters to draw the frequency response, and drains the
// processor's collectors into analyzer paths.
//
// A store listener raises a changed flag from whichever goroutine sets a
// parameter. Every other method runs on a single consumer goroutine.
type ResponseCurve struct {
	proc   *Processor
	logger *slog.Logger

	chain   *MonoChain
	changed atomic.Bool
	handle  int

	left  *analyzer.PathProducer
	right *analyzer.PathProducer
}

// NewResponseCurve subscribes to p's parameters and builds the response
// chain from their current values. p must be prepared, since the chain is
// designed at its sample rate.
func NewResponseCurve(p *Processor) (*ResponseCurve, error) {
	if !p.Prepared() {
		return nil, fmt.Errorf("eq: response curve: %w", ErrNotPrepared)
	}
	left, err := analyzer.NewPathProducer(p.LeftCollector())
	if err != nil {
		return nil, fmt.Errorf("eq: response curve: %w", err)
	}
	right, err := analyzer.NewPathProducer(p.RightCollector())
	if err != nil {
		return nil, fmt.Errorf("eq: response curve: %w", err)
	}

	rc := &ResponseCurve{
		proc:   p,
		logger: p.Logger(),
		chain:  NewMonoChain(),
		left:   left,
		right:  right,
	}
	rc.handle = p.Store().AddListener(func(ParamID, float64) {
		rc.changed.Store(true)
	})
	rc.rebuild()
	return rc, nil
}

// Close unsubscribes from the parameter store.
func (rc *ResponseCurve) Close() {
	rc.proc.Store().RemoveListener(rc.handle)
}

// Changed reports whether a parameter changed since the last rebuild.
func (rc *ResponseCurve) Changed() bool {
	return rc.changed.Load()
}

// Tick refreshes the analyzer paths when the analyzer is enabled, then
// rebuilds the response chain if any parameter changed. It reports
// whether the chain was rebuilt.
func (rc *ResponseCurve) Tick(bounds analyzer.Rect) bool {
	if rc.proc.Store().Bool(AnalyzerEnabled) {
		sr := rc.proc.SampleRate()
		rc.left.Process(bounds, sr)
		rc.right.Process(bounds, sr)
	}

	if !rc.changed.CompareAndSwap(true, false) {
		return false
	}
	rc.logger.Debug("params changed")
	rc.rebuild()
	return true
}

func (rc *ResponseCurve) rebuild() {
	rc.chain.Update(GetChainSettings(rc.proc.Store()), rc.proc.SampleRate())
}

// Chain returns the response chain.
func (rc *ResponseCurve) Chain() *MonoChain {
	return rc.chain
}

// MagnitudeForFrequency returns the net linear gain of the EQ at freq.
func (rc *ResponseCurve) MagnitudeForFrequency(freq float64) float64 {
	return rc.chain.MagnitudeForFrequency(freq, rc.proc.SampleRate())
}

// Magnitudes samples the response in dB at width log-spaced frequencies
// from 20 Hz to 20 kHz, one per pixel column.
func (rc *ResponseCurve) Magnitudes(width int) []float64 {
	if width <= 0 {
		return nil
	}
	out := make([]float64, width)
	for i := range out {
		freq := core.MapToLog10(float64(i)/float64(width), analyzer.MinFrequency, analyzer.MaxFrequency)
		out[i] = core.GainToDecibels(rc.MagnitudeForFrequency(freq), MagnitudeFloorDB)
	}
	return out
}

// CurvePath returns the response polyline for bounds with ±CurveRangeDB
// mapped onto the bottom and top edges.
func (rc *ResponseCurve) CurvePath(bounds analyzer.Rect) analyzer.Path {
	mags := rc.Magnitudes(int(bounds.Width))
	var p analyzer.Path
	for i, db := range mags {
		x := bounds.X + float64(i)
		y := core.MapRange(db, -CurveRangeDB, CurveRangeDB, bounds.Bottom(), bounds.Y)
		if i == 0 {
			p.MoveTo(x, y)
			continue
		}
		p.LineTo(x, y)
	}
	return p
}

// LeftPath returns the newest analyzer path of channel 0.
func (rc *ResponseCurve) LeftPath() analyzer.Path {
	return rc.left.Path()
}

// RightPath returns the newest analyzer path of channel 1.
func (rc *ResponseCurve) RightPath() analyzer.Path {
	return rc.right.Path()
}

// Run calls Tick at hz (DefaultRefreshRate when hz <= 0) with the bounds
// returned by boundsFn until ctx is done. onTick, if not nil, runs after
// each tick on the same goroutine.
func (rc *ResponseCurve) Run(ctx context.Context, hz int, boundsFn func() analyzer.Rect, onTick func(rebuilt bool)) error {
	if hz <= 0 {
		hz = DefaultRefreshRate
	}
	ticker := time.NewTicker(time.Second / time.Duration(hz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rebuilt := rc.Tick(boundsFn())
			if onTick != nil {
				onTick(rebuilt)
			}
		}
	}
}
