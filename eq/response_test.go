package eq

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/cwbudde/simple-eq/dsp/analyzer"
	"github.com/cwbudde/simple-eq/internal/testutil"
)

func newTestCurve(t *testing.T) (*Processor, *ResponseCurve) {
	t.Helper()
	p := newTestProcessor(t)
	rc, err := NewResponseCurve(p)
	if err != nil {
		t.Fatalf("NewResponseCurve: %v", err)
	}
	t.Cleanup(rc.Close)
	return p, rc
}

func TestResponseCurveChangedFlag(t *testing.T) {
	p, rc := newTestCurve(t)
	bounds := analyzer.Rect{Width: 200, Height: 100}

	if rc.Changed() {
		t.Fatal("fresh curve reports a change")
	}
	if rc.Tick(bounds) {
		t.Fatal("Tick rebuilt without a change")
	}

	p.Store().Set(PeakGain, 12)
	p.Store().Set(PeakFreq, 1000)
	if !rc.Changed() {
		t.Fatal("parameter change did not raise the flag")
	}
	if !rc.Tick(bounds) {
		t.Fatal("Tick did not rebuild after a change")
	}
	if rc.Changed() || rc.Tick(bounds) {
		t.Fatal("flag not cleared by the rebuild")
	}

	db := 20 * math.Log10(rc.MagnitudeForFrequency(1000))
	if math.Abs(db-12) > 0.05 {
		t.Fatalf("response at 1 kHz = %v dB, want ~12", db)
	}
}

func TestResponseCurveCloseUnsubscribes(t *testing.T) {
	p, rc := newTestCurve(t)
	rc.Close()
	p.Store().Set(PeakGain, 3)
	if rc.Changed() {
		t.Fatal("closed curve still listens")
	}
}

func TestResponseCurveMagnitudes(t *testing.T) {
	p, rc := newTestCurve(t)
	if rc.Magnitudes(0) != nil {
		t.Fatal("Magnitudes(0) should be nil")
	}

	p.Store().Set(LowCutFreq, 1000)
	p.Store().Set(LowCutSlope, 3)
	p.Store().SetBool(HighCutBypassed, true)
	rc.Tick(analyzer.Rect{})

	mags := rc.Magnitudes(300)
	if len(mags) != 300 {
		t.Fatalf("len = %d, want 300", len(mags))
	}
	testutil.RequireFinite(t, mags)
	if mags[0] > -90 || mags[0] < MagnitudeFloorDB {
		t.Fatalf("20 Hz through a 48 dB/oct low cut = %v dB", mags[0])
	}
	if math.Abs(mags[299]) > 0.1 {
		t.Fatalf("top column = %v dB, want ~0", mags[299])
	}
	for i := 1; i < 150; i++ {
		if mags[i] < mags[i-1] {
			t.Fatalf("low-cut response not rising at column %d", i)
		}
	}
}

func TestResponseCurvePath(t *testing.T) {
	p, rc := newTestCurve(t)
	bounds := analyzer.Rect{X: 10, Y: 20, Width: 400, Height: 200}

	flat := rc.CurvePath(bounds)
	if flat.Len() != 400 {
		t.Fatalf("Len() = %d, want 400", flat.Len())
	}
	mid := bounds.Y + bounds.Height/2
	for i := 100; i < 300; i++ {
		pt := flat.Points[i]
		if pt.X != bounds.X+float64(i) {
			t.Fatalf("point %d x = %v", i, pt.X)
		}
		if math.Abs(pt.Y-mid) > 0.5 {
			t.Fatalf("point %d y = %v, want ~%v", i, pt.Y, mid)
		}
	}

	p.Store().Set(PeakGain, 24)
	rc.Tick(bounds)
	boosted := rc.CurvePath(bounds)
	top := bounds.Bottom()
	for _, pt := range boosted.Points {
		top = math.Min(top, pt.Y)
	}
	if math.Abs(top-bounds.Y) > 1 {
		t.Fatalf("+24 dB peak reaches y = %v, want ~%v", top, bounds.Y)
	}
}

func TestResponseCurveAnalyzerPaths(t *testing.T) {
	p, rc := newTestCurve(t)
	bounds := analyzer.Rect{Width: 500, Height: 200}

	signal := testutil.Sine(1000, 48000, 0.5, 2*DefaultAnalyzerBlockSize)
	for _, block := range testutil.Blocks(signal, 512) {
		right := append([]float64(nil), block...)
		p.ProcessBlock([][]float64{block, right})
	}
	rc.Tick(bounds)
	if rc.LeftPath().Empty() || rc.RightPath().Empty() {
		t.Fatal("analyzer paths not produced")
	}

	p.Store().SetBool(AnalyzerEnabled, false)
	for _, block := range testutil.Blocks(testutil.Sine(1000, 48000, 0.5, DefaultAnalyzerBlockSize), 512) {
		p.ProcessBlock([][]float64{block})
	}
	rc.Tick(bounds)
	if p.LeftCollector().CompleteBuffersAvailable() != 1 {
		t.Fatal("disabled analyzer drained the collector")
	}
}

func TestResponseCurveRun(t *testing.T) {
	p, rc := newTestCurve(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	rebuilt := make(chan struct{}, 1)
	p.Store().Set(PeakGain, 6)

	done := make(chan error, 1)
	go func() {
		done <- rc.Run(ctx, 200, func() analyzer.Rect {
			return analyzer.Rect{Width: 100, Height: 50}
		}, func(r bool) {
			if r {
				select {
				case rebuilt <- struct{}{}:
				default:
				}
			}
		})
	}()

	select {
	case <-rebuilt:
	case <-ctx.Done():
		t.Fatal("Run never rebuilt the chain")
	}
	cancel()
	if err := <-done; err == nil {
		t.Fatal("Run returned nil after cancellation")
	}
}

func TestGridLines(t *testing.T) {
	if GridFrequencies[0] != analyzer.MinFrequency || GridFrequencies[len(GridFrequencies)-1] != analyzer.MaxFrequency {
		t.Fatal("frequency grid should span the analyzer axis")
	}
	if GridGains[0] != -CurveRangeDB || GridGains[len(GridGains)-1] != CurveRangeDB {
		t.Fatal("gain grid should span the curve range")
	}
}

func TestNewResponseCurveRequiresPrepare(t *testing.T) {
	p := NewProcessor(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	rc, err := NewResponseCurve(p)
	if !errors.Is(err, ErrNotPrepared) {
		t.Fatalf("err = %v, want ErrNotPrepared", err)
	}
	if rc != nil {
		t.Fatal("got a curve for an unprepared processor")
	}
	if got := len(p.Store().listeners); got != 0 {
		t.Fatalf("listeners = %d, want 0", got)
	}
}

func TestResponseCurveChainIsPrivate(t *testing.T) {
	p, rc := newTestCurve(t)
	if rc.Chain() == p.LeftChain() || rc.Chain() == p.RightChain() {
		t.Fatal("response curve shares a processing chain")
	}
	p.Store().Set(PeakGain, 12)
	rc.Tick(analyzer.Rect{Width: 100, Height: 100})
	want := p.LeftChain().MagnitudeForFrequency(750, p.SampleRate())
	if got := rc.MagnitudeForFrequency(750); got == want {
		t.Fatalf("private chain gain %v matches the unprocessed processing chain", got)
	}
	p.ProcessBlock([][]float64{make([]float64, 64), make([]float64, 64)})
	want = p.LeftChain().MagnitudeForFrequency(750, p.SampleRate())
	if got := rc.MagnitudeForFrequency(750); math.Abs(got-want) > 1e-9 {
		t.Fatalf("gain = %v, want %v", got, want)
	}
}
