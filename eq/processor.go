package eq

import (
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/cwbudde/simple-eq/dsp/analyzer"
	"github.com/cwbudde/simple-eq/dsp/core"
	"github.com/cwbudde/simple-eq/internal/assert"
)

// DefaultAnalyzerBlockSize is the collector block size, matching the
// analyzer's 2048-point FFT.
const DefaultAnalyzerBlockSize = 2048

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger used for setup and state events.
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithStore shares an existing parameter store.
func WithStore(s *Store) Option {
	return func(p *Processor) {
		if s != nil {
			p.store = s
		}
	}
}

// WithAnalyzerBlockSize overrides the collector block size.
func WithAnalyzerBlockSize(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.analyzerBlockSize = n
		}
	}
}

// Processor is the stereo EQ. ProcessBlock runs on the audio thread and
// neither allocates nor locks; parameters are written through the Store
// from any goroutine and picked up at the start of the next block.
type Processor struct {
	logger            *slog.Logger
	store             *Store
	analyzerBlockSize int

	cfg   core.ProcessorConfig
	left  *MonoChain
	right *MonoChain

	leftCollector  *analyzer.ChannelCollector
	rightCollector *analyzer.ChannelCollector

	// Audio-thread coefficient slots. The slot not referenced by the
	// chains is redesigned each block and then swapped in.
	arena  [2]coefficientSet
	active int

	prepared atomic.Bool
}

// NewProcessor returns an unprepared processor with a fresh store unless
// WithStore is given.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		logger:            slog.Default(),
		analyzerBlockSize: DefaultAnalyzerBlockSize,
		cfg:               core.DefaultProcessorConfig(),
		left:              NewMonoChain(),
		right:             NewMonoChain(),
		leftCollector:     analyzer.NewChannelCollector(analyzer.Left),
		rightCollector:    analyzer.NewChannelCollector(analyzer.Right),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.store == nil {
		p.store = NewStore()
	}
	for i := range p.arena {
		p.arena[i].bind()
	}
	return p
}

// Name returns the display name.
func (p *Processor) Name() string {
	return "Simple EQ"
}

// TailLengthSeconds reports no tail.
func (p *Processor) TailLengthSeconds() float64 {
	return 0
}

// Prepare resets both chains, sizes the collectors and designs the filters
// for sampleRate. It must not run concurrently with ProcessBlock.
func (p *Processor) Prepare(sampleRate float64, maxBlockSize int) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("eq: prepare %v Hz: %w", sampleRate, ErrInvalidSampleRate)
	}

	p.cfg = core.ApplyProcessorOptions(
		core.WithSampleRate(sampleRate),
		core.WithBlockSize(maxBlockSize),
	)
	p.left.Reset()
	p.right.Reset()
	p.leftCollector.Prepare(p.analyzerBlockSize)
	p.rightCollector.Prepare(p.analyzerBlockSize)
	p.UpdateFilters()
	p.prepared.Store(true)

	p.logger.Info("prepared",
		"sample_rate", p.cfg.SampleRate,
		"max_block", p.cfg.BlockSize,
		"analyzer_block", p.analyzerBlockSize)
	return nil
}

// Prepared reports whether Prepare has succeeded.
func (p *Processor) Prepared() bool {
	return p.prepared.Load()
}

// ProcessBlock filters channels in place. Channel 0 runs through the left
// chain and channel 1 through the right; further channels are zeroed. The
// filtered samples are then fed to the analyzer collectors.
func (p *Processor) ProcessBlock(channels [][]float64) {
	if !assert.That(p.prepared.Load(), "ProcessBlock before Prepare") {
		return
	}

	for ch := 2; ch < len(channels); ch++ {
		clear(channels[ch])
	}

	p.updateFiltersInPlace()

	if len(channels) > 0 {
		p.left.Process(channels[0])
	}
	if len(channels) > 1 {
		p.right.Process(channels[1])
	}

	p.leftCollector.UpdateFrom(channels)
	p.rightCollector.UpdateFrom(channels)
}

// UpdateFilters redesigns both chains from the current parameters using
// freshly allocated coefficients. It is safe from any goroutine.
func (p *Processor) UpdateFilters() {
	cs := GetChainSettings(p.store)
	sr := p.cfg.SampleRate

	peak := MakePeakFilter(cs, sr)
	low := MakeLowCutFilter(cs, sr)
	high := MakeHighCutFilter(cs, sr)

	p.left.apply(cs, peak, low, high)
	p.right.apply(cs, peak, low, high)
}

// updateFiltersInPlace is UpdateFilters for the audio thread. It designs
// into the idle arena slot and so never allocates.
func (p *Processor) updateFiltersInPlace() {
	cs := GetChainSettings(p.store)

	next := 1 - p.active
	set := &p.arena[next]
	low, high := set.fill(cs, p.cfg.SampleRate)

	p.left.apply(cs, &set.peak, low, high)
	p.right.apply(cs, &set.peak, low, high)
	p.active = next
}

// SampleRate returns the rate set by Prepare.
func (p *Processor) SampleRate() float64 {
	return p.cfg.SampleRate
}

// Store returns the parameter store.
func (p *Processor) Store() *Store {
	return p.store
}

// LeftCollector returns the post-EQ collector of channel 0.
func (p *Processor) LeftCollector() *analyzer.ChannelCollector {
	return p.leftCollector
}

// RightCollector returns the post-EQ collector of channel 1.
func (p *Processor) RightCollector() *analyzer.ChannelCollector {
	return p.rightCollector
}

// LeftChain returns the chain of channel 0. Its coefficients are rewritten
// in place by ProcessBlock, so it must not be read from another goroutine
// while audio is running. ResponseCurve keeps its own chain for display.
func (p *Processor) LeftChain() *MonoChain {
	return p.left
}

// RightChain returns the chain of channel 1. The same restriction as
// LeftChain applies.
func (p *Processor) RightChain() *MonoChain {
	return p.right
}

// Logger returns the processor's logger.
func (p *Processor) Logger() *slog.Logger {
	return p.logger
}
