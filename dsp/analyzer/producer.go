package analyzer

import (
	"fmt"

	"github.com/cwbudde/simple-eq/dsp/buffer"
)

// FloorDB is the analyzer's lowest displayed level.
const FloorDB = -48.0

// PathProducer drains one channel's collector and keeps the most recent
// spectrum path. All methods run on the consumer goroutine.
type PathProducer struct {
	collector *ChannelCollector
	mono      *buffer.Buffer
	block     []float64
	spectrum  []float64

	fft   *FFTDataGenerator
	paths *PathGenerator

	path Path
}

// NewPathProducer returns a producer for collector using a 2048-point FFT.
// The collector should be prepared with the same block size.
func NewPathProducer(collector *ChannelCollector) (*PathProducer, error) {
	fft := NewFFTDataGenerator()
	if err := fft.ChangeOrder(Order2048); err != nil {
		return nil, fmt.Errorf("analyzer: path producer: %w", err)
	}

	size := fft.FFTSize()
	return &PathProducer{
		collector: collector,
		mono:      buffer.New(size),
		block:     make([]float64, size),
		spectrum:  make([]float64, size/2),
		fft:       fft,
		paths:     NewPathGenerator(size/2/PathResolution + 2),
	}, nil
}

// Process moves every completed block into the sliding mono buffer and
// produces a spectrum for each, turns every queued spectrum into a path
// scaled to bounds, then keeps only the newest path.
func (p *PathProducer) Process(bounds Rect, sampleRate float64) {
	for p.collector.CompleteBuffersAvailable() > 0 {
		if !p.collector.PullBuffer(&p.block) {
			break
		}
		p.mono.ShiftIn(p.block)
		p.fft.ProduceSpectrum(p.mono.Samples(), FloorDB)
	}

	fftSize := p.fft.FFTSize()
	binWidth := sampleRate / float64(fftSize)
	for p.fft.NumAvailable() > 0 {
		if !p.fft.Pull(&p.spectrum) {
			break
		}
		p.paths.GeneratePath(p.spectrum, bounds, fftSize, binWidth, FloorDB)
	}

	for p.paths.NumPathsAvailable() > 0 {
		if !p.paths.Pull(&p.path) {
			break
		}
	}
}

// Path returns the most recent path. The slice is reused by the next
// Process call.
func (p *PathProducer) Path() Path {
	return p.path
}

// Collector returns the collector this producer drains.
func (p *PathProducer) Collector() *ChannelCollector {
	return p.collector
}
