package analyzer

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/simple-eq/dsp/fifo"
	"github.com/cwbudde/simple-eq/dsp/spectrum"
	"github.com/cwbudde/simple-eq/dsp/window"
	"github.com/cwbudde/simple-eq/internal/assert"
)

// FFTOrder is log2 of the FFT size.
type FFTOrder int

const (
	Order2048 FFTOrder = 11
	Order4096 FFTOrder = 12
	Order8192 FFTOrder = 13
)

// Size returns 2^order.
func (o FFTOrder) Size() int {
	return 1 << o
}

func (o FFTOrder) valid() bool {
	return o == Order2048 || o == Order4096 || o == Order8192
}

// FFTDataGenerator turns sample blocks into decibel spectra of fftSize/2
// bins and queues them. It is driven by a single consumer goroutine; the
// spectra queue may be drained by another.
type FFTDataGenerator struct {
	order FFTOrder
	size  int

	window []float64
	plan   *algofft.Plan[complex128]

	frame []float64
	in    []complex128
	out   []complex128
	re    []float64
	im    []float64
	mags  []float64

	queue *fifo.Fifo[[]float64]
}

// NewFFTDataGenerator returns an unprepared generator. Call ChangeOrder
// before producing spectra.
func NewFFTDataGenerator() *FFTDataGenerator {
	return &FFTDataGenerator{}
}

// ChangeOrder rebuilds the window, transform plan, scratch buffers and
// spectra queue for a new FFT order. Queued spectra are discarded. It must
// not run concurrently with ProduceSpectrum or Pull.
func (g *FFTDataGenerator) ChangeOrder(order FFTOrder) error {
	if !order.valid() {
		return fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}

	size := order.Size()
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return fmt.Errorf("analyzer: init fft plan: %w", err)
	}

	bins := size / 2
	g.order = order
	g.size = size
	g.plan = plan
	g.window = window.Generate(window.TypeBlackmanHarris4Term, size, window.WithNormalise())
	g.frame = make([]float64, size)
	g.in = make([]complex128, size)
	g.out = make([]complex128, size)
	g.re = make([]float64, bins)
	g.im = make([]float64, bins)
	g.mags = make([]float64, bins)
	g.queue = fifo.New[[]float64](fifo.DefaultCapacity, fifo.CopySlice[float64])
	g.queue.Prepare(func(slot *[]float64) { *slot = make([]float64, bins) })

	return nil
}

// Order returns the current FFT order, or 0 before ChangeOrder.
func (g *FFTDataGenerator) Order() FFTOrder {
	return g.order
}

// FFTSize returns the transform length, or 0 before ChangeOrder.
func (g *FFTDataGenerator) FFTSize() int {
	return g.size
}

// ProduceSpectrum windows the first FFTSize samples of block (zero padded
// when shorter), transforms them and pushes fftSize/2 bins of normalised
// magnitude in dB, clamped at floorDB. It returns false when the generator
// is unprepared, the transform fails or the queue is full.
func (g *FFTDataGenerator) ProduceSpectrum(block []float64, floorDB float64) bool {
	if !assert.That(g.plan != nil, "fft generator used before ChangeOrder") {
		return false
	}

	n := copy(g.frame, block)
	clear(g.frame[n:])

	if err := window.ApplyCoefficientsInPlace(g.frame, g.window); err != nil {
		return false
	}
	for i, v := range g.frame {
		g.in[i] = complex(v, 0)
	}
	if err := g.plan.Forward(g.out, g.in); err != nil {
		return false
	}

	spectrum.SplitComplex(g.re, g.im, g.out)
	spectrum.MagnitudeFromParts(g.mags, g.re, g.im)
	spectrum.Scale(g.mags, 1/float64(len(g.mags)))
	spectrum.GainToDecibels(g.mags, floorDB)

	return g.queue.Push(g.mags)
}

// NumAvailable returns the number of queued spectra.
func (g *FFTDataGenerator) NumAvailable() int {
	if g.queue == nil {
		return 0
	}
	return g.queue.AvailableForReading()
}

// Pull copies the oldest spectrum into out.
func (g *FFTDataGenerator) Pull(out *[]float64) bool {
	if g.queue == nil {
		return false
	}
	return g.queue.Pull(out)
}
