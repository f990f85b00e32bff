package analyzer

import (
	"github.com/cwbudde/simple-eq/dsp/core"
	"github.com/cwbudde/simple-eq/dsp/fifo"
)

const (
	// PathResolution is the bin stride between path points after bin 0.
	PathResolution = 2

	// MinFrequency and MaxFrequency bound the logarithmic x axis.
	MinFrequency = 20.0
	MaxFrequency = 20000.0
)

// PathGenerator converts decibel spectra into display polylines and queues
// them.
type PathGenerator struct {
	scratch Path
	queue   *fifo.Fifo[Path]
}

// NewPathGenerator returns a generator whose queue slots are preallocated
// for maxPoints points. Longer paths still work but grow their slot once.
func NewPathGenerator(maxPoints int) *PathGenerator {
	if maxPoints < 1 {
		maxPoints = 1
	}
	g := &PathGenerator{
		scratch: Path{Points: make([]Point, 0, maxPoints)},
		queue:   fifo.New[Path](fifo.DefaultCapacity, CopyPath),
	}
	g.queue.Prepare(func(slot *Path) { slot.Points = make([]Point, 0, maxPoints) })
	return g
}

// GeneratePath maps spectrum onto bounds and pushes the resulting path.
//
// Bin 0 sits at the left edge. Bins 1, 1+PathResolution, ... below
// fftSize/2 sit at x = bounds.X + MapFromLog10(bin*binWidth, 20, 20000) *
// bounds.Width. Values map linearly from [floorDB, 0] onto [bottom, top].
// Points with a non-finite coordinate are skipped. It returns false when
// the queue is full.
func (g *PathGenerator) GeneratePath(spectrum []float64, bounds Rect, fftSize int, binWidth, floorDB float64) bool {
	g.scratch.Reset()

	numBins := min(fftSize/2, len(spectrum))
	top, bottom := bounds.Y, bounds.Bottom()
	mapY := func(v float64) float64 {
		return core.MapRange(v, floorDB, 0, bottom, top)
	}

	if numBins > 0 {
		g.addPoint(bounds.X, mapY(spectrum[0]))
	}
	for bin := 1; bin < numBins; bin += PathResolution {
		freq := float64(bin) * binWidth
		x := bounds.X + core.MapFromLog10(freq, MinFrequency, MaxFrequency)*bounds.Width
		g.addPoint(x, mapY(spectrum[bin]))
	}

	return g.queue.Push(g.scratch)
}

func (g *PathGenerator) addPoint(x, y float64) {
	if !core.IsFinite(x) || !core.IsFinite(y) {
		return
	}
	g.scratch.LineTo(x, y)
}

// NumPathsAvailable returns the number of queued paths.
func (g *PathGenerator) NumPathsAvailable() int {
	return g.queue.AvailableForReading()
}

// Pull copies the oldest queued path into out.
func (g *PathGenerator) Pull(out *Path) bool {
	return g.queue.Pull(out)
}
