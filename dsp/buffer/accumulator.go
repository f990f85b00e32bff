package buffer

// Accumulator fills a fixed-size block one sample at a time and hands every
// completed block to a sink. The write cursor restarts at 0 after each
// delivery.
type Accumulator struct {
	block []float64
	pos   int
}

// NewAccumulator returns an accumulator producing blocks of size samples.
func NewAccumulator(size int) *Accumulator {
	a := &Accumulator{}
	a.Reset(size)
	return a
}

// Reset resizes the block, zeroes it and rewinds the cursor.
func (a *Accumulator) Reset(size int) {
	if size < 0 {
		size = 0
	}
	if size <= cap(a.block) {
		a.block = a.block[:size]
	} else {
		a.block = make([]float64, size)
	}
	clear(a.block)
	a.pos = 0
}

// Size returns the block size.
func (a *Accumulator) Size() int {
	return len(a.block)
}

// Pending returns how many samples of the current block have been written.
func (a *Accumulator) Pending() int {
	return a.pos
}

// Write appends samples and calls sink for every block that fills up. The
// slice passed to sink is only valid during the call.
func (a *Accumulator) Write(samples []float64, sink func(block []float64)) {
	if len(a.block) == 0 {
		return
	}
	for len(samples) > 0 {
		n := copy(a.block[a.pos:], samples)
		a.pos += n
		samples = samples[n:]
		if a.pos == len(a.block) {
			sink(a.block)
			a.pos = 0
		}
	}
}
