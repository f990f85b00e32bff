package buffer

// Buffer wraps a float64 slice with reuse-friendly semantics.
// DSP functions accept raw []float64; use Samples() to bridge.
type Buffer struct {
	samples []float64
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	if length < 0 {
		length = 0
	}
	return &Buffer{samples: make([]float64, length)}
}

// Samples returns the underlying slice.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the current number of samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Resize sets the length to n, reusing existing capacity when possible.
// All samples are zeroed afterwards.
func (b *Buffer) Resize(n int) {
	if n < 0 {
		n = 0
	}
	if n <= cap(b.samples) {
		b.samples = b.samples[:n]
	} else {
		b.samples = make([]float64, n)
	}
	b.Zero()
}

// Zero sets all samples to 0.
func (b *Buffer) Zero() {
	clear(b.samples)
}

// ShiftIn slides the contents left by len(src) and copies src into the
// freed tail, so the buffer always holds the most recent Len() samples.
// When src is longer than the buffer only its last Len() samples are kept.
func (b *Buffer) ShiftIn(src []float64) {
	n := len(b.samples)
	if len(src) >= n {
		copy(b.samples, src[len(src)-n:])
		return
	}
	copy(b.samples, b.samples[len(src):])
	copy(b.samples[n-len(src):], src)
}
