package biquad

import (
	"sync/atomic"

	"github.com/cwbudde/simple-eq/dsp/core"
)

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Identity returns a unity passthrough coefficient set.
func Identity() *Coefficients {
	return &Coefficients{B0: 1}
}

var identity = Identity()

// Section is a single bypassable biquad with its own delay line.
//
// The coefficient handle may be replaced from any goroutine. Processing
// and Reset must stay on one goroutine.
type Section struct {
	coeffs   atomic.Pointer[Coefficients]
	bypassed atomic.Bool

	d0, d1 float64
}

// NewSection returns a Section sharing the given coefficient handle. A nil
// handle selects the identity passthrough.
func NewSection(c *Coefficients) *Section {
	s := &Section{}
	s.SetCoefficients(c)
	return s
}

// SetCoefficients replaces the coefficient handle. The previous set is not
// modified, so other sections sharing it are unaffected. The delay line is
// kept to avoid discontinuities.
func (s *Section) SetCoefficients(c *Coefficients) {
	if c == nil {
		c = identity
	}
	s.coeffs.Store(c)
}

// Coefficients returns the current handle. Callers must treat it as
// read-only.
func (s *Section) Coefficients() *Coefficients {
	c := s.coeffs.Load()
	if c == nil {
		return identity
	}
	return c
}

// SetBypassed toggles the bypass flag.
func (s *Section) SetBypassed(b bool) {
	s.bypassed.Store(b)
}

// IsBypassed reports whether the section passes audio unmodified.
func (s *Section) IsBypassed() bool {
	return s.bypassed.Load()
}

// ProcessSample filters one input sample and returns the output. A bypassed
// section returns x and leaves its state untouched.
func (s *Section) ProcessSample(x float64) float64 {
	if s.bypassed.Load() {
		return x
	}
	c := s.Coefficients()

	y := c.B0*x + s.d0
	s.d0 = core.FlushDenormals(c.B1*x - c.A1*y + s.d1)
	s.d1 = core.FlushDenormals(c.B2*x - c.A2*y)

	return y
}

// ProcessBlock filters a block of samples in-place. The coefficient handle
// is loaded once per block. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	if s.bypassed.Load() || len(buf) == 0 {
		return
	}
	c := s.Coefficients()

	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2
	d0, d1 := s.d0, s.d1

	i := 0
	n := len(buf)
	for ; i+1 < n; i += 2 {
		x0 := buf[i]
		y0 := b0*x0 + d0
		d0n := b1*x0 - a1*y0 + d1
		d1n := b2*x0 - a2*y0

		x1 := buf[i+1]
		y1 := b0*x1 + d0n
		d0 = b1*x1 - a1*y1 + d1n
		d1 = b2*x1 - a2*y1

		buf[i] = y0
		buf[i+1] = y1
	}

	if i < n {
		x := buf[i]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	s.d0, s.d1 = core.FlushDenormals(d0), core.FlushDenormals(d1)
}

// Reset clears the delay line to zero.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// State returns the current delay-line state [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// SetState restores a previously saved delay-line state.
func (s *Section) SetState(state [2]float64) {
	s.d0 = state[0]
	s.d1 = state[1]
}
