package biquad

import (
	"math"
	"math/cmplx"
)

// Response computes the complex frequency response H(e^jw) of a biquad
// at the given frequency (Hz) and sample rate (Hz).
func (c *Coefficients) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	ejw := cmplx.Exp(complex(0, -w))
	ej2w := cmplx.Exp(complex(0, -2*w))

	num := complex(c.B0, 0) + complex(c.B1, 0)*ejw + complex(c.B2, 0)*ej2w
	den := complex(1, 0) + complex(c.A1, 0)*ejw + complex(c.A2, 0)*ej2w
	return num / den
}

// MagnitudeSquared returns |H(f)|^2 using a closed-form expression.
// Near a transmission zero the closed form cancels to rounding noise, so
// small results are recomputed from the complex response.
func (c *Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	cw := 2 * math.Cos(2*math.Pi*freqHz/sampleRate)
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	num := (b0-b2)*(b0-b2) + b1*b1 + (b1*(b0+b2)+b0*b2*cw)*cw
	den := (1-a2)*(1-a2) + a1*a1 + (a1*(a2+1)+cw*a2)*cw
	m2 := num / den
	if m2 < cancellationFloor {
		m := cmplx.Abs(c.Response(freqHz, sampleRate))
		return m * m
	}
	return m2
}

// cancellationFloor is the closed-form |H|^2 below which rounding error
// dominates.
const cancellationFloor = 1e-8

// Magnitude returns the linear magnitude |H(f)|.
func (c *Coefficients) Magnitude(freqHz, sampleRate float64) float64 {
	m2 := c.MagnitudeSquared(freqHz, sampleRate)
	if m2 < cancellationFloor {
		return cmplx.Abs(c.Response(freqHz, sampleRate))
	}
	return math.Sqrt(m2)
}

// MagnitudeDB returns 20*log10(|H(f)|).
func (c *Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(c.Magnitude(freqHz, sampleRate))
}

// Magnitude returns the product of the linear magnitudes of every
// non-bypassed section. A fully bypassed chain returns 1.
func (c *Chain) Magnitude(freqHz, sampleRate float64) float64 {
	mag := 1.0
	for i := range c.sections {
		s := &c.sections[i]
		if s.IsBypassed() {
			continue
		}
		mag *= s.Coefficients().Magnitude(freqHz, sampleRate)
	}
	return mag
}

// MagnitudeDB returns the cascaded magnitude response in dB.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(c.Magnitude(freqHz, sampleRate))
}

// ImpulseResponse computes n samples of the cascade impulse response.
// The chain state is saved and restored.
func (c *Chain) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}
	saved := c.State()
	c.Reset()
	ir := make([]float64, n)
	ir[0] = c.ProcessSample(1)
	for i := 1; i < n; i++ {
		ir[i] = c.ProcessSample(0)
	}
	c.SetState(saved)
	return ir
}
