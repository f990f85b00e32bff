package design

import (
	"math"

	"github.com/cwbudde/simple-eq/dsp/filter/biquad"
)

// ButterworthLP designs a lowpass Butterworth cascade of the given order.
// It returns order/2 second-order sections, plus a first-order tail
// (B2=A2=0) for odd orders. The cascade is -3 dB at freq for every order.
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	sections := make([]biquad.Coefficients, Sections(order))
	ButterworthLPInto(sections, freq, order, sampleRate)
	return sections
}

// ButterworthHP designs a highpass Butterworth cascade of the given order.
// Section layout matches [ButterworthLP].
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	sections := make([]biquad.Coefficients, Sections(order))
	ButterworthHPInto(sections, freq, order, sampleRate)
	return sections
}

// ButterworthLPInto writes the [ButterworthLP] cascade into dst and
// returns the number of sections written. Sections that do not fit in dst
// are dropped. It does not allocate.
func ButterworthLPInto(dst []biquad.Coefficients, freq float64, order int, sampleRate float64) int {
	return butterworthInto(dst, freq, order, sampleRate, Lowpass, firstOrderLP)
}

// ButterworthHPInto is the highpass counterpart of [ButterworthLPInto].
func ButterworthHPInto(dst []biquad.Coefficients, freq float64, order int, sampleRate float64) int {
	return butterworthInto(dst, freq, order, sampleRate, Highpass, firstOrderHP)
}

// Sections returns how many biquad sections an order-N cascade needs.
func Sections(order int) int {
	if order <= 0 {
		return 0
	}
	return (order + 1) / 2
}

func butterworthInto(
	dst []biquad.Coefficients,
	freq float64, order int, sampleRate float64,
	second func(freq, q, sampleRate float64) biquad.Coefficients,
	first func(freq, sampleRate float64) biquad.Coefficients,
) int {
	n := 0
	for i := order/2 - 1; i >= 0 && n < len(dst); i-- {
		dst[n] = second(freq, ButterworthQ(order, i), sampleRate)
		n++
	}
	if order%2 != 0 && n < len(dst) {
		dst[n] = first(freq, sampleRate)
		n++
	}
	return n
}

// ButterworthQ returns the quality factor of pole pair index of an
// order-N Butterworth prototype: 1 / (2 sin((2k+1)π / 2N)).
func ButterworthQ(order, index int) float64 {
	s := math.Sin(math.Pi * float64(2*index+1) / (2 * float64(order)))
	if s == 0 {
		return defaultQ
	}
	return 1 / (2 * s)
}

func firstOrderLP(freq, sampleRate float64) biquad.Coefficients {
	if _, ok := normalizedW0(freq, sampleRate); !ok {
		return *biquad.Identity()
	}

	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: k * norm,
		B1: k * norm,
		A1: (k - 1) * norm,
	}
}

func firstOrderHP(freq, sampleRate float64) biquad.Coefficients {
	if _, ok := normalizedW0(freq, sampleRate); !ok {
		return *biquad.Identity()
	}

	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: norm,
		B1: -norm,
		A1: (k - 1) * norm,
	}
}
