package spectrum

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/simple-eq/internal/fastmath"
)

// SplitComplex writes the real and imaginary parts of the first len(re)
// bins of in. re and im must have the same length, not longer than in.
func SplitComplex(re, im []float64, in []complex128) {
	for i := range re {
		c := in[i]
		re[i] = real(c)
		im[i] = imag(c)
	}
}

// MagnitudeFromParts computes |X[k]| = sqrt(re[k]^2 + im[k]^2) into dst.
// All three slices must have the same length.
func MagnitudeFromParts(dst, re, im []float64) {
	vecmath.Magnitude(dst, re, im)
}

// Scale multiplies every bin by scale in place.
func Scale(bins []float64, scale float64) {
	vecmath.ScaleBlock(bins, bins, scale)
}

// GainToDecibels converts linear magnitudes in bins to dB in place. Values
// at or below the floor, zero, negative and NaN inputs all map to floorDB.
func GainToDecibels(bins []float64, floorDB float64) {
	for i, v := range bins {
		if !(v > 0) {
			bins[i] = floorDB
			continue
		}
		db := 20 * fastmath.Log10(v)
		if !(db > floorDB) {
			db = floorDB
		}
		bins[i] = db
	}
}
