package core

import "math"

// MapRange linearly remaps value from [srcMin, srcMax] onto [dstMin, dstMax].
// The result is not clamped.
func MapRange(value, srcMin, srcMax, dstMin, dstMax float64) float64 {
	return dstMin + (dstMax-dstMin)*(value-srcMin)/(srcMax-srcMin)
}

// MapToLog10 maps a normalised proportion in [0, 1] onto a logarithmic range
// [rangeMin, rangeMax]. Both range ends must be positive.
func MapToLog10(proportion, rangeMin, rangeMax float64) float64 {
	logMin := math.Log10(rangeMin)
	logMax := math.Log10(rangeMax)

	return math.Pow(10, proportion*(logMax-logMin)+logMin)
}

// MapFromLog10 is the inverse of MapToLog10: it returns the normalised
// position of value within the logarithmic range [rangeMin, rangeMax].
//
// value <= 0 yields -Inf or NaN; callers rendering the result must skip
// non-finite positions.
func MapFromLog10(value, rangeMin, rangeMax float64) float64 {
	logMin := math.Log10(rangeMin)
	logMax := math.Log10(rangeMax)

	return (math.Log10(value) - logMin) / (logMax - logMin)
}
