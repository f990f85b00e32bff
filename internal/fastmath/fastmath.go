//go:build !fastmath

// Package fastmath holds the transcendental kernels used on the analyzer hot
// path. The default build uses the standard library; building with the
// fastmath tag swaps in algo-approx approximations.
package fastmath

import "math"

// Approximate reports whether the approximated kernels are compiled in.
const Approximate = false

// Log10 computes log10(x).
func Log10(x float64) float64 {
	return math.Log10(x)
}
