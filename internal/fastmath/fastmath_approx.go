//go:build fastmath

// Package fastmath holds the transcendental kernels used on the analyzer hot
// path. The default build uses the standard library; building with the
// fastmath tag swaps in algo-approx approximations.
package fastmath

import "github.com/meko-christian/algo-approx"

// Approximate reports whether the approximated kernels are compiled in.
const Approximate = true

// ln10 is the natural logarithm of 10.
const ln10 = 2.302585092994045684017991454684

// Log10 computes log10(x) as ln(x)/ln(10).
func Log10(x float64) float64 {
	return approx.FastLog(x) / ln10
}
