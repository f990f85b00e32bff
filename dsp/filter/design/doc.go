// Package design provides the IIR coefficient designers behind the EQ
// bands.
//
// All functions return coefficients consumable by dsp/filter/biquad: RBJ
// cookbook Lowpass, Highpass and Peak sections, and Butterworth cascades of
// arbitrary order built from RBJ sections with per-stage Q. Parameters that
// cannot yield a valid filter (non-positive frequency or sample rate, a
// corner at or above Nyquist) produce the identity passthrough, never NaN
// coefficients.
package design
