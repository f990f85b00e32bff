// Package biquad provides the second-order IIR runtime used by the EQ
// filter chains.
//
// A [Section] runs Direct Form II Transposed processing on coefficients
// reached through a shared handle: the coefficient set is swapped as one
// unit with [Section.SetCoefficients] and never mutated in place, so a
// section never observes a half-written set. Sections carry their own
// bypass flag. A [Chain] is a fixed-size cascade of sections whose shape
// never changes after construction; disabling stages is done by bypassing
// them.
//
// Coefficient design (RBJ peak, Butterworth cascades) lives in
// dsp/filter/design.
package biquad
