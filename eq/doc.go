// Package eq implements a three-band parametric equalizer: a low-cut
// Butterworth stage (12 to 48 dB/oct), a peaking bell and a high-cut
// Butterworth stage, processed per channel.
//
// Parameters live in a lock-free [Store]. The real-time [Processor] reads a
// [ChainSettings] snapshot from it on every block, recomputes coefficients
// into a preallocated arena and swaps the section handles, so the audio
// path never allocates, locks or blocks. A [ResponseCurve] runs on a
// non-real-time goroutine: it rebuilds its own copy of the chain when a
// parameter listener raises its changed flag and drives the spectrum
// analyzer pipeline of package analyzer.
package eq
