// Package buffer provides reusable float64 sample buffers for the analyzer
// path: a fixed-size Buffer with a sliding ShiftIn used to assemble FFT
// input frames, and an Accumulator that cuts a sample stream into
// fixed-size blocks.
//
// Neither type allocates after construction, so both are safe to drive from
// the audio thread.
package buffer
