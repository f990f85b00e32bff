// Package spectrum provides the spectrum-domain kernels of the analyzer:
// unpacking FFT output, magnitudes, bin scaling and the gain-to-decibel
// conversion with a floor.
//
// The package does not implement the FFT itself; bins come from an external
// backend. Every function writes into caller-provided slices and never
// allocates.
package spectrum
