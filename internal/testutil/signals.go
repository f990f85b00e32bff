// Package testutil provides deterministic test signals and tolerance checks
// shared by the EQ package tests.
package testutil

import (
	"math"
	"math/rand"
)

// Sine generates a deterministic sine wave starting at phase 0.
func Sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Noise generates white noise with a fixed seed for reproducibility.
func Noise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Blocks splits signal into consecutive host-sized blocks. The last block is
// shorter when len(signal) is not a multiple of size. The blocks alias the
// input.
func Blocks(signal []float64, size int) [][]float64 {
	if size <= 0 {
		return nil
	}
	blocks := make([][]float64, 0, (len(signal)+size-1)/size)
	for start := 0; start < len(signal); start += size {
		end := min(start+size, len(signal))
		blocks = append(blocks, signal[start:end])
	}
	return blocks
}
