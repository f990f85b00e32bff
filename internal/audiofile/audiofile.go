// Package audiofile reads and writes PCM WAV files as planar float64
// channels in [-1, 1].
package audiofile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// DefaultBitDepth is used by Encode when Audio.BitDepth is unset.
const DefaultBitDepth = 16

var (
	// ErrInvalidWAV is returned for inputs that are not PCM WAV files.
	ErrInvalidWAV = errors.New("audiofile: not a PCM wav file")

	// ErrUnsupportedBitDepth is returned for bit depths other than 8, 16,
	// 24 and 32.
	ErrUnsupportedBitDepth = errors.New("audiofile: unsupported bit depth")

	// ErrNoChannels is returned when encoding audio without channels.
	ErrNoChannels = errors.New("audiofile: no channels")
)

// Audio is a decoded file.
type Audio struct {
	SampleRate int
	BitDepth   int
	Channels   [][]float64
}

// Frames returns the length of the shortest channel.
func (a *Audio) Frames() int {
	if len(a.Channels) == 0 {
		return 0
	}
	n := len(a.Channels[0])
	for _, ch := range a.Channels[1:] {
		n = min(n, len(ch))
	}
	return n
}

// Decode reads a whole PCM WAV stream.
func Decode(r io.ReadSeeker) (*Audio, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, ErrInvalidWAV
	}
	if d.WavAudioFormat != 1 {
		return nil, fmt.Errorf("%w: format tag %d", ErrInvalidWAV, d.WavAudioFormat)
	}
	depth := int(d.BitDepth)
	if !validDepth(depth) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, depth)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("audiofile: decode: %w", err)
	}

	numChans := buf.Format.NumChannels
	if numChans < 1 {
		return nil, fmt.Errorf("%w: no channels", ErrInvalidWAV)
	}
	frames := len(buf.Data) / numChans
	scale := 1 / float64(int(1)<<(depth-1))
	// 8-bit PCM is unsigned.
	offset := 0
	if depth == 8 {
		offset = 128
	}

	a := &Audio{
		SampleRate: buf.Format.SampleRate,
		BitDepth:   depth,
		Channels:   make([][]float64, numChans),
	}
	for ch := range a.Channels {
		samples := make([]float64, frames)
		for i := range samples {
			samples[i] = float64(buf.Data[i*numChans+ch]-offset) * scale
		}
		a.Channels[ch] = samples
	}
	return a, nil
}

// Encode writes a as PCM WAV, clipping samples to [-1, 1].
func Encode(w io.WriteSeeker, a *Audio) error {
	if len(a.Channels) == 0 {
		return ErrNoChannels
	}
	depth := a.BitDepth
	if depth == 0 {
		depth = DefaultBitDepth
	}
	if !validDepth(depth) {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, depth)
	}

	numChans := len(a.Channels)
	frames := a.Frames()
	peak := float64(int(1)<<(depth-1) - 1)
	offset := 0
	if depth == 8 {
		offset = 128
	}

	data := make([]int, frames*numChans)
	for ch, samples := range a.Channels {
		for i := 0; i < frames; i++ {
			v := math.Max(-1, math.Min(1, samples[i]))
			data[i*numChans+ch] = int(math.Round(v*peak)) + offset
		}
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChans, SampleRate: a.SampleRate},
		Data:           data,
		SourceBitDepth: depth,
	}
	e := wav.NewEncoder(w, a.SampleRate, depth, numChans, 1)
	if err := e.Write(buf); err != nil {
		return fmt.Errorf("audiofile: encode: %w", err)
	}
	if err := e.Close(); err != nil {
		return fmt.Errorf("audiofile: encode: %w", err)
	}
	return nil
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// WriteFile encodes a to path, replacing any existing file.
func WriteFile(path string, a *Audio) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, a); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

func validDepth(depth int) bool {
	switch depth {
	case 8, 16, 24, 32:
		return true
	default:
		return false
	}
}
