package main

import (
	"encoding/binary"
	"math"

	"github.com/cwbudde/simple-eq/eq"
	"github.com/cwbudde/simple-eq/internal/audiofile"
)

// loopSource is the io.Reader oto pulls from. Read runs on the audio
// goroutine: it loops the decoded file, runs it through the processor in
// blocks and interleaves float32 little-endian frames. It does not
// allocate after construction.
type loopSource struct {
	proc     *eq.Processor
	audio    *audiofile.Audio
	channels int
	block    int
	pos      int

	scratch [][]float64
	view    [][]float64
}

// newLoopSource falls back to defaultBlockSize when block is not positive.
func newLoopSource(proc *eq.Processor, a *audiofile.Audio, channels, block int) *loopSource {
	if block <= 0 {
		block = defaultBlockSize
	}
	s := &loopSource{
		proc:     proc,
		audio:    a,
		channels: channels,
		block:    block,
		scratch:  make([][]float64, channels),
		view:     make([][]float64, channels),
	}
	for ch := range s.scratch {
		s.scratch[ch] = make([]float64, block)
	}
	return s
}

func (s *loopSource) Read(p []byte) (int, error) {
	frameBytes := 4 * s.channels
	frames := len(p) / frameBytes
	frames0 := frames
	out := p

	for frames > 0 {
		n := min(frames, s.block)
		s.fill(n)
		s.proc.ProcessBlock(s.view)
		for i := 0; i < n; i++ {
			for ch := 0; ch < s.channels; ch++ {
				v := float32(s.view[ch][i])
				binary.LittleEndian.PutUint32(out, math.Float32bits(v))
				out = out[4:]
			}
		}
		frames -= n
	}
	return frames0 * frameBytes, nil
}

// fill copies the next n looped frames into the scratch channels. Mono
// files feed both output channels.
func (s *loopSource) fill(n int) {
	total := s.audio.Frames()
	for ch := 0; ch < s.channels; ch++ {
		s.view[ch] = s.scratch[ch][:n]
	}
	if total == 0 {
		for ch := range s.view {
			clear(s.view[ch])
		}
		return
	}

	for i := 0; i < n; i++ {
		for ch := 0; ch < s.channels; ch++ {
			src := s.audio.Channels[min(ch, len(s.audio.Channels)-1)]
			s.view[ch][i] = src[s.pos]
		}
		s.pos++
		if s.pos >= total {
			s.pos = 0
		}
	}
}
