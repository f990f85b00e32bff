package analyzer

import (
	"sync/atomic"

	"github.com/cwbudde/simple-eq/dsp/buffer"
	"github.com/cwbudde/simple-eq/dsp/fifo"
	"github.com/cwbudde/simple-eq/internal/assert"
)

// Channel selects which channel of a multichannel block a collector reads.
type Channel int

const (
	// Left is channel 0.
	Left Channel = iota
	// Right is channel 1.
	Right
)

func (c Channel) String() string {
	switch c {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ChannelCollector cuts one channel's sample stream into fixed-size blocks
// and queues completed blocks for a consumer.
//
// Update runs on the audio thread; the Pull side runs on one consumer
// goroutine. Prepare must be called before either and not concurrently
// with them.
type ChannelCollector struct {
	channel  Channel
	acc      *buffer.Accumulator
	queue    *fifo.Fifo[[]float64]
	push     func(block []float64)
	prepared atomic.Bool
}

// NewChannelCollector returns an unprepared collector for channel.
func NewChannelCollector(channel Channel) *ChannelCollector {
	c := &ChannelCollector{
		channel: channel,
		acc:     buffer.NewAccumulator(0),
		queue:   fifo.New[[]float64](fifo.DefaultCapacity, fifo.CopySlice[float64]),
	}
	c.push = func(block []float64) { c.queue.Push(block) }
	return c
}

// Prepare sizes the accumulation buffer and every queue slot to blockSize
// samples, discarding anything pending or queued.
func (c *ChannelCollector) Prepare(blockSize int) {
	if blockSize < 1 {
		blockSize = 1
	}
	c.acc.Reset(blockSize)
	c.queue.Prepare(func(slot *[]float64) { *slot = make([]float64, blockSize) })
	c.prepared.Store(true)
}

// Update ingests samples. Every time the accumulation buffer fills, a copy
// is pushed to the queue (dropped if the queue is full) and the cursor
// restarts at 0.
func (c *ChannelCollector) Update(samples []float64) {
	if !assert.That(c.prepared.Load(), "collector used before Prepare") {
		return
	}
	c.acc.Write(samples, c.push)
}

// UpdateFrom ingests this collector's channel from a per-channel block set.
// Missing channels are ignored.
func (c *ChannelCollector) UpdateFrom(channels [][]float64) {
	if int(c.channel) < len(channels) {
		c.Update(channels[c.channel])
	}
}

// CompleteBuffersAvailable returns how many blocks are waiting.
func (c *ChannelCollector) CompleteBuffersAvailable() int {
	return c.queue.AvailableForReading()
}

// PullBuffer copies the oldest complete block into out.
func (c *ChannelCollector) PullBuffer(out *[]float64) bool {
	return c.queue.Pull(out)
}

// Pending returns the number of samples accumulated toward the next block.
func (c *ChannelCollector) Pending() int {
	return c.acc.Pending()
}

// Size returns the block size set by Prepare.
func (c *ChannelCollector) Size() int {
	return c.acc.Size()
}

// Prepared reports whether Prepare has been called.
func (c *ChannelCollector) Prepared() bool {
	return c.prepared.Load()
}

// Channel returns the channel this collector reads.
func (c *ChannelCollector) Channel() Channel {
	return c.channel
}
