package analyzer

import (
	"testing"

	"github.com/cwbudde/simple-eq/internal/assert"
	"github.com/cwbudde/simple-eq/internal/testutil"
)

func TestCollectorBlocksAndPending(t *testing.T) {
	c := NewChannelCollector(Left)
	c.Prepare(2048)

	in := make([]float64, 5000)
	for i := range in {
		in[i] = float64(i)
	}
	c.Update(in)

	if got := c.CompleteBuffersAvailable(); got != 2 {
		t.Fatalf("CompleteBuffersAvailable() = %d, want 2", got)
	}
	if got := c.Pending(); got != 904 {
		t.Fatalf("Pending() = %d, want 904", got)
	}

	out := make([]float64, 2048)
	for i, start := range []float64{0, 2048} {
		if !c.PullBuffer(&out) {
			t.Fatalf("PullBuffer %d failed", i)
		}
		if out[0] != start || out[2047] != start+2047 {
			t.Fatalf("block %d spans [%v..%v], want [%v..%v]", i, out[0], out[2047], start, start+2047)
		}
	}
}

func TestCollectorArbitraryHostBlocks(t *testing.T) {
	c := NewChannelCollector(Right)
	c.Prepare(2048)

	signal := testutil.Noise(7, 1, 5000)
	for _, block := range testutil.Blocks(signal, 441) {
		c.Update(block)
	}
	if c.CompleteBuffersAvailable() != 2 || c.Pending() != 904 {
		t.Fatalf("blocks=%d pending=%d, want 2 and 904", c.CompleteBuffersAvailable(), c.Pending())
	}

	out := make([]float64, 2048)
	c.PullBuffer(&out)
	c.PullBuffer(&out)
	testutil.RequireSliceNearlyEqual(t, out, signal[2048:4096], 0)
}

func TestCollectorUpdateFromPicksChannel(t *testing.T) {
	left := NewChannelCollector(Left)
	right := NewChannelCollector(Right)
	left.Prepare(4)
	right.Prepare(4)

	channels := [][]float64{{1, 1, 1, 1}, {2, 2, 2, 2}}
	left.UpdateFrom(channels)
	right.UpdateFrom(channels)
	right.UpdateFrom(channels[:1])

	out := make([]float64, 4)
	left.PullBuffer(&out)
	if out[0] != 1 {
		t.Fatalf("left collector read %v", out)
	}
	right.PullBuffer(&out)
	if out[0] != 2 {
		t.Fatalf("right collector read %v", out)
	}
	if right.Pending() != 0 {
		t.Fatalf("missing channel should be ignored, pending=%d", right.Pending())
	}
}

func TestCollectorQueueOverflowDrops(t *testing.T) {
	c := NewChannelCollector(Left)
	c.Prepare(16)
	c.Update(make([]float64, 16*40))
	if got := c.CompleteBuffersAvailable(); got != 30 {
		t.Fatalf("CompleteBuffersAvailable() = %d, want 30", got)
	}
}

func TestCollectorUpdateDoesNotAllocate(t *testing.T) {
	c := NewChannelCollector(Left)
	c.Prepare(2048)
	block := make([]float64, 512)
	out := make([]float64, 2048)
	allocs := testing.AllocsPerRun(50, func() {
		c.Update(block)
		c.PullBuffer(&out)
	})
	if allocs != 0 {
		t.Fatalf("allocs per update = %v, want 0", allocs)
	}
}

func TestCollectorUnprepared(t *testing.T) {
	c := NewChannelCollector(Left)
	if c.Prepared() {
		t.Fatal("new collector reports prepared")
	}
	defer func() {
		if r := recover(); (r != nil) != assert.Enabled {
			t.Fatalf("recover() = %v with assert.Enabled=%v", r, assert.Enabled)
		}
	}()
	c.Update([]float64{1, 2, 3})
	if c.Pending() != 0 || c.CompleteBuffersAvailable() != 0 {
		t.Fatal("unprepared collector accepted samples")
	}
}
