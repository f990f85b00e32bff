package fifo

import (
	"runtime"
	"slices"
	"sync"
	"testing"
)

func TestPushPullRoundTrip(t *testing.T) {
	f := New[[]float64](DefaultCapacity, CopySlice[float64])
	f.Prepare(func(slot *[]float64) { *slot = make([]float64, 4) })

	for i := range DefaultCapacity {
		v := []float64{float64(i), 1, 2, 3}
		if !f.Push(v) {
			t.Fatalf("Push %d failed with %d queued", i, f.AvailableForReading())
		}
	}
	if f.Push([]float64{99, 99, 99, 99}) {
		t.Fatal("Push succeeded on a full queue")
	}
	if f.AvailableForReading() != DefaultCapacity {
		t.Fatalf("AvailableForReading() = %d, want %d", f.AvailableForReading(), DefaultCapacity)
	}

	out := make([]float64, 4)
	for i := range DefaultCapacity {
		if !f.Pull(&out) {
			t.Fatalf("Pull %d failed", i)
		}
		if out[0] != float64(i) {
			t.Fatalf("Pull %d = %v, want first element %d", i, out, i)
		}
	}
	if f.Pull(&out) {
		t.Fatal("Pull succeeded on an empty queue")
	}
	if out[0] != float64(DefaultCapacity-1) {
		t.Fatalf("failed Pull modified out: %v", out)
	}
}

func TestOverflowDropsNewest(t *testing.T) {
	f := New[int](2, nil)
	f.Push(1)
	f.Push(2)
	if f.Push(3) {
		t.Fatal("expected full queue")
	}
	var v int
	f.Pull(&v)
	if v != 1 {
		t.Fatalf("oldest = %d, want 1", v)
	}
	if !f.Push(4) {
		t.Fatal("Push after Pull should succeed")
	}
	var got []int
	for f.Pull(&v) {
		got = append(got, v)
	}
	if !slices.Equal(got, []int{2, 4}) {
		t.Fatalf("drained %v, want [2 4]", got)
	}
}

func TestCopyInCopyOut(t *testing.T) {
	f := New[[]float64](4, CopySlice[float64])
	f.Prepare(func(slot *[]float64) { *slot = make([]float64, 0, 3) })

	src := []float64{1, 2, 3}
	f.Push(src)
	src[0] = 100

	out := make([]float64, 3)
	f.Pull(&out)
	if out[0] != 1 {
		t.Fatalf("queued value aliased the producer slice: %v", out)
	}
	out[1] = 200
	f.Push([]float64{7, 8, 9})
	var next []float64
	f.Pull(&next)
	if next[1] != 8 {
		t.Fatalf("consumer write leaked into queue: %v", next)
	}
}

func TestPrepareResets(t *testing.T) {
	f := New[int](3, nil)
	f.Push(1)
	f.Push(2)
	f.Prepare(nil)
	if f.AvailableForReading() != 0 {
		t.Fatalf("AvailableForReading() = %d after Prepare, want 0", f.AvailableForReading())
	}
	if f.Capacity() != 3 {
		t.Fatalf("Capacity() = %d, want 3", f.Capacity())
	}
}

func TestInvalidCapacityFallsBack(t *testing.T) {
	if got := New[int](0, nil).Capacity(); got != DefaultCapacity {
		t.Fatalf("Capacity() = %d, want %d", got, DefaultCapacity)
	}
}

func TestPushPullDoesNotAllocate(t *testing.T) {
	f := New[[]float64](DefaultCapacity, CopySlice[float64])
	f.Prepare(func(slot *[]float64) { *slot = make([]float64, 2048) })
	in := make([]float64, 2048)
	out := make([]float64, 2048)

	allocs := testing.AllocsPerRun(100, func() {
		f.Push(in)
		f.Pull(&out)
	})
	if allocs != 0 {
		t.Fatalf("allocs per push/pull = %v, want 0", allocs)
	}
}

func TestConcurrentSPSC(t *testing.T) {
	const n = 10000
	f := New[[]int](8, CopySlice[int])
	f.Prepare(func(slot *[]int) { *slot = make([]int, 2) })

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		v := make([]int, 2)
		for i := 0; i < n; {
			v[0], v[1] = i, -i
			if !f.Push(v) {
				runtime.Gosched()
				continue
			}
			i++
		}
	}()

	out := make([]int, 2)
	for want := 0; want < n; {
		if !f.Pull(&out) {
			runtime.Gosched()
			continue
		}
		if out[0] != want || out[1] != -want {
			t.Fatalf("pulled %v, want [%d %d]", out, want, -want)
		}
		want++
	}
	wg.Wait()
}

func BenchmarkPushPull(b *testing.B) {
	f := New[[]float64](DefaultCapacity, CopySlice[float64])
	f.Prepare(func(slot *[]float64) { *slot = make([]float64, 2048) })
	in := make([]float64, 2048)
	out := make([]float64, 2048)
	for b.Loop() {
		f.Push(in)
		f.Pull(&out)
	}
}
