// Package fifo implements a bounded lock-free single-producer
// single-consumer queue with copy-in/copy-out slots.
//
// One goroutine may call Push while another calls Pull. Slots are owned by
// the queue: Push copies the value into a slot and Pull copies it out, so
// neither side ever holds a reference into the other's memory. With an
// [AssignFunc] that reuses slot storage (see [CopySlice]) neither operation
// allocates after [Fifo.Prepare].
package fifo

import "sync/atomic"

// DefaultCapacity is the number of slots used by the analyzer queues.
const DefaultCapacity = 30

// AssignFunc copies src into the slot at dst.
type AssignFunc[T any] func(dst *T, src T)

// Fifo is a bounded SPSC queue. The zero value is not usable; call New.
type Fifo[T any] struct {
	slots  []T
	assign AssignFunc[T]

	// head counts completed pulls, tail completed pushes. Both only grow.
	head atomic.Uint64
	_    [56]byte
	tail atomic.Uint64
}

// New returns a queue holding up to capacity values. A nil assign uses
// plain assignment, which is correct for values without shared storage.
// capacity < 1 falls back to DefaultCapacity.
func New[T any](capacity int, assign AssignFunc[T]) *Fifo[T] {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	if assign == nil {
		assign = func(dst *T, src T) { *dst = src }
	}
	return &Fifo[T]{
		slots:  make([]T, capacity),
		assign: assign,
	}
}

// CopySlice is an AssignFunc for slice values. It copies into the slot's
// existing storage, growing it only when src is longer than the slot's
// capacity.
func CopySlice[E any](dst *[]E, src []E) {
	if cap(*dst) < len(src) {
		*dst = make([]E, len(src))
	}
	*dst = (*dst)[:len(src)]
	copy(*dst, src)
}

// Prepare resets the queue to empty and calls init on every slot so slot
// storage can be preallocated. It must not run concurrently with Push or
// Pull.
func (f *Fifo[T]) Prepare(init func(slot *T)) {
	f.head.Store(0)
	f.tail.Store(0)
	if init == nil {
		return
	}
	for i := range f.slots {
		init(&f.slots[i])
	}
}

// Push copies v into the next free slot. It returns false and drops v when
// the queue is full. Producer side only.
func (f *Fifo[T]) Push(v T) bool {
	tail := f.tail.Load()
	if tail-f.head.Load() >= uint64(len(f.slots)) {
		return false
	}
	f.assign(&f.slots[tail%uint64(len(f.slots))], v)
	f.tail.Store(tail + 1)
	return true
}

// Pull copies the oldest value into out. It returns false and leaves out
// untouched when the queue is empty. Consumer side only.
func (f *Fifo[T]) Pull(out *T) bool {
	head := f.head.Load()
	if head == f.tail.Load() {
		return false
	}
	f.assign(out, f.slots[head%uint64(len(f.slots))])
	f.head.Store(head + 1)
	return true
}

// AvailableForReading returns the number of values waiting to be pulled.
// The answer may be stale by the time it is used, but never overstates
// what the consumer can pull.
func (f *Fifo[T]) AvailableForReading() int {
	return int(f.tail.Load() - f.head.Load())
}

// Capacity returns the number of slots.
func (f *Fifo[T]) Capacity() int {
	return len(f.slots)
}
