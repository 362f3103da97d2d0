// Package ring provides the fixed-capacity circular buffers that back
// per-player motion history. Wraparound arithmetic is private to this
// package; callers only ever see push and ordered reads.
package ring

// #region buffer

// Buffer is a fixed-capacity ring buffer. Once full, each push overwrites
// the oldest entry. Pushing into a full buffer is normal operation, not a
// fault.
type Buffer[T any] struct {
	slots []T
	write int // next slot to be written
	count int // saturates at capacity
}

// New creates a buffer with the given capacity. Capacity must be positive.
func New[T any](capacity int) *Buffer[T] {
	if capacity <= 0 {
		panic("ring: capacity must be positive")
	}
	return &Buffer[T]{slots: make([]T, capacity)}
}

// #endregion buffer

// #region push

// Push stores v, overwriting the oldest entry when full.
func (b *Buffer[T]) Push(v T) {
	b.slots[b.write] = v
	b.write = (b.write + 1) % len(b.slots)
	if b.count < len(b.slots) {
		b.count++
	}
}

// #endregion push

// #region reads

// Len returns the number of stored entries, at most Cap.
func (b *Buffer[T]) Len() int {
	return b.count
}

// Cap returns the fixed capacity.
func (b *Buffer[T]) Cap() int {
	return len(b.slots)
}

// Latest returns the most recently pushed entry.
func (b *Buffer[T]) Latest() (T, bool) {
	var zero T
	if b.count == 0 {
		return zero, false
	}
	idx := (b.write - 1 + len(b.slots)) % len(b.slots)
	return b.slots[idx], true
}

// Window returns the min(k, Len) most recent entries, most-recent-first.
// The returned slice is a copy; mutating it does not affect the buffer.
func (b *Buffer[T]) Window(k int) []T {
	if k > b.count {
		k = b.count
	}
	if k <= 0 {
		return nil
	}
	out := make([]T, k)
	for i := 0; i < k; i++ {
		idx := (b.write - 1 - i + len(b.slots)) % len(b.slots)
		out[i] = b.slots[idx]
	}
	return out
}

// Chronological returns all stored entries oldest-first.
func (b *Buffer[T]) Chronological() []T {
	if b.count == 0 {
		return nil
	}
	out := make([]T, b.count)
	start := (b.write - b.count + len(b.slots)) % len(b.slots)
	for i := 0; i < b.count; i++ {
		out[i] = b.slots[(start+i)%len(b.slots)]
	}
	return out
}

// #endregion reads
