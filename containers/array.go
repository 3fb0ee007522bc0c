// Package containers provides fixed-capacity containers for targets where
// heap growth is not an option: a storage Array, a linear Deque, a
// CircularDeque and the Stack, Queue and List adaptors built on them.
//
// Capacity is chosen once at construction and never changes. Nothing in
// this package allocates after construction, logs, or returns errors;
// preconditions are documented per method and enforced only when the
// containers_safety build tag is set (see Safety) or when the Try
// variants are used.
//
// Containers are not safe for concurrent use, including use from an
// interrupt-like context while another goroutine mutates them.
package containers

import "iter"

// Array is a fixed number of T slots allocated once.
type Array[T any] struct {
	data []T
}

// NewArray allocates n zeroed slots.
func NewArray[T any](n int) Array[T] {
	return Array[T]{data: make([]T, n)}
}

func (a Array[T]) Len() int { return len(a.data) }

func (a Array[T]) At(i int) T { return a.data[i] }

func (a Array[T]) Set(i int, v T) { a.data[i] = v }

// Ref returns the address of slot i.
func (a Array[T]) Ref(i int) *T { return &a.data[i] }

func (a Array[T]) Front() T { return a.data[0] }

func (a Array[T]) Back() T { return a.data[len(a.data)-1] }

// Data exposes the slots. The slice must not be appended to.
func (a Array[T]) Data() []T { return a.data }

// Fill assigns v to every slot.
func (a Array[T]) Fill(v T) {
	for i := range a.data {
		a.data[i] = v
	}
}

// Swap exchanges the contents of two arrays of the same length in O(1).
func (a *Array[T]) Swap(o *Array[T]) {
	if len(a.data) != len(o.data) {
		panic("containers: swap of arrays with different lengths")
	}
	a.data, o.data = o.data, a.data
}

func (a Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range a.data {
			if !yield(i, v) {
				return
			}
		}
	}
}

func checkCapacity(capacity int) {
	if capacity < 1 {
		panic("containers: capacity must be positive")
	}
}
