package eeprom

import (
	"iter"

	"github.com/quickwritereader/memdomain/access"
	"github.com/quickwritereader/memdomain/types"
)

// Array is a fixed-length view over consecutive T values in eeprom. It
// performs no bounds checking.
type Array[T any] struct {
	base Pointer[T]
	n    int
}

// MakeArray wraps n elements starting at addr.
func MakeArray[T any](dev access.Device, addr types.Address, n int) Array[T] {
	return Array[T]{base: MakePointer[T](dev, addr), n: n}
}

func (a Array[T]) Len() int { return a.n }

func (a Array[T]) Empty() bool { return a.n == 0 }

func (a Array[T]) At(i int) Reference[T] { return a.base.At(i) }

func (a Array[T]) Get(i int) T { return a.base.At(i).Get() }

// Set updates element i.
func (a Array[T]) Set(i int, v T) { a.base.At(i).Set(v) }

func (a Array[T]) Front() Reference[T] { return a.base.Deref() }

func (a Array[T]) Back() Reference[T] { return a.base.At(a.n - 1) }

func (a Array[T]) Begin() Pointer[T] { return a.base }

func (a Array[T]) End() Pointer[T] { return a.base.Add(a.n) }

// CopyTo reads up to len(dst) leading elements with one block read.
func (a Array[T]) CopyTo(dst []T) int {
	n := min(len(dst), a.n)
	access.ReadSlice(a.base.dev, a.base.addr, dst[:n])
	return n
}

// Store updates the leading len(src) elements with one block update.
// Extra source elements are ignored.
func (a Array[T]) Store(src []T) int {
	n := min(len(src), a.n)
	access.UpdateSlice(a.base.dev, a.base.addr, src[:n])
	return n
}

// Overwrite is Store with an unconditional block write.
func (a Array[T]) Overwrite(src []T) int {
	n := min(len(src), a.n)
	access.WriteSlice(a.base.dev, a.base.addr, src[:n])
	return n
}

// Fill updates every element to v.
func (a Array[T]) Fill(v T) {
	for i := 0; i < a.n; i++ {
		a.Set(i, v)
	}
}

func (a Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < a.n; i++ {
			if !yield(i, a.Get(i)) {
				return
			}
		}
	}
}
