package progmem

import (
	"iter"

	"github.com/quickwritereader/memdomain/access"
	"github.com/quickwritereader/memdomain/types"
)

// Array is a fixed-length view over consecutive T values in progmem. It
// performs no bounds checking.
type Array[T any] struct {
	base Pointer[T]
	n    int
}

// MakeArray wraps n elements starting at addr.
func MakeArray[T any](mem access.Reader, addr types.Address, n int) Array[T] {
	return Array[T]{base: MakePointer[T](mem, addr), n: n}
}

func (a Array[T]) Len() int { return a.n }

func (a Array[T]) Empty() bool { return a.n == 0 }

func (a Array[T]) At(i int) Reference[T] { return a.base.At(i) }

// Get reads element i.
func (a Array[T]) Get(i int) T { return a.base.At(i).Get() }

func (a Array[T]) Front() Reference[T] { return a.base.Deref() }

func (a Array[T]) Back() Reference[T] { return a.base.At(a.n - 1) }

func (a Array[T]) Begin() Pointer[T] { return a.base }

func (a Array[T]) End() Pointer[T] { return a.base.Add(a.n) }

// CopyTo copies up to len(dst) leading elements into dst with one block
// read and returns the number copied.
func (a Array[T]) CopyTo(dst []T) int {
	n := min(len(dst), a.n)
	access.ReadSlice(a.base.mem, a.base.addr, dst[:n])
	return n
}

// All yields index/value pairs, one domain read per element.
func (a Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < a.n; i++ {
			if !yield(i, a.Get(i)) {
				return
			}
		}
	}
}
