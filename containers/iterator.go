package containers

import "cmp"

// Cursor is the iterator contract shared by IndexIterator, SlotIterator
// and Reverse, which lets the algorithms below accept any of them.
type Cursor[T any, It any] interface {
	Get() T
	Set(v T)
	Next() It
	Prev() It
	Equal(It) bool
}

// Indexed is a container addressable by logical index.
type Indexed[T any] interface {
	Ref(i int) *T
	Len() int
}

// IndexIterator denotes a logical position in a container rather than an
// element. Every dereference asks the container for the physical slot of
// the index, so the iterator follows layout changes: after a front
// insertion or removal in a CircularDeque the same iterator denotes a
// different element.
type IndexIterator[T any] struct {
	container Indexed[T]
	index     int
}

// MakeIndexIterator returns an iterator at index of c.
func MakeIndexIterator[T any](c Indexed[T], index int) IndexIterator[T] {
	return IndexIterator[T]{container: c, index: index}
}

func (it IndexIterator[T]) Index() int { return it.index }

func (it IndexIterator[T]) Get() T { return *it.container.Ref(it.index) }

func (it IndexIterator[T]) Set(v T) { *it.container.Ref(it.index) = v }

// Ptr returns the current physical slot of the iterator's index.
func (it IndexIterator[T]) Ptr() *T { return it.container.Ref(it.index) }

func (it IndexIterator[T]) Next() IndexIterator[T] { return it.Advance(1) }

func (it IndexIterator[T]) Prev() IndexIterator[T] { return it.Advance(-1) }

func (it IndexIterator[T]) Advance(n int) IndexIterator[T] {
	return IndexIterator[T]{container: it.container, index: it.index + n}
}

// Diff returns it - o in positions.
func (it IndexIterator[T]) Diff(o IndexIterator[T]) int { return it.index - o.index }

// Equal reports whether both iterators refer to the same container
// instance and hold the same index.
func (it IndexIterator[T]) Equal(o IndexIterator[T]) bool {
	return it.container == o.container && it.index == o.index
}

func (it IndexIterator[T]) Less(o IndexIterator[T]) bool { return it.index < o.index }

func (it IndexIterator[T]) Compare(o IndexIterator[T]) int { return cmp.Compare(it.index, o.index) }

// SlotIterator is a raw position in a backing Array, the analogue of a
// plain element pointer. It stays on its physical slot whatever the
// container does around it.
type SlotIterator[T any] struct {
	base *Array[T]
	pos  int
}

func (it SlotIterator[T]) Get() T { return it.base.data[it.pos] }

func (it SlotIterator[T]) Set(v T) { it.base.data[it.pos] = v }

func (it SlotIterator[T]) Ptr() *T { return &it.base.data[it.pos] }

// Slot returns the physical slot number.
func (it SlotIterator[T]) Slot() int { return it.pos }

func (it SlotIterator[T]) Next() SlotIterator[T] { return it.Advance(1) }

func (it SlotIterator[T]) Prev() SlotIterator[T] { return it.Advance(-1) }

func (it SlotIterator[T]) Advance(n int) SlotIterator[T] {
	return SlotIterator[T]{base: it.base, pos: it.pos + n}
}

func (it SlotIterator[T]) Diff(o SlotIterator[T]) int { return it.pos - o.pos }

func (it SlotIterator[T]) Equal(o SlotIterator[T]) bool {
	return it.base == o.base && it.pos == o.pos
}

func (it SlotIterator[T]) Less(o SlotIterator[T]) bool { return it.pos < o.pos }

func (it SlotIterator[T]) Compare(o SlotIterator[T]) int { return cmp.Compare(it.pos, o.pos) }

// Reverse walks a cursor range backwards. A Reverse built from it denotes
// the element before it, so MakeReverse(end) .. MakeReverse(begin) visits
// the range last to first.
type Reverse[T any, It Cursor[T, It]] struct {
	base It
}

func MakeReverse[T any, It Cursor[T, It]](it It) Reverse[T, It] {
	return Reverse[T, It]{base: it}
}

// Base returns the underlying cursor, one past the denoted element.
func (r Reverse[T, It]) Base() It { return r.base }

func (r Reverse[T, It]) Get() T { return r.base.Prev().Get() }

func (r Reverse[T, It]) Set(v T) { r.base.Prev().Set(v) }

func (r Reverse[T, It]) Next() Reverse[T, It] { return Reverse[T, It]{base: r.base.Prev()} }

func (r Reverse[T, It]) Prev() Reverse[T, It] { return Reverse[T, It]{base: r.base.Next()} }

func (r Reverse[T, It]) Equal(o Reverse[T, It]) bool { return r.base.Equal(o.base) }

// Distance counts the steps from first to last.
func Distance[T any, It Cursor[T, It]](first, last It) int {
	n := 0
	for it := first; !it.Equal(last); it = it.Next() {
		n++
	}
	return n
}

// ForEach calls f on every element of [first, last) until f returns false.
func ForEach[T any, It Cursor[T, It]](first, last It, f func(T) bool) {
	for it := first; !it.Equal(last); it = it.Next() {
		if !f(it.Get()) {
			return
		}
	}
}

// Find returns the first cursor in [first, last) holding v, or last.
func Find[T comparable, It Cursor[T, It]](first, last It, v T) It {
	it := first
	for ; !it.Equal(last); it = it.Next() {
		if it.Get() == v {
			break
		}
	}
	return it
}

// CopyTo copies [first, last) into dst until either runs out and returns
// the number of elements copied.
func CopyTo[T any, It Cursor[T, It]](first, last It, dst []T) int {
	n := 0
	for it := first; n < len(dst) && !it.Equal(last); it = it.Next() {
		dst[n] = it.Get()
		n++
	}
	return n
}

// MoveLeft shifts [first+1, last) down by one position, overwriting first.
// The last position of the range keeps its old value.
func MoveLeft[T any, It Cursor[T, It]](first, last It) {
	it := first
	for next := it.Next(); !next.Equal(last); next = next.Next() {
		it.Set(next.Get())
		it = next
	}
}
