package containers

import "iter"

// CircularDeque is a double-ended queue over a ring of slots. Element i
// lives in slot (first+i) mod Cap, so both ends are O(1).
//
// Begin and End return IndexIterators. Because an IndexIterator resolves
// its slot from the current first index, PushFront and PopFront make every
// outstanding iterator denote a different element.
type CircularDeque[T any] struct {
	slots Array[T]
	first int
	count int
}

// NewCircularDeque returns an empty ring of capacity slots. It panics if
// capacity is not positive.
func NewCircularDeque[T any](capacity int) *CircularDeque[T] {
	checkCapacity(capacity)
	return &CircularDeque[T]{slots: NewArray[T](capacity)}
}

func (d *CircularDeque[T]) Len() int { return d.count }

func (d *CircularDeque[T]) Cap() int { return d.slots.Len() }

func (d *CircularDeque[T]) Empty() bool { return d.count == 0 }

func (d *CircularDeque[T]) Full() bool { return d.count == d.slots.Len() }

// First returns the physical slot of the first element.
func (d *CircularDeque[T]) First() int { return d.first }

func (d *CircularDeque[T]) adjust(i int) int {
	return (d.first + i) % d.slots.Len()
}

func (d *CircularDeque[T]) Front() T {
	if Safety && d.Empty() {
		var zero T
		return zero
	}
	return d.slots.data[d.first]
}

func (d *CircularDeque[T]) Back() T {
	if Safety && d.Empty() {
		var zero T
		return zero
	}
	return d.slots.data[d.adjust(d.count-1)]
}

func (d *CircularDeque[T]) At(i int) T {
	return d.slots.data[d.adjust(i)]
}

func (d *CircularDeque[T]) Set(i int, v T) {
	d.slots.data[d.adjust(i)] = v
}

// Ref returns the slot currently holding element i.
func (d *CircularDeque[T]) Ref(i int) *T { return &d.slots.data[d.adjust(i)] }

// Data returns the whole physical ring, live or not.
func (d *CircularDeque[T]) Data() []T { return d.slots.data }

func (d *CircularDeque[T]) Begin() IndexIterator[T] { return MakeIndexIterator[T](d, 0) }

func (d *CircularDeque[T]) End() IndexIterator[T] { return MakeIndexIterator[T](d, d.count) }

func (d *CircularDeque[T]) PushBack(v T) {
	if Safety && d.Full() {
		return
	}
	d.slots.data[d.adjust(d.count)] = v
	d.count++
}

func (d *CircularDeque[T]) EmplaceBack() *T {
	if Safety && d.Full() {
		return nil
	}
	p := &d.slots.data[d.adjust(d.count)]
	var zero T
	*p = zero
	d.count++
	return p
}

func (d *CircularDeque[T]) PopBack() T {
	if Safety && d.Empty() {
		var zero T
		return zero
	}
	d.count--
	p := &d.slots.data[d.adjust(d.count)]
	v := *p
	var zero T
	*p = zero
	return v
}

// PushFront moves the first index back one slot and stores v there.
func (d *CircularDeque[T]) PushFront(v T) {
	if Safety && d.Full() {
		return
	}
	*d.openFront() = v
}

func (d *CircularDeque[T]) EmplaceFront() *T {
	if Safety && d.Full() {
		return nil
	}
	p := d.openFront()
	var zero T
	*p = zero
	return p
}

func (d *CircularDeque[T]) openFront() *T {
	n := d.slots.Len()
	d.first = (d.first + n - 1) % n
	d.count++
	return &d.slots.data[d.first]
}

// PopFront removes the first element by advancing the first index.
func (d *CircularDeque[T]) PopFront() T {
	if Safety && d.Empty() {
		var zero T
		return zero
	}
	p := &d.slots.data[d.first]
	v := *p
	var zero T
	*p = zero
	d.first = (d.first + 1) % d.slots.Len()
	d.count--
	return v
}

// Erase removes the element at it by shifting every later element down one
// logical position, and returns it, which now denotes the following
// element. The cost is linear in the distance to the end even near the
// front.
func (d *CircularDeque[T]) Erase(it IndexIterator[T]) IndexIterator[T] {
	end := d.End()
	if Safety && (it.container != Indexed[T](d) || it.index < 0 || !it.Less(end)) {
		return end
	}
	MoveLeft(it, end)
	d.count--
	var zero T
	d.slots.data[d.adjust(d.count)] = zero
	return it
}

func (d *CircularDeque[T]) EraseAt(i int) {
	d.Erase(MakeIndexIterator[T](d, i))
}

// Clear zeroes the live range and resets the ring to its initial state.
func (d *CircularDeque[T]) Clear() {
	var zero T
	for i := 0; i < d.count; i++ {
		d.slots.data[d.adjust(i)] = zero
	}
	d.count = 0
	d.first = 0
}

// Swap exchanges the contents of two rings of equal capacity.
func (d *CircularDeque[T]) Swap(o *CircularDeque[T]) {
	d.slots.Swap(&o.slots)
	d.first, o.first = o.first, d.first
	d.count, o.count = o.count, d.count
}

func (d *CircularDeque[T]) TryPushBack(v T) bool {
	if d.Full() {
		return false
	}
	d.slots.data[d.adjust(d.count)] = v
	d.count++
	return true
}

func (d *CircularDeque[T]) TryPushFront(v T) bool {
	if d.Full() {
		return false
	}
	*d.openFront() = v
	return true
}

func (d *CircularDeque[T]) TryPopBack() (T, bool) {
	if d.Empty() {
		var zero T
		return zero, false
	}
	return d.PopBack(), true
}

func (d *CircularDeque[T]) TryPopFront() (T, bool) {
	if d.Empty() {
		var zero T
		return zero, false
	}
	return d.PopFront(), true
}

func (d *CircularDeque[T]) TryFront() (T, bool) {
	if d.Empty() {
		var zero T
		return zero, false
	}
	return d.slots.data[d.first], true
}

func (d *CircularDeque[T]) TryBack() (T, bool) {
	if d.Empty() {
		var zero T
		return zero, false
	}
	return d.slots.data[d.adjust(d.count-1)], true
}

func (d *CircularDeque[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < d.count; i++ {
			if !yield(i, d.slots.data[d.adjust(i)]) {
				return
			}
		}
	}
}

func (d *CircularDeque[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < d.count; i++ {
			if !yield(d.slots.data[d.adjust(i)]) {
				return
			}
		}
	}
}

