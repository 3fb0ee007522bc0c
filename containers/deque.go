package containers

import "iter"

// Deque is a double-ended queue over contiguous storage. Logical index 0 is
// always physical slot 0, so back operations are O(1) and front operations
// shift every element.
//
// Iterators are SlotIterators: PushBack and PopBack invalidate only End,
// while PushFront, PopFront and Erase move every element under them.
type Deque[T any] struct {
	slots Array[T]
	count int
}

// NewDeque returns an empty deque holding at most capacity elements. It
// panics if capacity is not positive.
func NewDeque[T any](capacity int) *Deque[T] {
	checkCapacity(capacity)
	return &Deque[T]{slots: NewArray[T](capacity)}
}

func (d *Deque[T]) Len() int { return d.count }

// Cap returns the fixed capacity.
func (d *Deque[T]) Cap() int { return d.slots.Len() }

func (d *Deque[T]) Empty() bool { return d.count == 0 }

func (d *Deque[T]) Full() bool { return d.count == d.slots.Len() }

// Front returns the first element. The deque must not be empty.
func (d *Deque[T]) Front() T {
	if Safety && d.Empty() {
		var zero T
		return zero
	}
	return d.slots.data[0]
}

// Back returns the last element. The deque must not be empty.
func (d *Deque[T]) Back() T {
	if Safety && d.Empty() {
		var zero T
		return zero
	}
	return d.slots.data[d.count-1]
}

// At returns element i; i must be below Len.
func (d *Deque[T]) At(i int) T {
	return d.slots.data[i]
}

func (d *Deque[T]) Set(i int, v T) {
	d.slots.data[i] = v
}

// Ref returns the slot of element i.
func (d *Deque[T]) Ref(i int) *T { return &d.slots.data[i] }

// Data returns the live elements in order. The slice aliases the deque.
func (d *Deque[T]) Data() []T { return d.slots.data[:d.count:d.count] }

func (d *Deque[T]) Begin() SlotIterator[T] { return SlotIterator[T]{base: &d.slots} }

func (d *Deque[T]) End() SlotIterator[T] { return SlotIterator[T]{base: &d.slots, pos: d.count} }

// PushBack appends v. The deque must not be full.
func (d *Deque[T]) PushBack(v T) {
	if Safety && d.Full() {
		return
	}
	d.slots.data[d.count] = v
	d.count++
}

// EmplaceBack appends a zero value and returns its slot for in-place
// initialisation. It returns nil when Safety is on and the deque is full.
func (d *Deque[T]) EmplaceBack() *T {
	if Safety && d.Full() {
		return nil
	}
	p := &d.slots.data[d.count]
	var zero T
	*p = zero
	d.count++
	return p
}

// PopBack removes and returns the last element.
func (d *Deque[T]) PopBack() T {
	if Safety && d.Empty() {
		var zero T
		return zero
	}
	d.count--
	v := d.slots.data[d.count]
	var zero T
	d.slots.data[d.count] = zero
	return v
}

// PushFront inserts v before the first element, shifting every element one
// slot up.
func (d *Deque[T]) PushFront(v T) {
	if Safety && d.Full() {
		return
	}
	d.openFront()
	d.slots.data[0] = v
}

// EmplaceFront inserts a zero value at the front and returns its slot.
func (d *Deque[T]) EmplaceFront() *T {
	if Safety && d.Full() {
		return nil
	}
	d.openFront()
	var zero T
	d.slots.data[0] = zero
	return &d.slots.data[0]
}

func (d *Deque[T]) openFront() {
	for i := d.count; i > 0; i-- {
		d.slots.data[i] = d.slots.data[i-1]
	}
	d.count++
}

// PopFront removes and returns the first element, shifting the rest down.
func (d *Deque[T]) PopFront() T {
	if Safety && d.Empty() {
		var zero T
		return zero
	}
	v := d.slots.data[0]
	d.Erase(d.Begin())
	return v
}

// Erase removes the element at it and returns an iterator to the element
// that followed it, which now occupies the same slot.
func (d *Deque[T]) Erase(it SlotIterator[T]) SlotIterator[T] {
	end := d.End()
	if Safety && (it.base != &d.slots || it.pos < 0 || !it.Less(end)) {
		return end
	}
	MoveLeft(it, end)
	d.count--
	var zero T
	d.slots.data[d.count] = zero
	return it
}

// EraseAt removes element i.
func (d *Deque[T]) EraseAt(i int) {
	d.Erase(d.Begin().Advance(i))
}

// Clear removes every element. Released slots are zeroed so the deque holds
// no references to them.
func (d *Deque[T]) Clear() {
	clear(d.slots.data[:d.count])
	d.count = 0
}

// Swap exchanges the contents of two deques of equal capacity in O(1).
// Iterators stay with their deque and now denote the swapped-in contents.
func (d *Deque[T]) Swap(o *Deque[T]) {
	d.slots.Swap(&o.slots)
	d.count, o.count = o.count, d.count
}

func (d *Deque[T]) TryPushBack(v T) bool {
	if d.Full() {
		return false
	}
	d.slots.data[d.count] = v
	d.count++
	return true
}

func (d *Deque[T]) TryPushFront(v T) bool {
	if d.Full() {
		return false
	}
	d.openFront()
	d.slots.data[0] = v
	return true
}

func (d *Deque[T]) TryPopBack() (T, bool) {
	if d.Empty() {
		var zero T
		return zero, false
	}
	return d.PopBack(), true
}

func (d *Deque[T]) TryPopFront() (T, bool) {
	if d.Empty() {
		var zero T
		return zero, false
	}
	return d.PopFront(), true
}

func (d *Deque[T]) TryFront() (T, bool) {
	if d.Empty() {
		var zero T
		return zero, false
	}
	return d.slots.data[0], true
}

func (d *Deque[T]) TryBack() (T, bool) {
	if d.Empty() {
		var zero T
		return zero, false
	}
	return d.slots.data[d.count-1], true
}

// All yields the live elements with their logical index.
func (d *Deque[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < d.count; i++ {
			if !yield(i, d.slots.data[i]) {
				return
			}
		}
	}
}

func (d *Deque[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < d.count; i++ {
			if !yield(d.slots.data[i]) {
				return
			}
		}
	}
}

