package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func filledRing(vals ...int) *CircularDeque[int] {
	d := NewCircularDeque[int](len(vals) + 1)
	// start the ring off slot 0 so traversals cross the wrap
	d.PushBack(0)
	d.PopFront()
	d.PushBack(0)
	d.PopFront()
	for _, v := range vals {
		d.PushBack(v)
	}
	return d
}

func TestIndexIterator_Arithmetic(t *testing.T) {
	d := filledRing(10, 20, 30)
	b, e := d.Begin(), d.End()

	assert.Equal(t, 3, e.Diff(b))
	assert.True(t, b.Less(e))
	assert.Equal(t, -1, b.Compare(e))
	assert.Equal(t, 0, b.Next().Prev().Compare(b))
	assert.True(t, b.Advance(3).Equal(e))
	assert.Equal(t, 30, e.Prev().Get())
	assert.Equal(t, 2, e.Prev().Index())

	other := filledRing(10, 20, 30)
	assert.False(t, b.Equal(other.Begin()), "iterators of different containers differ")

	b.Next().Set(25)
	assert.Equal(t, 25, d.At(1))
	*b.Ptr() = 5
	assert.Equal(t, 5, d.Front())
}

func TestSlotIterator_Arithmetic(t *testing.T) {
	d := NewDeque[int](4)
	d.PushBack(1)
	d.PushBack(2)
	b, e := d.Begin(), d.End()

	assert.Equal(t, 2, e.Diff(b))
	assert.Equal(t, 2, e.Slot())
	assert.True(t, b.Less(e))
	assert.Equal(t, 1, e.Compare(b))
	assert.True(t, b.Next().Prev().Equal(b))
	assert.False(t, b.Equal(NewDeque[int](4).Begin()))

	b.Set(9)
	*e.Prev().Ptr() = 8
	assert.Equal(t, []int{9, 8}, d.Data())
}

func TestAlgorithms(t *testing.T) {
	d := filledRing(1, 2, 3, 4)

	assert.Equal(t, 4, Distance(d.Begin(), d.End()))

	var seen []int
	ForEach(d.Begin(), d.End(), func(v int) bool {
		seen = append(seen, v)
		return v < 3
	})
	assert.Equal(t, []int{1, 2, 3}, seen)

	assert.Equal(t, 2, Find(d.Begin(), d.End(), 3).Index())
	assert.True(t, Find(d.Begin(), d.End(), 42).Equal(d.End()))

	dst := make([]int, 3)
	assert.Equal(t, 3, CopyTo(d.Begin(), d.End(), dst))
	assert.Equal(t, []int{1, 2, 3}, dst)

	MoveLeft(d.Begin(), d.End())
	assert.Equal(t, []int{2, 3, 4, 4}, []int{d.At(0), d.At(1), d.At(2), d.At(3)})
}

func TestReverse(t *testing.T) {
	d := NewDeque[string](3)
	d.PushBack("a")
	d.PushBack("b")
	d.PushBack("c")

	rb := MakeReverse[string](d.End())
	re := MakeReverse[string](d.Begin())
	var got []string
	ForEach(rb, re, func(s string) bool {
		got = append(got, s)
		return true
	})
	assert.Equal(t, []string{"c", "b", "a"}, got)
	assert.Equal(t, 3, Distance(rb, re))
	assert.True(t, rb.Next().Prev().Equal(rb))
	assert.True(t, rb.Base().Equal(d.End()))

	rb.Set("z")
	assert.Equal(t, "z", d.Back())

	ring := filledRing(1, 2, 3)
	assert.Equal(t, 3, MakeReverse[int](ring.End()).Get())
	assert.Equal(t, 1, Find(MakeReverse[int](ring.End()), MakeReverse[int](ring.Begin()), 1).Base().Prev().Get())
}

func TestArray(t *testing.T) {
	a := NewArray[int](3)
	assert.Equal(t, 3, a.Len())
	a.Fill(7)
	a.Set(2, 9)
	*a.Ref(0) = 1
	assert.Equal(t, 1, a.Front())
	assert.Equal(t, 9, a.Back())
	assert.Equal(t, 7, a.At(1))
	assert.Equal(t, []int{1, 7, 9}, a.Data())

	b := NewArray[int](3)
	a.Swap(&b)
	assert.Equal(t, []int{0, 0, 0}, a.Data())
	assert.Equal(t, []int{1, 7, 9}, b.Data())

	sum := 0
	for i, v := range b.All() {
		sum += i * v
	}
	assert.Equal(t, 25, sum)

	c := NewArray[int](2)
	assert.Panics(t, func() { a.Swap(&c) })
}
