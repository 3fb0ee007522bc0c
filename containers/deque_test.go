package containers

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeque_PushFrontShiftsElements(t *testing.T) {
	d := NewDeque[rune](4)
	d.PushBack('a')
	d.PushBack('b')
	d.PushFront('z')

	assert.Equal(t, []rune{'z', 'a', 'b'}, d.Data())
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, 4, d.Cap())

	assert.Equal(t, 'z', d.PopFront())
	assert.Equal(t, []rune{'a', 'b'}, d.Data())
	assert.Equal(t, 'a', d.Front())
	assert.Equal(t, 'b', d.Back())
}

func TestCircularDeque_Wraparound(t *testing.T) {
	d := NewCircularDeque[int](3)
	d.PushBack(1)
	d.PushBack(2)
	assert.Equal(t, 1, d.PopFront())
	d.PushBack(3)
	d.PushBack(4)

	assert.Equal(t, []int{2, 3, 4}, slices.Collect(d.Values()))
	assert.True(t, d.Full())
	assert.Equal(t, 1, d.First())
	assert.Equal(t, []int{4, 2, 3}, d.Data(), "slot 0 holds the wrapped element")
	assert.Equal(t, 2, d.Front())
	assert.Equal(t, 4, d.Back())
}

func TestCircularDeque_RingChurn(t *testing.T) {
	d := NewCircularDeque[int](3)
	d.PushBack(0)
	d.PushBack(1)
	for i := 2; i < 50; i++ {
		d.PushBack(i)
		assert.Equal(t, i-2, d.PopFront())
		require.Equal(t, 2, d.Len())
		assert.Equal(t, i-1, d.At(0))
		assert.Equal(t, i, d.At(1))
	}
	for i := 0; i < 50; i++ {
		d.PushFront(-i)
		assert.Equal(t, -i, d.Front())
		d.PopBack()
	}
	assert.Equal(t, []int{-49, -48}, slices.Collect(d.Values()))
}

func TestDeque_VariantsAreEquivalent(t *testing.T) {
	const capacity = 7
	lin := NewDeque[int](capacity)
	ring := NewCircularDeque[int](capacity)
	rng := rand.New(rand.NewPCG(1, 2))

	for step := 0; step < 2000; step++ {
		op, v := rng.IntN(5), rng.IntN(1000)
		for _, d := range []Container[int]{lin, ring} {
			switch {
			case op == 0 && !d.Full():
				d.PushBack(v)
			case op == 1 && !d.Full():
				d.PushFront(v)
			case op == 2 && !d.Empty():
				d.PopBack()
			case op == 3 && !d.Empty():
				d.PopFront()
			case op == 4 && !d.Empty():
				d.Set(v%d.Len(), v)
			}
		}
		require.Equal(t, slices.Collect(lin.Values()), slices.Collect(ring.Values()), "step %d", step)
		require.Equal(t, lin.Len(), ring.Len())
		if !lin.Empty() {
			require.Equal(t, lin.Front(), ring.Front())
			require.Equal(t, lin.Back(), ring.Back())
			for i := 0; i < lin.Len(); i++ {
				require.Equal(t, lin.At(i), ring.At(i))
			}
		}
		require.LessOrEqual(t, lin.Len(), lin.Cap())
		require.GreaterOrEqual(t, ring.Len(), 0)
	}
}

func TestDeque_FrontMutationMovesIterators(t *testing.T) {
	lin := NewDeque[int](4)
	ring := NewCircularDeque[int](4)
	for _, v := range []int{1, 2, 3} {
		lin.PushBack(v)
		ring.PushBack(v)
	}

	slot := lin.Begin().Next()
	idx := ring.Begin().Next()
	require.Equal(t, 2, slot.Get())
	require.Equal(t, 2, idx.Get())

	lin.PushFront(0)
	ring.PushFront(0)
	assert.NotEqual(t, 2, slot.Get())
	assert.NotEqual(t, 2, idx.Get())
	assert.Equal(t, 1, idx.Get(), "index 1 now denotes the old front")

	ring.PopFront()
	ring.PopFront()
	assert.Equal(t, 3, idx.Get())
}

func TestDeque_BackMutationKeepsIterators(t *testing.T) {
	d := NewDeque[int](4)
	d.PushBack(10)
	d.PushBack(20)
	it := d.Begin().Next()
	d.PushBack(30)
	d.PopBack()
	d.PushBack(40)
	assert.Equal(t, 20, it.Get())
	assert.Equal(t, 3, Distance(d.Begin(), d.End()))
}

func TestDeque_Erase(t *testing.T) {
	d := NewDeque[string](5)
	for _, s := range []string{"a", "b", "c", "d"} {
		d.PushBack(s)
	}
	it := d.Erase(d.Begin().Next())
	assert.Equal(t, "c", it.Get())
	assert.Equal(t, []string{"a", "c", "d"}, d.Data())
	assert.Equal(t, "", d.slots.At(3), "released slot is zeroed")

	d.EraseAt(2)
	assert.Equal(t, []string{"a", "c"}, d.Data())
	assert.True(t, d.Erase(d.Begin().Next()).Equal(d.End()))
}

func TestCircularDeque_EraseAcrossWrap(t *testing.T) {
	d := NewCircularDeque[int](4)
	d.PushBack(1)
	d.PushBack(2)
	d.PushFront(0)
	d.PushFront(-1)
	require.Equal(t, 2, d.First())

	it := d.Erase(d.Begin().Advance(1))
	assert.Equal(t, 1, it.Get())
	assert.Equal(t, []int{-1, 1, 2}, slices.Collect(d.Values()))

	d.EraseAt(0)
	assert.Equal(t, []int{1, 2}, slices.Collect(d.Values()))
	assert.Equal(t, 2, Distance(d.Begin(), d.End()))
}

func TestDeque_ClearIsIdempotent(t *testing.T) {
	for _, d := range []Container[int]{NewDeque[int](3), NewCircularDeque[int](3)} {
		d.PushBack(1)
		d.PushFront(2)
		d.Clear()
		assert.True(t, d.Empty())
		assert.Equal(t, 0, d.Len())
		d.Clear()
		assert.True(t, d.Empty())
		assert.Equal(t, 0, d.Len())
	}

	ring := NewCircularDeque[int](3)
	ring.PushFront(5)
	ring.Clear()
	assert.Equal(t, 0, ring.First())
	assert.Equal(t, []int{0, 0, 0}, ring.Data())
}

func TestDeque_Emplace(t *testing.T) {
	type pair struct{ k, v int }

	lin := NewDeque[pair](3)
	*lin.EmplaceBack() = pair{1, 10}
	lin.EmplaceFront().k = 7
	assert.Equal(t, []pair{{7, 0}, {1, 10}}, lin.Data())

	ring := NewCircularDeque[pair](3)
	*ring.EmplaceBack() = pair{1, 10}
	ring.EmplaceFront().k = 7
	assert.Equal(t, []pair{{7, 0}, {1, 10}}, slices.Collect(ring.Values()))
	assert.Equal(t, 2, ring.First())
}

func TestDeque_TryVariants(t *testing.T) {
	for _, d := range []Container[int]{NewDeque[int](2), NewCircularDeque[int](2)} {
		_, ok := d.TryPopBack()
		assert.False(t, ok)
		_, ok = d.TryPopFront()
		assert.False(t, ok)
		_, ok = d.TryFront()
		assert.False(t, ok)
		_, ok = d.TryBack()
		assert.False(t, ok)

		assert.True(t, d.TryPushBack(1))
		assert.True(t, d.TryPushFront(0))
		assert.False(t, d.TryPushBack(2))
		assert.False(t, d.TryPushFront(2))
		assert.Equal(t, 2, d.Len())

		v, ok := d.TryFront()
		assert.True(t, ok)
		assert.Equal(t, 0, v)
		v, ok = d.TryBack()
		assert.True(t, ok)
		assert.Equal(t, 1, v)
		v, ok = d.TryPopFront()
		assert.True(t, ok)
		assert.Equal(t, 0, v)
		v, ok = d.TryPopBack()
		assert.True(t, ok)
		assert.Equal(t, 1, v)
	}
}

func TestDeque_Swap(t *testing.T) {
	a, b := NewDeque[int](2), NewDeque[int](2)
	a.PushBack(1)
	b.PushBack(7)
	b.PushBack(8)
	it := a.Begin()
	a.Swap(b)
	assert.Equal(t, []int{7, 8}, a.Data())
	assert.Equal(t, []int{1}, b.Data())
	assert.True(t, it.Equal(a.Begin()), "iterators stay with their deque")
	assert.Equal(t, 7, it.Get())

	r1, r2 := NewCircularDeque[int](3), NewCircularDeque[int](3)
	r1.PushFront(4)
	r1.Swap(r2)
	assert.True(t, r1.Empty())
	assert.Equal(t, 4, r2.Front())

	assert.Panics(t, func() { NewDeque[int](2).Swap(NewDeque[int](3)) })
}

func TestNewDeque_RejectsZeroCapacity(t *testing.T) {
	assert.Panics(t, func() { NewDeque[int](0) })
	assert.Panics(t, func() { NewCircularDeque[int](-1) })
}

func TestDeque_All(t *testing.T) {
	d := NewCircularDeque[string](3)
	d.PushBack("b")
	d.PushFront("a")
	var idx []int
	var vals []string
	for i, v := range d.All() {
		idx = append(idx, i)
		vals = append(vals, v)
	}
	assert.Equal(t, []int{0, 1}, idx)
	assert.Equal(t, []string{"a", "b"}, vals)

	l := NewDeque[string](3)
	l.PushBack("x")
	l.PushBack("y")
	for i, v := range l.All() {
		assert.Equal(t, l.At(i), v)
		break
	}
	*l.Ref(1) = "w"
	l.Set(0, "v")
	assert.Equal(t, []string{"v", "w"}, slices.Collect(l.Values()))
}
