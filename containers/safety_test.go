//go:build containers_safety

package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafety_ViolationsAreNoOps(t *testing.T) {
	for name, d := range map[string]Container[int]{
		"linear":   NewDeque[int](1),
		"circular": NewCircularDeque[int](1),
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 0, d.PopBack())
			assert.Equal(t, 0, d.PopFront())
			assert.Equal(t, 0, d.Front())
			assert.Equal(t, 0, d.Back())
			assert.Equal(t, 0, d.Len())

			d.PushBack(1)
			d.PushBack(2)
			d.PushFront(3)
			assert.Equal(t, 1, d.Len())
			assert.Equal(t, 1, d.Front())
		})
	}
}

func TestSafety_IndexingStaysUnchecked(t *testing.T) {
	d := NewDeque[int](1)
	d.PushBack(1)
	assert.Panics(t, func() { d.At(5) })
	assert.Panics(t, func() { d.Set(-1, 9) })
	assert.Equal(t, 1, d.At(0))
}

func TestSafety_EraseOutOfRange(t *testing.T) {
	d := NewDeque[int](2)
	d.PushBack(1)
	assert.True(t, d.Erase(d.End()).Equal(d.End()))
	assert.Equal(t, 1, d.Len())
	assert.Nil(t, func() *int { d.PushBack(2); return d.EmplaceBack() }())

	r := NewCircularDeque[int](2)
	r.PushBack(1)
	assert.True(t, r.Erase(r.End()).Equal(r.End()))
	assert.True(t, r.Erase(NewCircularDeque[int](2).Begin()).Equal(r.End()))
	assert.Equal(t, 1, r.Len())
}
