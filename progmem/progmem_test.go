package progmem

import (
	"testing"

	"github.com/quickwritereader/memdomain/access"
	"github.com/quickwritereader/memdomain/storage"
	"github.com/quickwritereader/memdomain/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y int16
}

func newFlash(t *testing.T) (*storage.Flash, *storage.CountingReader) {
	t.Helper()
	f, err := storage.NewFlash(1024)
	require.NoError(t, err)
	return f, &storage.CountingReader{R: f}
}

func program(t *testing.T, f *storage.Flash, addr types.Address, data []byte) {
	t.Helper()
	require.NoError(t, f.Program(addr, data))
}

func TestPointer_ArithmeticNeverReads(t *testing.T) {
	_, mem := newFlash(t)
	p := MakePointer[uint32](mem, 0x100)

	q := p.Add(3)
	assert.Equal(t, types.Address(0x10C), q.Address())
	assert.Equal(t, types.Address(0x108), q.Prev().Address())
	assert.Equal(t, types.Address(0x110), q.Next().Address())
	assert.Equal(t, types.Address(0x104), q.Sub(2).Address())
	assert.Equal(t, 3, q.Diff(p))
	assert.Equal(t, -3, p.Diff(q))
	assert.True(t, p.Less(q))
	assert.Equal(t, -1, p.Compare(q))
	assert.Equal(t, 0, q.Compare(p.Add(3)))
	assert.True(t, q.Equal(p.Add(3)))

	_ = q.Deref()
	_ = q.At(5)
	assert.Equal(t, 0, mem.Reads.Total())
}

func TestPointer_StructStride(t *testing.T) {
	_, mem := newFlash(t)
	p := MakePointer[point](mem, 0)
	assert.Equal(t, types.Address(8), p.Add(2).Address())
}

func TestReference_GetIssuesOneRead(t *testing.T) {
	f, mem := newFlash(t)
	program(t, f, 0x20, []byte{0x34, 0x12, 0x78, 0x56})

	r := MakeReference[uint16](mem, 0x20)
	assert.Equal(t, uint16(0x1234), r.Get())
	assert.Equal(t, 1, mem.Reads[types.WidthWord])
	assert.Equal(t, 1, mem.Reads.Total())

	assert.Equal(t, uint32(0x56781234), MakePointer[uint32](mem, 0x20).Get())
	assert.Equal(t, r.Address(), r.Pointer().Address())
}

func TestReference_Struct(t *testing.T) {
	f, mem := newFlash(t)
	program(t, f, 0x40, access.Encode(point{X: -5, Y: 9}))

	assert.Equal(t, point{X: -5, Y: 9}, MakeReference[point](mem, 0x40).Get())
	assert.Equal(t, 1, mem.Reads[types.WidthBlock])
}

func TestMakePointer_RejectsNonFixedTypes(t *testing.T) {
	_, mem := newFlash(t)
	assert.Panics(t, func() { MakePointer[[]int16](mem, 0) })
	assert.Panics(t, func() { MakeReference[string](mem, 0) })
}

func TestFollow(t *testing.T) {
	f, mem := newFlash(t)
	// a table of string pointers, as produced by PROGMEM string tables
	program(t, f, 0x80, []byte{'o', 'n', 0})
	program(t, f, 0x90, []byte{'o', 'f', 'f', 0})
	program(t, f, 0x10, access.Encode([2]types.Address{0x80, 0x90}))

	table := MakeArray[types.Address](mem, 0x10, 2)
	second := Follow[uint8](table.Begin().Next())

	assert.Equal(t, types.Address(0x90), second.Address())
	assert.Equal(t, "off", MakeNullString(mem, second.Address()).String())
	assert.Equal(t, 1, mem.Reads[types.WidthPtr])
}

func TestArray(t *testing.T) {
	f, mem := newFlash(t)
	program(t, f, 0x200, access.Encode([4]int16{10, -20, 30, -40}))

	a := MakeArray[int16](mem, 0x200, 4)
	assert.Equal(t, 4, a.Len())
	assert.False(t, a.Empty())
	assert.Equal(t, int16(10), a.Front().Get())
	assert.Equal(t, int16(-40), a.Back().Get())
	assert.Equal(t, int16(30), a.At(2).Get())
	assert.Equal(t, 4, a.End().Diff(a.Begin()))

	var got []int16
	for p := a.Begin(); !p.Equal(a.End()); p = p.Next() {
		got = append(got, p.Get())
	}
	assert.Equal(t, []int16{10, -20, 30, -40}, got)

	got = got[:0]
	for i, v := range a.All() {
		if i == 2 {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int16{10, -20}, got)

	mem.Reads = storage.Counts{}
	dst := make([]int16, 8)
	assert.Equal(t, 4, a.CopyTo(dst))
	assert.Equal(t, []int16{10, -20, 30, -40, 0, 0, 0, 0}, dst)
	assert.Equal(t, 1, mem.Reads.Total())
}

func TestNullString(t *testing.T) {
	f, mem := newFlash(t)
	program(t, f, 0x300, []byte("hello\x00"))

	s := MakeNullString(mem, 0x300)
	assert.False(t, s.IsNil())
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, 6, mem.Reads[types.WidthByte], "length is a byte scan")
	assert.Equal(t, uint8('e'), s.At(1).Get())
	assert.Equal(t, "hello", s.String())
	assert.True(t, s.EqualString("hello"))
	assert.False(t, s.EqualString("hell"))
	assert.False(t, s.EqualString("hello!"))
	assert.True(t, s.Equal(MakeNullString(mem, 0x300)))
	assert.False(t, s.Equal(MakeNullString(mem, 0x301)))
	assert.True(t, MakeNullString(mem, 0).IsNil())
	assert.Equal(t, s.Address(), s.Pointer().Address())

	cached := s.Cached()
	mem.Reads = storage.Counts{}
	assert.Equal(t, 5, cached.Len())
	assert.Equal(t, 0, mem.Reads.Total())
	assert.Equal(t, "hello", cached.String())
}

func TestString(t *testing.T) {
	f, mem := newFlash(t)
	program(t, f, 0x10, []byte("Gopher"))

	s := MakeString(mem, 0x10, 6)
	assert.Equal(t, 6, s.Len())
	assert.False(t, s.Empty())
	assert.Equal(t, "Gopher", s.String())
	assert.Equal(t, uint8('p'), s.At(2).Get())
	assert.Equal(t, 6, s.End().Diff(s.Begin()))
	assert.True(t, s.Equal(MakeString(mem, 0x10, 6)))
	assert.False(t, s.Equal(MakeString(mem, 0x10, 5)))
	assert.Equal(t, "", MakeString(mem, 0x10, 0).String())
}
