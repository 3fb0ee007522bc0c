package eeprom

import (
	"testing"

	"github.com/quickwritereader/memdomain/storage"
	"github.com/quickwritereader/memdomain/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settings struct {
	Volume     uint8
	Brightness uint16
	Threshold  float32
	Next       types.Address
}

func newEEPROM(t *testing.T) (*storage.EEPROM, *storage.CountingDevice) {
	t.Helper()
	e, err := storage.NewEEPROM(512)
	require.NoError(t, err)
	return e, storage.NewCountingDevice(e)
}

func TestReference_RoundTripPerWidth(t *testing.T) {
	_, dev := newEEPROM(t)

	b := MakeReference[uint8](dev, 0)
	b.Set(0xA5)
	assert.Equal(t, uint8(0xA5), b.Get())

	w := MakeReference[int16](dev, 2)
	w.Set(-300)
	assert.Equal(t, int16(-300), w.Get())

	d := MakeReference[uint32](dev, 4)
	d.Set(0x89ABCDEF)
	assert.Equal(t, uint32(0x89ABCDEF), d.Get())

	f := MakeReference[float32](dev, 8)
	f.Set(6.25)
	assert.Equal(t, float32(6.25), f.Get())

	s := MakeReference[settings](dev, 16)
	want := settings{Volume: 7, Brightness: 900, Threshold: 0.75, Next: 0x40}
	s.Set(want)
	assert.Equal(t, want, s.Get())

	assert.Equal(t, 1, dev.Updates[types.WidthByte])
	assert.Equal(t, 1, dev.Updates[types.WidthWord])
	assert.Equal(t, 1, dev.Updates[types.WidthDword])
	assert.Equal(t, 1, dev.Updates[types.WidthFloat])
	assert.Equal(t, 1, dev.Updates[types.WidthBlock])
	assert.Equal(t, 5, dev.Reads.Total(), "each Get is exactly one read")
	assert.Equal(t, 0, dev.Writes.Total())
}

func TestReference_UpdateSkipsMatchingCell(t *testing.T) {
	e, dev := newEEPROM(t)
	cell := MakeReference[uint8](dev, 0x10)

	cell.Set(0x42)
	assert.Equal(t, uint64(1), e.Writes())

	e.ResetWrites()
	cell.Set(0x42)
	assert.Equal(t, uint64(0), e.Writes())
}

func TestReference_OverwriteAlwaysPrograms(t *testing.T) {
	e, dev := newEEPROM(t)
	cell := MakeReference[uint16](dev, 0x20)

	cell.Overwrite(0x0102)
	cell.Overwrite(0x0102)
	assert.Equal(t, uint64(4), e.Writes())
	assert.Equal(t, 2, dev.Writes[types.WidthWord])
	assert.Equal(t, uint16(0x0102), cell.Get())
}

func TestConstViews(t *testing.T) {
	_, dev := newEEPROM(t)
	r := MakeReference[int32](dev, 0x30)
	r.Set(-99)

	c := r.Const()
	assert.Equal(t, int32(-99), c.Get())
	assert.Equal(t, r.Address(), c.Address())
	assert.Equal(t, types.Address(0x30), c.Pointer().Address())

	cp := MakeConstPointer[int32](dev, 0x30)
	assert.Equal(t, int32(-99), cp.Deref().Get())
	assert.Equal(t, types.Address(0x38), cp.Add(2).Address())
	assert.Equal(t, 2, cp.Add(2).Diff(cp))
	assert.True(t, cp.Less(cp.Next()))
	assert.True(t, cp.Next().Prev().Equal(cp))
	assert.Equal(t, 1, cp.Next().Compare(cp))
	assert.Equal(t, types.Address(0x2C), cp.Sub(1).Address())
	assert.False(t, cp.IsNil())
	assert.Equal(t, int32(-99), cp.At(0).Get())
}

func TestPointer_Arithmetic(t *testing.T) {
	_, dev := newEEPROM(t)
	p := MakePointer[settings](dev, 0x100)

	assert.Equal(t, types.Address(0x100+2*9), p.Add(2).Address())
	assert.Equal(t, 2, p.Add(2).Diff(p))
	assert.True(t, p.Next().Prev().Equal(p))
	assert.Equal(t, -1, p.Compare(p.Next()))
	assert.True(t, p.Sub(1).Less(p))
	assert.True(t, MakePointer[uint8](dev, 0).IsNil())
	assert.Equal(t, p.Address(), p.Const().Address())
	assert.Equal(t, 0, dev.Reads.Total()+dev.Writes.Total()+dev.Updates.Total())
	assert.NotNil(t, p.Device())

	p.At(1).Set(settings{Volume: 1})
	assert.Equal(t, uint8(1), p.Next().Deref().Get().Volume)
	assert.Equal(t, p.Next(), p.At(1).Pointer())
}

func TestFollow(t *testing.T) {
	_, dev := newEEPROM(t)
	head := MakeReference[types.Address](dev, 0)
	head.Set(0x80)
	MakeReference[uint16](dev, 0x80).Set(777)

	target := Follow[uint16](head.Pointer())
	assert.Equal(t, types.Address(0x80), target.Address())
	assert.Equal(t, uint16(777), target.Deref().Get())
	assert.Equal(t, 1, dev.Reads[types.WidthPtr])
}

func TestArray(t *testing.T) {
	e, dev := newEEPROM(t)
	a := MakeArray[uint16](dev, 0x40, 4)

	assert.Equal(t, 4, a.Len())
	assert.False(t, a.Empty())

	a.Fill(5)
	a.Set(3, 9)
	assert.Equal(t, uint16(5), a.Front().Get())
	assert.Equal(t, uint16(9), a.Back().Get())
	assert.Equal(t, uint16(5), a.Get(1))
	assert.Equal(t, 4, a.End().Diff(a.Begin()))

	e.ResetWrites()
	a.Fill(5)
	assert.Equal(t, uint64(2), e.Writes(), "only the last element changes")

	dst := make([]uint16, 4)
	assert.Equal(t, 4, a.CopyTo(dst))
	assert.Equal(t, []uint16{5, 5, 5, 5}, dst)

	e.ResetWrites()
	assert.Equal(t, 4, a.Store([]uint16{5, 6, 5, 5, 100}))
	assert.Equal(t, uint64(1), e.Writes())

	e.ResetWrites()
	assert.Equal(t, 2, a.Overwrite([]uint16{1, 2}))
	assert.Equal(t, uint64(4), e.Writes())

	var got []uint16
	for _, v := range a.All() {
		got = append(got, v)
	}
	assert.Equal(t, []uint16{1, 2, 5, 5}, got)
	assert.Equal(t, uint16(2), a.At(1).Get())
}

func TestNullString(t *testing.T) {
	e, dev := newEEPROM(t)

	s := StoreString(dev, 0x60, "ssid")
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, "ssid", s.String())
	assert.Equal(t, uint8('i'), s.At(2).Get())
	assert.False(t, s.IsNil())

	e.ResetWrites()
	StoreString(dev, 0x60, "ssid")
	assert.Equal(t, uint64(0), e.Writes())

	assert.True(t, MakeNullString(dev, 0).IsNil())
}

func TestMakePointer_RejectsNonFixedTypes(t *testing.T) {
	_, dev := newEEPROM(t)
	assert.Panics(t, func() { MakePointer[[]byte](dev, 0) })
	assert.Panics(t, func() { MakeReference[map[int]int](dev, 0) })
	assert.Panics(t, func() { MakeConstReference[string](dev, 0) })
}
