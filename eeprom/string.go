package eeprom

import (
	"strings"

	"github.com/quickwritereader/memdomain/access"
	"github.com/quickwritereader/memdomain/types"
)

// NullString is a null-terminated string in eeprom, read-only through this
// view.
type NullString struct {
	mem  access.Reader
	addr types.Address
}

func MakeNullString(mem access.Reader, addr types.Address) NullString {
	return NullString{mem: mem, addr: addr}
}

func (s NullString) IsNil() bool { return s.addr == 0 }

// Len scans for the terminator. It is O(n) on every call.
func (s NullString) Len() int {
	n := 0
	for addr := s.addr; s.mem.ReadUint8(addr) != 0; addr++ {
		n++
	}
	return n
}

func (s NullString) At(i int) ConstReference[uint8] {
	return ConstReference[uint8]{mem: s.mem, addr: s.addr.Offset(i)}
}

func (s NullString) String() string {
	var b strings.Builder
	for addr := s.addr; ; addr++ {
		c := s.mem.ReadUint8(addr)
		if c == 0 {
			return b.String()
		}
		b.WriteByte(c)
	}
}

// StoreString updates the cells at dst with str followed by a terminator
// and returns a view of it.
func StoreString(dev access.Device, dst types.Address, str string) NullString {
	buf := make([]byte, len(str)+1)
	copy(buf, str)
	dev.UpdateBlock(dst, buf)
	return NullString{mem: dev, addr: dst}
}
