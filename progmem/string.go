package progmem

import (
	"strings"

	"github.com/quickwritereader/memdomain/access"
	"github.com/quickwritereader/memdomain/types"
)

// NullString is a null-terminated string in progmem. Its length is not
// stored anywhere.
type NullString struct {
	mem  access.Reader
	addr types.Address
}

// MakeNullString wraps the string starting at addr.
func MakeNullString(mem access.Reader, addr types.Address) NullString {
	return NullString{mem: mem, addr: addr}
}

// IsNil reports whether s holds the null address.
func (s NullString) IsNil() bool { return s.addr == 0 }

func (s NullString) Address() types.Address { return s.addr }

// Len counts characters up to the terminator, one byte read each.
//
// Len is O(n) on every call. Call it once and keep the result, or convert
// to a String.
func (s NullString) Len() int {
	n := 0
	for addr := s.addr; s.mem.ReadUint8(addr) != 0; addr++ {
		n++
	}
	return n
}

// At returns a reference to character i. No bounds checking.
func (s NullString) At(i int) Reference[uint8] {
	return Reference[uint8]{mem: s.mem, addr: s.addr.Offset(i)}
}

// Pointer returns an equivalent character pointer.
func (s NullString) Pointer() Pointer[uint8] {
	return Pointer[uint8]{mem: s.mem, addr: s.addr}
}

// String copies the characters into ordinary memory.
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

// Equal reports whether both strings start at the same address and have
// the same length.
func (s NullString) Equal(o NullString) bool {
	return s.addr == o.addr && s.Len() == o.Len()
}

// EqualString compares the progmem characters with str without copying
// them out first.
func (s NullString) EqualString(str string) bool {
	addr := s.addr
	for i := 0; i < len(str); i++ {
		if s.mem.ReadUint8(addr) != str[i] {
			return false
		}
		addr++
	}
	return s.mem.ReadUint8(addr) == 0
}

// Cached returns a String with the length computed once.
func (s NullString) Cached() String {
	return String{base: s.Pointer(), n: s.Len()}
}

// String is a progmem string whose length is supplied up front and cached,
// so Len is O(1).
type String struct {
	base Pointer[uint8]
	n    int
}

// MakeString wraps n characters at addr. A trailing terminator, if any,
// must not be counted in n.
func MakeString(mem access.Reader, addr types.Address, n int) String {
	return String{base: Pointer[uint8]{mem: mem, addr: addr}, n: n}
}

func (s String) Len() int { return s.n }

func (s String) Empty() bool { return s.n == 0 }

func (s String) At(i int) Reference[uint8] { return s.base.At(i) }

func (s String) Begin() Pointer[uint8] { return s.base }

func (s String) End() Pointer[uint8] { return s.base.Add(s.n) }

// Bytes copies the characters out with a single block read.
func (s String) Bytes() []byte {
	out := make([]byte, s.n)
	if s.n > 0 {
		s.base.mem.ReadBlock(out, s.base.addr)
	}
	return out
}

func (s String) String() string { return string(s.Bytes()) }

// Equal reports whether both strings share address and length.
func (s String) Equal(o String) bool {
	return s.base.addr == o.base.addr && s.n == o.n
}
