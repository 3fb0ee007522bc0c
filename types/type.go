package types

// Address is a near address inside a memory domain.
//
// Addresses carry no domain tag: whether an Address really lies in progmem
// or eeprom is known only to the caller.
type Address uint16

// PointerSize is the size in bytes of an Address stored inside a domain.
const PointerSize = 2

// Width is the access class used to move a value in or out of a domain.
type Width uint8

const (
	WidthBlock Width = 0 // generic block copy
	WidthByte  Width = 1
	WidthWord  Width = 2
	WidthDword Width = 3
	WidthFloat Width = 4
	WidthPtr   Width = 5 // domain-stored address
)

// String returns the human-readable name of the width
func (w Width) String() string {
	switch w {
	case WidthByte:
		return "byte"
	case WidthWord:
		return "word"
	case WidthDword:
		return "dword"
	case WidthFloat:
		return "float"
	case WidthPtr:
		return "ptr"
	case WidthBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Size returns the number of bytes moved by one access of width w, or 0 for
// WidthBlock whose size depends on the value type.
func (w Width) Size() int {
	switch w {
	case WidthByte:
		return 1
	case WidthWord, WidthPtr:
		return 2
	case WidthDword, WidthFloat:
		return 4
	default:
		return 0
	}
}

// Offset returns a advanced by n bytes. Overflow wraps like the 16-bit
// address registers it models.
func (a Address) Offset(n int) Address {
	return Address(int(a) + n)
}
