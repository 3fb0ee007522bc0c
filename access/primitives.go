package access

import (
	"github.com/quickwritereader/memdomain/types"
)

// Reader is the set of read primitives of a memory domain. Each width maps
// to its own native instruction on the target; multi-byte units are
// little-endian.
//
// Implementations do not validate addresses. Reading an address that does
// not belong to the domain is undefined behaviour.
type Reader interface {
	ReadUint8(addr types.Address) uint8
	ReadUint16(addr types.Address) uint16
	ReadUint32(addr types.Address) uint32
	ReadFloat32(addr types.Address) float32
	// ReadPtr reads a domain-stored near address.
	ReadPtr(addr types.Address) types.Address
	// ReadBlock copies len(dst) bytes starting at addr into dst.
	ReadBlock(dst []byte, addr types.Address)
}

// Writer is the set of unconditional write primitives. Every call programs
// the addressed cells even if they already hold the value.
type Writer interface {
	WriteUint8(addr types.Address, v uint8)
	WriteUint16(addr types.Address, v uint16)
	WriteUint32(addr types.Address, v uint32)
	WriteFloat32(addr types.Address, v float32)
	WritePtr(addr types.Address, v types.Address)
	WriteBlock(addr types.Address, src []byte)
}

// Updater is the set of compare-then-write primitives. Each unit of the
// access width is read back first and the physical write is skipped when
// the stored pattern already matches.
type Updater interface {
	UpdateUint8(addr types.Address, v uint8)
	UpdateUint16(addr types.Address, v uint16)
	UpdateUint32(addr types.Address, v uint32)
	UpdateFloat32(addr types.Address, v float32)
	UpdatePtr(addr types.Address, v types.Address)
	UpdateBlock(addr types.Address, src []byte)
}

// Device is a read/write domain such as eeprom.
type Device interface {
	Reader
	Writer
	Updater
}
