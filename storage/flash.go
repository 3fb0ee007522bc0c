package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/quickwritereader/memdomain/types"
)

// MaxDomainSize is the largest domain reachable through a near address.
const MaxDomainSize = 1 << 16

var (
	ErrInvalidSize  = errors.New("domain size out of range")
	ErrBeyondDomain = errors.New("access beyond the domain capacity")
	ErrSizeMismatch = errors.New("image size does not match the domain")
)

// Flash is a simulated progmem domain. Program code can only read it;
// contents are placed out of band with Program, the way a programmer
// burns an image before the device runs.
type Flash struct {
	mem *pages
}

// NewFlash creates an erased flash of the given size in bytes.
func NewFlash(size int) (*Flash, error) {
	if size <= 0 || size > MaxDomainSize {
		return nil, fmt.Errorf("flash: %w: %d", ErrInvalidSize, size)
	}
	return &Flash{mem: newPages(size)}, nil
}

// Size returns the capacity in bytes.
func (f *Flash) Size() int { return int(f.mem.capacity) }

// Program burns data at addr.
func (f *Flash) Program(addr types.Address, data []byte) error {
	if !f.mem.inRange(uint32(addr), len(data)) {
		return fmt.Errorf("flash: program %d bytes at 0x%04X: %w", len(data), uint16(addr), ErrBeyondDomain)
	}
	f.mem.write(uint32(addr), data)
	return nil
}

// Load replaces the whole content with image, which must match Size.
func (f *Flash) Load(image []byte) error {
	if len(image) != f.Size() {
		return fmt.Errorf("flash: %w: got %d, want %d", ErrSizeMismatch, len(image), f.Size())
	}
	f.mem.reset()
	f.mem.write(0, image)
	return nil
}

// Bytes returns a copy of the whole content.
func (f *Flash) Bytes() []byte { return f.mem.bytes() }

// Erase resets every cell to ErasedByte.
func (f *Flash) Erase() { f.mem.reset() }

func (f *Flash) ReadUint8(addr types.Address) uint8 {
	f.mem.checkRange(addr, 1)
	return f.mem.get(uint32(addr))
}

func (f *Flash) ReadUint16(addr types.Address) uint16 {
	var b [2]byte
	f.ReadBlock(b[:], addr)
	return binary.LittleEndian.Uint16(b[:])
}

func (f *Flash) ReadUint32(addr types.Address) uint32 {
	var b [4]byte
	f.ReadBlock(b[:], addr)
	return binary.LittleEndian.Uint32(b[:])
}

func (f *Flash) ReadFloat32(addr types.Address) float32 {
	return math.Float32frombits(f.ReadUint32(addr))
}

func (f *Flash) ReadPtr(addr types.Address) types.Address {
	return types.Address(f.ReadUint16(addr))
}

func (f *Flash) ReadBlock(dst []byte, addr types.Address) {
	f.mem.checkRange(addr, len(dst))
	f.mem.read(dst, uint32(addr))
}
