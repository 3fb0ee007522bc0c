package storage

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"

	"github.com/quickwritereader/memdomain/types"
)

// DefaultEndurance is the rated number of program cycles per cell.
const DefaultEndurance = 100_000

// EEPROM is a simulated byte-addressable non-volatile domain. Every cell
// program is counted so that wear and the effect of update primitives can
// be observed.
type EEPROM struct {
	mem       *pages
	wear      []uint32
	writes    uint64
	endurance uint32
	logger    *slog.Logger
}

// Option configures an EEPROM.
type Option func(*EEPROM)

// WithEndurance sets the rated program cycles per cell.
func WithEndurance(cycles uint32) Option {
	return func(e *EEPROM) { e.endurance = cycles }
}

// WithLogger reports cells that exceed their endurance to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *EEPROM) { e.logger = logger }
}

// NewEEPROM creates an erased eeprom of the given size in bytes.
func NewEEPROM(size int, opts ...Option) (*EEPROM, error) {
	if size <= 0 || size > MaxDomainSize {
		return nil, fmt.Errorf("eeprom: %w: %d", ErrInvalidSize, size)
	}
	e := &EEPROM{
		mem:       newPages(size),
		wear:      make([]uint32, size),
		endurance: DefaultEndurance,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Size returns the capacity in bytes.
func (e *EEPROM) Size() int { return int(e.mem.capacity) }

// Endurance returns the rated program cycles per cell.
func (e *EEPROM) Endurance() uint32 { return e.endurance }

// Writes returns the number of cell programs issued so far.
func (e *EEPROM) Writes() uint64 { return e.writes }

// ResetWrites zeroes the program counter without touching wear.
func (e *EEPROM) ResetWrites() { e.writes = 0 }

// Wear returns a copy of the per-cell program counters.
func (e *EEPROM) Wear() []uint32 {
	out := make([]uint32, len(e.wear))
	copy(out, e.wear)
	return out
}

// CellWear returns the program count of a single cell.
func (e *EEPROM) CellWear(addr types.Address) uint32 {
	e.mem.checkRange(addr, 1)
	return e.wear[addr]
}

// Worn returns the addresses of cells programmed more often than rated.
func (e *EEPROM) Worn() []types.Address {
	var out []types.Address
	for i, w := range e.wear {
		if w > e.endurance {
			out = append(out, types.Address(i))
		}
	}
	return out
}

// Bytes returns a copy of the whole content.
func (e *EEPROM) Bytes() []byte { return e.mem.bytes() }

// Restore replaces content and wear counters without counting programs.
// A nil wear slice zeroes the counters.
func (e *EEPROM) Restore(image []byte, wear []uint32) error {
	if len(image) != e.Size() {
		return fmt.Errorf("eeprom: %w: got %d, want %d", ErrSizeMismatch, len(image), e.Size())
	}
	if wear != nil && len(wear) != e.Size() {
		return fmt.Errorf("eeprom: wear table: %w: got %d, want %d", ErrSizeMismatch, len(wear), e.Size())
	}
	e.mem.reset()
	e.mem.write(0, image)
	clear(e.wear)
	copy(e.wear, wear)
	e.writes = 0
	return nil
}

// program is the single native write path: one cell, one cycle.
func (e *EEPROM) program(addr uint32, b byte) {
	e.mem.set(addr, b)
	e.writes++
	e.wear[addr]++
	if e.wear[addr] == e.endurance+1 && e.logger != nil {
		e.logger.Warn("eeprom cell exceeded rated endurance",
			slog.Int("addr", int(addr)),
			slog.Uint64("endurance", uint64(e.endurance)))
	}
}

func (e *EEPROM) programBlock(addr types.Address, src []byte) {
	e.mem.checkRange(addr, len(src))
	for i, b := range src {
		e.program(uint32(addr)+uint32(i), b)
	}
}

// updateUnit compares a whole access unit and programs it only on mismatch.
func (e *EEPROM) updateUnit(addr types.Address, src []byte) {
	e.mem.checkRange(addr, len(src))
	for i, b := range src {
		if e.mem.get(uint32(addr)+uint32(i)) != b {
			e.programBlock(addr, src)
			return
		}
	}
}

func (e *EEPROM) ReadUint8(addr types.Address) uint8 {
	e.mem.checkRange(addr, 1)
	return e.mem.get(uint32(addr))
}

func (e *EEPROM) ReadUint16(addr types.Address) uint16 {
	var b [2]byte
	e.ReadBlock(b[:], addr)
	return binary.LittleEndian.Uint16(b[:])
}

func (e *EEPROM) ReadUint32(addr types.Address) uint32 {
	var b [4]byte
	e.ReadBlock(b[:], addr)
	return binary.LittleEndian.Uint32(b[:])
}

func (e *EEPROM) ReadFloat32(addr types.Address) float32 {
	return math.Float32frombits(e.ReadUint32(addr))
}

func (e *EEPROM) ReadPtr(addr types.Address) types.Address {
	return types.Address(e.ReadUint16(addr))
}

func (e *EEPROM) ReadBlock(dst []byte, addr types.Address) {
	e.mem.checkRange(addr, len(dst))
	e.mem.read(dst, uint32(addr))
}

func (e *EEPROM) WriteUint8(addr types.Address, v uint8) {
	e.programBlock(addr, []byte{v})
}

func (e *EEPROM) WriteUint16(addr types.Address, v uint16) {
	e.programBlock(addr, binary.LittleEndian.AppendUint16(nil, v))
}

func (e *EEPROM) WriteUint32(addr types.Address, v uint32) {
	e.programBlock(addr, binary.LittleEndian.AppendUint32(nil, v))
}

func (e *EEPROM) WriteFloat32(addr types.Address, v float32) {
	e.WriteUint32(addr, math.Float32bits(v))
}

func (e *EEPROM) WritePtr(addr types.Address, v types.Address) {
	e.WriteUint16(addr, uint16(v))
}

func (e *EEPROM) WriteBlock(addr types.Address, src []byte) {
	e.programBlock(addr, src)
}

func (e *EEPROM) UpdateUint8(addr types.Address, v uint8) {
	e.updateUnit(addr, []byte{v})
}

func (e *EEPROM) UpdateUint16(addr types.Address, v uint16) {
	e.updateUnit(addr, binary.LittleEndian.AppendUint16(nil, v))
}

func (e *EEPROM) UpdateUint32(addr types.Address, v uint32) {
	e.updateUnit(addr, binary.LittleEndian.AppendUint32(nil, v))
}

func (e *EEPROM) UpdateFloat32(addr types.Address, v float32) {
	e.UpdateUint32(addr, math.Float32bits(v))
}

func (e *EEPROM) UpdatePtr(addr types.Address, v types.Address) {
	e.UpdateUint16(addr, uint16(v))
}

// UpdateBlock compares and programs byte by byte, the unit of a block.
func (e *EEPROM) UpdateBlock(addr types.Address, src []byte) {
	e.mem.checkRange(addr, len(src))
	for i, b := range src {
		cell := uint32(addr) + uint32(i)
		if e.mem.get(cell) != b {
			e.program(cell, b)
		}
	}
}
