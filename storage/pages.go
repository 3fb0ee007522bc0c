package storage

import (
	"fmt"

	"github.com/quickwritereader/memdomain/types"
)

// ErasedByte is the value held by a cell that has never been programmed.
const ErasedByte = 0xFF

// pages keeps the cells of a domain in fixed-size units. Units that were
// never touched are not allocated and read as erased.
type pages struct {
	unitSize uint32
	capacity uint32
	data     map[uint32][]byte
}

func newPages(capacity int) *pages {
	return &pages{
		unitSize: 256,
		capacity: uint32(capacity),
		data:     make(map[uint32][]byte),
	}
}

func (p *pages) parseAddress(addr uint32) (baseAddr, inUnitAddr uint32) {
	inUnitAddr = addr % p.unitSize
	baseAddr = addr - inUnitAddr
	return
}

// checkRange panics for accesses outside the domain: the primitives have
// no error channel, so this is where undefined behaviour surfaces.
func (p *pages) checkRange(addr types.Address, n int) {
	if uint32(addr)+uint32(n) > p.capacity {
		panic(fmt.Sprintf("storage: access of %d bytes at 0x%04X beyond capacity %d", n, uint16(addr), p.capacity))
	}
}

func (p *pages) inRange(addr uint32, n int) bool {
	return addr+uint32(n) <= p.capacity
}

func (p *pages) unit(addr uint32, create bool) []byte {
	baseAddr, _ := p.parseAddress(addr)
	u, ok := p.data[baseAddr]
	if !ok && create {
		u = make([]byte, p.unitSize)
		for i := range u {
			u[i] = ErasedByte
		}
		p.data[baseAddr] = u
	}
	return u
}

func (p *pages) get(addr uint32) byte {
	u := p.unit(addr, false)
	if u == nil {
		return ErasedByte
	}
	_, in := p.parseAddress(addr)
	return u[in]
}

func (p *pages) set(addr uint32, b byte) {
	u := p.unit(addr, true)
	_, in := p.parseAddress(addr)
	u[in] = b
}

func (p *pages) read(dst []byte, addr uint32) {
	curr := addr
	offset := 0
	for offset < len(dst) {
		base, in := p.parseAddress(curr)
		n := min(int(base+p.unitSize-curr), len(dst)-offset)
		if u := p.unit(curr, false); u != nil {
			copy(dst[offset:offset+n], u[in:in+uint32(n)])
		} else {
			for i := offset; i < offset+n; i++ {
				dst[i] = ErasedByte
			}
		}
		offset += n
		curr += uint32(n)
	}
}

func (p *pages) write(addr uint32, src []byte) {
	curr := addr
	offset := 0
	for offset < len(src) {
		base, in := p.parseAddress(curr)
		n := min(int(base+p.unitSize-curr), len(src)-offset)
		u := p.unit(curr, true)
		copy(u[in:in+uint32(n)], src[offset:offset+n])
		offset += n
		curr += uint32(n)
	}
}

// bytes materialises the whole domain.
func (p *pages) bytes() []byte {
	out := make([]byte, p.capacity)
	p.read(out, 0)
	return out
}

func (p *pages) reset() {
	clear(p.data)
}
