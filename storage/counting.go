package storage

import (
	"fmt"
	"strings"

	"github.com/quickwritereader/memdomain/access"
	"github.com/quickwritereader/memdomain/types"
	"github.com/quickwritereader/memdomain/utils"
)

// Counts tallies primitive calls per access width.
type Counts [types.WidthPtr + 1]int

// Total returns the sum over all widths.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// String renders the non-zero counters sorted by width name.
func (c Counts) String() string {
	m := make(map[string]int)
	for w, v := range c {
		if v != 0 {
			m[types.Width(w).String()] = v
		}
	}
	parts := make([]string, 0, len(m))
	for _, k := range utils.SortKeys(m) {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// CountingReader records every read primitive issued against a Reader.
type CountingReader struct {
	R     access.Reader
	Reads Counts
}

func (c *CountingReader) ReadUint8(addr types.Address) uint8 {
	c.Reads[types.WidthByte]++
	return c.R.ReadUint8(addr)
}

func (c *CountingReader) ReadUint16(addr types.Address) uint16 {
	c.Reads[types.WidthWord]++
	return c.R.ReadUint16(addr)
}

func (c *CountingReader) ReadUint32(addr types.Address) uint32 {
	c.Reads[types.WidthDword]++
	return c.R.ReadUint32(addr)
}

func (c *CountingReader) ReadFloat32(addr types.Address) float32 {
	c.Reads[types.WidthFloat]++
	return c.R.ReadFloat32(addr)
}

func (c *CountingReader) ReadPtr(addr types.Address) types.Address {
	c.Reads[types.WidthPtr]++
	return c.R.ReadPtr(addr)
}

func (c *CountingReader) ReadBlock(dst []byte, addr types.Address) {
	c.Reads[types.WidthBlock]++
	c.R.ReadBlock(dst, addr)
}

// CountingDevice records every primitive issued against a Device.
type CountingDevice struct {
	CountingReader
	D       access.Device
	Writes  Counts
	Updates Counts
}

// NewCountingDevice wraps d.
func NewCountingDevice(d access.Device) *CountingDevice {
	return &CountingDevice{CountingReader: CountingReader{R: d}, D: d}
}

// Reset zeroes all counters.
func (c *CountingDevice) Reset() {
	c.Reads, c.Writes, c.Updates = Counts{}, Counts{}, Counts{}
}

func (c *CountingDevice) WriteUint8(addr types.Address, v uint8) {
	c.Writes[types.WidthByte]++
	c.D.WriteUint8(addr, v)
}

func (c *CountingDevice) WriteUint16(addr types.Address, v uint16) {
	c.Writes[types.WidthWord]++
	c.D.WriteUint16(addr, v)
}

func (c *CountingDevice) WriteUint32(addr types.Address, v uint32) {
	c.Writes[types.WidthDword]++
	c.D.WriteUint32(addr, v)
}

func (c *CountingDevice) WriteFloat32(addr types.Address, v float32) {
	c.Writes[types.WidthFloat]++
	c.D.WriteFloat32(addr, v)
}

func (c *CountingDevice) WritePtr(addr types.Address, v types.Address) {
	c.Writes[types.WidthPtr]++
	c.D.WritePtr(addr, v)
}

func (c *CountingDevice) WriteBlock(addr types.Address, src []byte) {
	c.Writes[types.WidthBlock]++
	c.D.WriteBlock(addr, src)
}

func (c *CountingDevice) UpdateUint8(addr types.Address, v uint8) {
	c.Updates[types.WidthByte]++
	c.D.UpdateUint8(addr, v)
}

func (c *CountingDevice) UpdateUint16(addr types.Address, v uint16) {
	c.Updates[types.WidthWord]++
	c.D.UpdateUint16(addr, v)
}

func (c *CountingDevice) UpdateUint32(addr types.Address, v uint32) {
	c.Updates[types.WidthDword]++
	c.D.UpdateUint32(addr, v)
}

func (c *CountingDevice) UpdateFloat32(addr types.Address, v float32) {
	c.Updates[types.WidthFloat]++
	c.D.UpdateFloat32(addr, v)
}

func (c *CountingDevice) UpdatePtr(addr types.Address, v types.Address) {
	c.Updates[types.WidthPtr]++
	c.D.UpdatePtr(addr, v)
}

func (c *CountingDevice) UpdateBlock(addr types.Address, src []byte) {
	c.Updates[types.WidthBlock]++
	c.D.UpdateBlock(addr, src)
}
