package image

import (
	"bytes"
	"fmt"

	goccyjson "github.com/goccy/go-json"
	"github.com/mus-format/mus-go/varint"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/quickwritereader/memdomain/config"
	"github.com/quickwritereader/memdomain/layout"
	"github.com/quickwritereader/memdomain/types"
)

type codec struct {
	marshal   func(Snapshot) ([]byte, error)
	unmarshal func([]byte, *Snapshot) error
}

var codecs = map[Format]codec{
	FormatJSON: {
		marshal: func(s Snapshot) ([]byte, error) {
			return goccyjson.MarshalIndent(s, "", "  ")
		},
		unmarshal: func(data []byte, s *Snapshot) error {
			return goccyjson.Unmarshal(data, s)
		},
	},
	FormatMsgpack: {
		marshal: func(s Snapshot) ([]byte, error) {
			return msgpack.Marshal(s)
		},
		unmarshal: func(data []byte, s *Snapshot) error {
			return msgpack.Unmarshal(data, s)
		},
	},
	FormatMUS: {
		marshal:   marshalMUS,
		unmarshal: unmarshalMUS,
	},
}

func codecFor(f Format) (codec, error) {
	c, ok := codecs[f]
	if !ok {
		return codec{}, fmt.Errorf("image: %w: %s", ErrUnknownFormat, f)
	}
	return c, nil
}

// musMagic opens every MUS image; the last byte is the layout version.
var musMagic = []byte{'M', 'D', 'I', 2}

// The MUS layout is a flat sequence of varints, with strings and byte
// blocks written as a varint length followed by the raw bytes:
//
//	magic id name progmem_size eeprom_size endurance
//	progmem eeprom wear_count wear... symbol_count (name addr size)...
type musWriter struct {
	buf []byte
}

func (w *musWriter) uint(v uint32) {
	n := len(w.buf)
	size := varint.Uint32.Size(v)
	w.buf = append(w.buf, make([]byte, size)...)
	varint.Uint32.Marshal(v, w.buf[n:])
}

func (w *musWriter) bytes(b []byte) {
	w.uint(uint32(len(b)))
	w.buf = append(w.buf, b...)
}

func marshalMUS(s Snapshot) ([]byte, error) {
	w := &musWriter{buf: make([]byte, 0, len(s.Progmem)+len(s.EEPROM)+64)}
	w.buf = append(w.buf, musMagic...)
	w.bytes([]byte(s.ID))
	w.bytes([]byte(s.Device.Name))
	w.uint(uint32(s.Device.ProgmemSize))
	w.uint(uint32(s.Device.EepromSize))
	w.uint(s.Device.EepromEndurance)
	w.bytes(s.Progmem)
	w.bytes(s.EEPROM)
	w.uint(uint32(len(s.Wear)))
	for _, c := range s.Wear {
		w.uint(c)
	}
	w.uint(uint32(len(s.Symbols)))
	for _, sym := range s.Symbols {
		w.bytes([]byte(sym.Name))
		w.uint(uint32(sym.Addr))
		w.uint(uint32(sym.Size))
	}
	return w.buf, nil
}

type musReader struct {
	buf []byte
	err error
}

func (r *musReader) uint() uint32 {
	if r.err != nil {
		return 0
	}
	v, n, err := varint.Uint32.Unmarshal(r.buf)
	if err != nil {
		r.err = fmt.Errorf("%w: %w", ErrCorrupt, err)
		return 0
	}
	r.buf = r.buf[n:]
	return v
}

// count reads a length prefix and checks that at least n*unit bytes follow.
func (r *musReader) count(unit int) int {
	n := int(r.uint())
	if r.err == nil && n*unit > len(r.buf) {
		r.err = fmt.Errorf("%w: length %d exceeds remaining %d bytes", ErrCorrupt, n, len(r.buf))
		return 0
	}
	return n
}

func (r *musReader) bytes() []byte {
	n := r.count(1)
	if r.err != nil {
		return nil
	}
	out := bytes.Clone(r.buf[:n])
	r.buf = r.buf[n:]
	return out
}

func unmarshalMUS(data []byte, s *Snapshot) error {
	if !bytes.HasPrefix(data, musMagic) {
		return fmt.Errorf("%w: missing MUS header", ErrCorrupt)
	}
	r := &musReader{buf: data[len(musMagic):]}
	out := Snapshot{
		ID:     string(r.bytes()),
		Device: config.Device{
			Name:            string(r.bytes()),
			ProgmemSize:     int(r.uint()),
			EepromSize:      int(r.uint()),
			EepromEndurance: r.uint(),
		},
		Progmem: r.bytes(),
		EEPROM:  r.bytes(),
	}
	if n := r.count(1); n > 0 {
		out.Wear = make([]uint32, n)
		for i := range out.Wear {
			out.Wear[i] = r.uint()
		}
	}
	if n := r.count(3); n > 0 {
		out.Symbols = make([]layout.Symbol, n)
		for i := range out.Symbols {
			out.Symbols[i] = layout.Symbol{
				Name: string(r.bytes()),
				Addr: types.Address(r.uint()),
				Size: int(r.uint()),
			}
		}
	}
	if r.err != nil {
		return r.err
	}
	if len(r.buf) != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(r.buf))
	}
	*s = out
	return nil
}
