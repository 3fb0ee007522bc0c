// Package layout places named objects one after another inside a memory
// domain and remembers where each one went, in placement order.
package layout

import (
	"errors"
	"fmt"
	"iter"

	jsoniter "github.com/json-iterator/go"

	"github.com/quickwritereader/memdomain/access"
	"github.com/quickwritereader/memdomain/types"
)

var (
	ErrDuplicate   = errors.New("symbol already placed")
	ErrOverflow    = errors.New("domain is full")
	ErrInvalidSize = errors.New("invalid object size")
	ErrNotFound    = errors.New("symbol not found")
)

// Symbol is one placed object.
type Symbol struct {
	Name string        `json:"name" msgpack:"name"`
	Addr types.Address `json:"addr" msgpack:"addr"`
	Size int           `json:"size" msgpack:"size"`
}

// End returns the first address after the object.
func (s Symbol) End() int { return int(s.Addr) + s.Size }

type node struct {
	sym  Symbol
	prev *node
	next *node
}

// Layout is an ordered symbol table over the region [base, base+size).
type Layout struct {
	data map[string]*node
	head *node
	tail *node
	base types.Address
	size int
	next int
}

// New returns an empty layout for size bytes starting at base.
func New(base types.Address, size int) (*Layout, error) {
	if size <= 0 || int(base)+size > 1<<16 {
		return nil, fmt.Errorf("layout: %w: %d bytes at 0x%04X", ErrInvalidSize, size, uint16(base))
	}
	return &Layout{
		data: make(map[string]*node),
		base: base,
		size: size,
		next: int(base),
	}, nil
}

func (l *Layout) Base() types.Address { return l.base }

// Size returns the size of the region.
func (l *Layout) Size() int { return l.size }

// Len returns the number of symbols.
func (l *Layout) Len() int { return len(l.data) }

// Used returns the bytes between base and the end of the last placement.
func (l *Layout) Used() int { return l.next - int(l.base) }

func (l *Layout) Remaining() int { return l.size - l.Used() }

// Place reserves size bytes for name right after the previous placement.
func (l *Layout) Place(name string, size int) (types.Address, error) {
	if size <= 0 {
		return 0, fmt.Errorf("layout: place %q: %w: %d", name, ErrInvalidSize, size)
	}
	if _, ok := l.data[name]; ok {
		return 0, fmt.Errorf("layout: place %q: %w", name, ErrDuplicate)
	}
	if size > l.Remaining() {
		return 0, fmt.Errorf("layout: place %q (%d bytes, %d left): %w", name, size, l.Remaining(), ErrOverflow)
	}
	sym := Symbol{Name: name, Addr: types.Address(l.next), Size: size}
	l.append(sym)
	l.next += size
	return sym.Addr, nil
}

// PlaceT reserves room for one T.
func PlaceT[T any](l *Layout, name string) (types.Address, error) {
	return PlaceArray[T](l, name, 1)
}

// PlaceArray reserves room for n consecutive T values.
func PlaceArray[T any](l *Layout, name string, n int) (types.Address, error) {
	if err := access.Validate[T](); err != nil {
		return 0, fmt.Errorf("layout: place %q: %w", name, err)
	}
	return l.Place(name, n*access.SizeOf[T]())
}

// Lookup returns the symbol placed under name.
func (l *Layout) Lookup(name string) (Symbol, bool) {
	n, ok := l.data[name]
	if !ok {
		return Symbol{}, false
	}
	return n.sym, true
}

// MustLookup is Lookup for names known to exist.
func (l *Layout) MustLookup(name string) Symbol {
	n, ok := l.data[name]
	if !ok {
		panic(fmt.Sprintf("layout: %q: %v", name, ErrNotFound))
	}
	return n.sym
}

// Remove drops name. Space is reclaimed only from the top of the region;
// removing an inner symbol leaves a hole.
func (l *Layout) Remove(name string) error {
	n, ok := l.data[name]
	if !ok {
		return fmt.Errorf("layout: remove %q: %w", name, ErrNotFound)
	}
	delete(l.data, name)
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	if n.sym.End() == l.next {
		l.next = int(l.base)
		for m := l.head; m != nil; m = m.next {
			l.next = max(l.next, m.sym.End())
		}
	}
	return nil
}

// Symbols returns every symbol in placement order.
func (l *Layout) Symbols() []Symbol {
	out := make([]Symbol, 0, len(l.data))
	for n := l.head; n != nil; n = n.next {
		out = append(out, n.sym)
	}
	return out
}

func (l *Layout) All() iter.Seq2[string, Symbol] {
	return func(yield func(string, Symbol) bool) {
		for n := l.head; n != nil; n = n.next {
			if !yield(n.sym.Name, n.sym) {
				return
			}
		}
	}
}

// FromSymbols rebuilds a layout from a symbol list such as one kept in a
// device image. Symbols must lie inside the region and not overlap.
func FromSymbols(base types.Address, size int, syms []Symbol) (*Layout, error) {
	l, err := New(base, size)
	if err != nil {
		return nil, err
	}
	for _, s := range syms {
		if err := l.adopt(s); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *Layout) adopt(s Symbol) error {
	if _, ok := l.data[s.Name]; ok {
		return fmt.Errorf("layout: adopt %q: %w", s.Name, ErrDuplicate)
	}
	if s.Size <= 0 || s.Addr < l.base || s.End() > int(l.base)+l.size {
		return fmt.Errorf("layout: adopt %q at 0x%04X: %w: %d", s.Name, uint16(s.Addr), ErrInvalidSize, s.Size)
	}
	for n := l.head; n != nil; n = n.next {
		if int(s.Addr) < n.sym.End() && int(n.sym.Addr) < s.End() {
			return fmt.Errorf("layout: adopt %q: overlaps %q: %w", s.Name, n.sym.Name, ErrDuplicate)
		}
	}
	l.append(s)
	l.next = max(l.next, s.End())
	return nil
}

func (l *Layout) append(s Symbol) {
	n := &node{sym: s}
	l.data[s.Name] = n
	if l.tail == nil {
		l.head, l.tail = n, n
		return
	}
	n.prev = l.tail
	l.tail.next = n
	l.tail = n
}

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// MarshalJSON encodes the table as an object keyed by name, in placement
// order.
func (l *Layout) MarshalJSON() ([]byte, error) {
	stream := codec.BorrowStream(nil)
	defer codec.ReturnStream(stream)
	stream.WriteObjectStart()
	for n := l.head; n != nil; n = n.next {
		if n != l.head {
			stream.WriteMore()
		}
		stream.WriteObjectField(n.sym.Name)
		stream.WriteObjectStart()
		stream.WriteObjectField("addr")
		stream.WriteUint16(uint16(n.sym.Addr))
		stream.WriteMore()
		stream.WriteObjectField("size")
		stream.WriteInt(n.sym.Size)
		stream.WriteObjectEnd()
	}
	stream.WriteObjectEnd()
	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

// UnmarshalJSON replaces the table with the symbols of data, keeping their
// order. A zero Layout covers the whole near address space.
func (l *Layout) UnmarshalJSON(data []byte) error {
	var syms []Symbol
	it := codec.BorrowIterator(data)
	defer codec.ReturnIterator(it)
	it.ReadObjectCB(func(it *jsoniter.Iterator, name string) bool {
		s := Symbol{Name: name}
		it.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
			switch field {
			case "addr":
				s.Addr = types.Address(it.ReadUint16())
			case "size":
				s.Size = it.ReadInt()
			default:
				it.Skip()
			}
			return it.Error == nil
		})
		syms = append(syms, s)
		return it.Error == nil
	})
	if it.Error != nil {
		return fmt.Errorf("layout: decode: %w", it.Error)
	}
	base, size := l.base, l.size
	if size == 0 {
		base = 0
		size = 1 << 16
	}
	fresh, err := FromSymbols(base, size, syms)
	if err != nil {
		return err
	}
	*l = *fresh
	return nil
}
