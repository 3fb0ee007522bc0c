// Package eeprom gives value semantics to objects stored in eeprom.
//
// The pattern mirrors package progmem: pointers do address arithmetic only
// and references are the sole path to the domain. Because eeprom is
// writable there are two flavours of each. Pointer and Reference may
// assign; ConstPointer and ConstReference have no assignment at all, so an
// accidental write through them does not compile.
//
// Assignment comes in two forms. Set compares before programming and skips
// cells that already hold the value, saving write cycles. Overwrite always
// programs.
//
// Addresses are not validated. Using a view of an address outside eeprom
// is undefined behaviour, as is interleaving writes with an interrupt
// handler touching the same cells.
package eeprom

import (
	"cmp"

	"github.com/quickwritereader/memdomain/access"
	"github.com/quickwritereader/memdomain/types"
)

// Pointer is a mutable cursor over T values in eeprom.
type Pointer[T any] struct {
	dev  access.Device
	addr types.Address
}

// MakePointer wraps addr. It panics if T cannot be stored in a domain.
func MakePointer[T any](dev access.Device, addr types.Address) Pointer[T] {
	access.MustValidate[T]()
	return Pointer[T]{dev: dev, addr: addr}
}

func stride[T any]() int { return access.SizeOf[T]() }

func (p Pointer[T]) Address() types.Address { return p.addr }

func (p Pointer[T]) Device() access.Device { return p.dev }

func (p Pointer[T]) IsNil() bool { return p.addr == 0 }

// Add returns p advanced by n elements.
func (p Pointer[T]) Add(n int) Pointer[T] {
	return Pointer[T]{dev: p.dev, addr: p.addr.Offset(n * stride[T]())}
}

func (p Pointer[T]) Sub(n int) Pointer[T] { return p.Add(-n) }

func (p Pointer[T]) Next() Pointer[T] { return p.Add(1) }

func (p Pointer[T]) Prev() Pointer[T] { return p.Add(-1) }

// Diff returns p - q in elements.
func (p Pointer[T]) Diff(q Pointer[T]) int {
	return (int(p.addr) - int(q.addr)) / stride[T]()
}

func (p Pointer[T]) Equal(q Pointer[T]) bool { return p.addr == q.addr }

func (p Pointer[T]) Less(q Pointer[T]) bool { return p.addr < q.addr }

func (p Pointer[T]) Compare(q Pointer[T]) int { return cmp.Compare(p.addr, q.addr) }

// Deref returns a reference to the element at p. No access happens.
func (p Pointer[T]) Deref() Reference[T] {
	return Reference[T]{dev: p.dev, addr: p.addr}
}

func (p Pointer[T]) At(n int) Reference[T] { return p.Add(n).Deref() }

// Const drops write access.
func (p Pointer[T]) Const() ConstPointer[T] {
	return ConstPointer[T]{mem: p.dev, addr: p.addr}
}

// ConstPointer is a read-only cursor over T values in eeprom.
type ConstPointer[T any] struct {
	mem  access.Reader
	addr types.Address
}

// MakeConstPointer wraps addr for reading only.
func MakeConstPointer[T any](mem access.Reader, addr types.Address) ConstPointer[T] {
	access.MustValidate[T]()
	return ConstPointer[T]{mem: mem, addr: addr}
}

func (p ConstPointer[T]) Address() types.Address { return p.addr }

func (p ConstPointer[T]) IsNil() bool { return p.addr == 0 }

func (p ConstPointer[T]) Add(n int) ConstPointer[T] {
	return ConstPointer[T]{mem: p.mem, addr: p.addr.Offset(n * stride[T]())}
}

func (p ConstPointer[T]) Sub(n int) ConstPointer[T] { return p.Add(-n) }

func (p ConstPointer[T]) Next() ConstPointer[T] { return p.Add(1) }

func (p ConstPointer[T]) Prev() ConstPointer[T] { return p.Add(-1) }

func (p ConstPointer[T]) Diff(q ConstPointer[T]) int {
	return (int(p.addr) - int(q.addr)) / stride[T]()
}

func (p ConstPointer[T]) Equal(q ConstPointer[T]) bool { return p.addr == q.addr }

func (p ConstPointer[T]) Less(q ConstPointer[T]) bool { return p.addr < q.addr }

func (p ConstPointer[T]) Compare(q ConstPointer[T]) int { return cmp.Compare(p.addr, q.addr) }

func (p ConstPointer[T]) Deref() ConstReference[T] {
	return ConstReference[T]{mem: p.mem, addr: p.addr}
}

func (p ConstPointer[T]) At(n int) ConstReference[T] { return p.Add(n).Deref() }

// Follow reads an eeprom-stored address and returns a pointer to the T it
// designates, in the same eeprom.
func Follow[T any](p Pointer[types.Address]) Pointer[T] {
	return MakePointer[T](p.dev, p.Deref().Get())
}
