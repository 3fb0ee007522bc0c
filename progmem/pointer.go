// Package progmem gives value semantics to objects stored in read-only
// program memory.
//
// Progmem cannot be dereferenced with ordinary loads. A Pointer only does
// address arithmetic; the single way to obtain a value is a Reference, whose
// Get issues exactly one domain read through an access.Reader.
//
// Nothing here can verify that an address really lies in progmem. Using a
// Pointer, Reference, Array or string view built from a foreign address is
// undefined behaviour.
package progmem

import (
	"cmp"

	"github.com/quickwritereader/memdomain/access"
	"github.com/quickwritereader/memdomain/types"
)

// Pointer is a cursor over T values in progmem.
type Pointer[T any] struct {
	mem  access.Reader
	addr types.Address
}

// MakePointer wraps addr. It panics if T cannot be stored in a domain.
func MakePointer[T any](mem access.Reader, addr types.Address) Pointer[T] {
	access.MustValidate[T]()
	return Pointer[T]{mem: mem, addr: addr}
}

func stride[T any]() int { return access.SizeOf[T]() }

// Address returns the raw progmem address.
func (p Pointer[T]) Address() types.Address { return p.addr }

// Memory returns the reader the pointer resolves through.
func (p Pointer[T]) Memory() access.Reader { return p.mem }

// IsNil reports whether p holds the null address.
func (p Pointer[T]) IsNil() bool { return p.addr == 0 }

// Add returns p advanced by n elements.
func (p Pointer[T]) Add(n int) Pointer[T] {
	return Pointer[T]{mem: p.mem, addr: p.addr.Offset(n * stride[T]())}
}

// Sub returns p moved back by n elements.
func (p Pointer[T]) Sub(n int) Pointer[T] { return p.Add(-n) }

func (p Pointer[T]) Next() Pointer[T] { return p.Add(1) }

func (p Pointer[T]) Prev() Pointer[T] { return p.Add(-1) }

// Diff returns the distance p - q in elements.
func (p Pointer[T]) Diff(q Pointer[T]) int {
	return (int(p.addr) - int(q.addr)) / stride[T]()
}

func (p Pointer[T]) Equal(q Pointer[T]) bool { return p.addr == q.addr }

func (p Pointer[T]) Less(q Pointer[T]) bool { return p.addr < q.addr }

func (p Pointer[T]) Compare(q Pointer[T]) int { return cmp.Compare(p.addr, q.addr) }

// Deref returns a reference to the element p points at. No read happens.
func (p Pointer[T]) Deref() Reference[T] {
	return Reference[T]{mem: p.mem, addr: p.addr}
}

// At returns a reference to the element n positions after p.
func (p Pointer[T]) At(n int) Reference[T] { return p.Add(n).Deref() }

// Get reads the element p points at.
func (p Pointer[T]) Get() T { return p.Deref().Get() }

// Follow reads a progmem-stored address and returns a pointer to the T it
// designates, in the same progmem.
func Follow[T any](p Pointer[types.Address]) Pointer[T] {
	return MakePointer[T](p.mem, p.Get())
}
