package eeprom

import (
	"github.com/quickwritereader/memdomain/access"
	"github.com/quickwritereader/memdomain/types"
)

// Reference stands in for a native reference to a T in eeprom.
type Reference[T any] struct {
	dev  access.Device
	addr types.Address
}

// MakeReference wraps addr. It panics if T cannot be stored in a domain.
func MakeReference[T any](dev access.Device, addr types.Address) Reference[T] {
	access.MustValidate[T]()
	return Reference[T]{dev: dev, addr: addr}
}

// Get copies the object out of eeprom with exactly one domain read.
func (r Reference[T]) Get() T {
	return access.Read[T](r.dev, r.addr)
}

// Set stores v with one update: units already holding the value are not
// programmed again.
func (r Reference[T]) Set(v T) {
	access.Update(r.dev, r.addr, v)
}

// Overwrite stores v with one unconditional write.
func (r Reference[T]) Overwrite(v T) {
	access.Write(r.dev, r.addr, v)
}

func (r Reference[T]) Address() types.Address { return r.addr }

func (r Reference[T]) Pointer() Pointer[T] {
	return Pointer[T]{dev: r.dev, addr: r.addr}
}

// Const drops write access.
func (r Reference[T]) Const() ConstReference[T] {
	return ConstReference[T]{mem: r.dev, addr: r.addr}
}

// ConstReference is a read-only reference to a T in eeprom.
type ConstReference[T any] struct {
	mem  access.Reader
	addr types.Address
}

// MakeConstReference wraps addr for reading only.
func MakeConstReference[T any](mem access.Reader, addr types.Address) ConstReference[T] {
	access.MustValidate[T]()
	return ConstReference[T]{mem: mem, addr: addr}
}

func (r ConstReference[T]) Get() T {
	return access.Read[T](r.mem, r.addr)
}

func (r ConstReference[T]) Address() types.Address { return r.addr }

func (r ConstReference[T]) Pointer() ConstPointer[T] {
	return ConstPointer[T]{mem: r.mem, addr: r.addr}
}
