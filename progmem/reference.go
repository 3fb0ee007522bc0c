package progmem

import (
	"github.com/quickwritereader/memdomain/access"
	"github.com/quickwritereader/memdomain/types"
)

// Reference stands in for a native reference to a T in progmem. Progmem is
// read-only, so a Reference has no way to assign.
type Reference[T any] struct {
	mem  access.Reader
	addr types.Address
}

// MakeReference wraps addr. It panics if T cannot be stored in a domain.
func MakeReference[T any](mem access.Reader, addr types.Address) Reference[T] {
	access.MustValidate[T]()
	return Reference[T]{mem: mem, addr: addr}
}

// Get copies the referenced object out of progmem with exactly one domain
// read. Cache the result when it is needed more than once.
func (r Reference[T]) Get() T {
	return access.Read[T](r.mem, r.addr)
}

// Address returns the raw progmem address.
func (r Reference[T]) Address() types.Address { return r.addr }

// Pointer returns a pointer to the referenced object.
func (r Reference[T]) Pointer() Pointer[T] {
	return Pointer[T]{mem: r.mem, addr: r.addr}
}
