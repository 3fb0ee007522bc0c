package access

import (
	"encoding/binary"
	"errors"
	"fmt"
	"reflect"

	"github.com/quickwritereader/memdomain/types"
	"github.com/quickwritereader/memdomain/utils"
)

// ErrNotFixedSize is returned by Validate for types whose representation
// cannot be copied byte for byte: pointers, slices, maps, strings,
// interfaces, and structs containing any of them. Structs with unexported
// fields are rejected too since their fields cannot be decoded.
var ErrNotFixedSize = errors.New("type is not fixed-size")

var scratch = utils.NewBufferPool()

// SizeOf returns the number of bytes T occupies inside a domain, or -1 if T
// cannot live in a domain at all.
func SizeOf[T any]() int {
	if !copyable(reflect.TypeFor[T]()) {
		return -1
	}
	var zero T
	return binary.Size(zero)
}

// copyable walks arrays and structs. Blank fields are skipped by the
// decoder and so are allowed.
func copyable(rt reflect.Type) bool {
	switch rt.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Slice, reflect.Map,
		reflect.Chan, reflect.Func, reflect.Interface, reflect.String:
		return false
	case reflect.Array:
		return copyable(rt.Elem())
	case reflect.Struct:
		for i := range rt.NumField() {
			f := rt.Field(i)
			if f.Name == "_" {
				continue
			}
			if !f.IsExported() || !copyable(f.Type) {
				return false
			}
		}
	}
	return true
}

// Validate reports whether T may be stored in a domain.
func Validate[T any]() error {
	if SizeOf[T]() < 0 {
		return fmt.Errorf("%w: %s", ErrNotFixedSize, reflect.TypeFor[T]())
	}
	return nil
}

// MustValidate is Validate for use at construction time of domain views. It
// panics on failure and returns the size of T otherwise.
func MustValidate[T any]() int {
	if err := Validate[T](); err != nil {
		panic("access: " + err.Error())
	}
	return SizeOf[T]()
}

// WidthOf reports which primitive moves a T.
func WidthOf[T any]() types.Width {
	var zero T
	switch any(zero).(type) {
	case uint8, int8, bool:
		return types.WidthByte
	case uint16, int16:
		return types.WidthWord
	case uint32, int32:
		return types.WidthDword
	case float32:
		return types.WidthFloat
	case types.Address:
		return types.WidthPtr
	}
	if SizeOf[T]() == 1 {
		return types.WidthByte
	}
	return types.WidthBlock
}

// Encode returns the domain representation of v.
func Encode[T any](v T) []byte {
	size := MustValidate[T]()
	buf := make([]byte, size)
	if _, err := binary.Encode(buf, binary.LittleEndian, v); err != nil {
		panic("access: encode: " + err.Error())
	}
	return buf
}

// Decode rebuilds a T from its domain representation.
func Decode[T any](b []byte) T {
	var v T
	if _, err := binary.Decode(b, binary.LittleEndian, &v); err != nil {
		panic("access: decode: " + err.Error())
	}
	return v
}

// Read materialises the T stored at addr.
func Read[T any](r Reader, addr types.Address) T {
	var v T
	switch p := any(&v).(type) {
	case *uint8:
		*p = r.ReadUint8(addr)
	case *int8:
		*p = int8(r.ReadUint8(addr))
	case *bool:
		*p = r.ReadUint8(addr) != 0
	case *uint16:
		*p = r.ReadUint16(addr)
	case *int16:
		*p = int16(r.ReadUint16(addr))
	case *uint32:
		*p = r.ReadUint32(addr)
	case *int32:
		*p = int32(r.ReadUint32(addr))
	case *float32:
		*p = r.ReadFloat32(addr)
	case *types.Address:
		*p = r.ReadPtr(addr)
	default:
		size := MustValidate[T]()
		buf := scratch.Acquire(size)
		if size == 1 {
			buf[0] = r.ReadUint8(addr)
		} else {
			r.ReadBlock(buf, addr)
		}
		v = Decode[T](buf)
		scratch.Release(buf)
	}
	return v
}

// Write stores v at addr, always programming the cells.
func Write[T any](w Writer, addr types.Address, v T) {
	switch x := any(v).(type) {
	case uint8:
		w.WriteUint8(addr, x)
	case int8:
		w.WriteUint8(addr, uint8(x))
	case bool:
		w.WriteUint8(addr, boolByte(x))
	case uint16:
		w.WriteUint16(addr, x)
	case int16:
		w.WriteUint16(addr, uint16(x))
	case uint32:
		w.WriteUint32(addr, x)
	case int32:
		w.WriteUint32(addr, uint32(x))
	case float32:
		w.WriteFloat32(addr, x)
	case types.Address:
		w.WritePtr(addr, x)
	default:
		buf := encodeScratch(v)
		if len(buf) == 1 {
			w.WriteUint8(addr, buf[0])
		} else {
			w.WriteBlock(addr, buf)
		}
		scratch.Release(buf)
	}
}

// Update stores v at addr, skipping every unit that already holds the
// desired pattern.
func Update[T any](u Updater, addr types.Address, v T) {
	switch x := any(v).(type) {
	case uint8:
		u.UpdateUint8(addr, x)
	case int8:
		u.UpdateUint8(addr, uint8(x))
	case bool:
		u.UpdateUint8(addr, boolByte(x))
	case uint16:
		u.UpdateUint16(addr, x)
	case int16:
		u.UpdateUint16(addr, uint16(x))
	case uint32:
		u.UpdateUint32(addr, x)
	case int32:
		u.UpdateUint32(addr, uint32(x))
	case float32:
		u.UpdateFloat32(addr, x)
	case types.Address:
		u.UpdatePtr(addr, x)
	default:
		buf := encodeScratch(v)
		if len(buf) == 1 {
			u.UpdateUint8(addr, buf[0])
		} else {
			u.UpdateBlock(addr, buf)
		}
		scratch.Release(buf)
	}
}

// ReadSlice fills dst with len(dst) consecutive elements starting at addr
// using a single block copy.
func ReadSlice[T any](r Reader, addr types.Address, dst []T) {
	if len(dst) == 0 {
		return
	}
	size := MustValidate[T]() * len(dst)
	buf := scratch.Acquire(size)
	r.ReadBlock(buf, addr)
	if _, err := binary.Decode(buf, binary.LittleEndian, dst); err != nil {
		panic("access: decode: " + err.Error())
	}
	scratch.Release(buf)
}

// WriteSlice stores src at addr with a single unconditional block write.
func WriteSlice[T any](w Writer, addr types.Address, src []T) {
	if len(src) == 0 {
		return
	}
	buf := encodeSliceScratch(src)
	w.WriteBlock(addr, buf)
	scratch.Release(buf)
}

// UpdateSlice stores src at addr with a single block update.
func UpdateSlice[T any](u Updater, addr types.Address, src []T) {
	if len(src) == 0 {
		return
	}
	buf := encodeSliceScratch(src)
	u.UpdateBlock(addr, buf)
	scratch.Release(buf)
}

func encodeScratch[T any](v T) []byte {
	buf := scratch.Acquire(MustValidate[T]())
	if _, err := binary.Encode(buf, binary.LittleEndian, v); err != nil {
		panic("access: encode: " + err.Error())
	}
	return buf
}

func encodeSliceScratch[T any](src []T) []byte {
	buf := scratch.Acquire(MustValidate[T]() * len(src))
	if _, err := binary.Encode(buf, binary.LittleEndian, src); err != nil {
		panic("access: encode: " + err.Error())
	}
	return buf
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
