// Package buffer implements the shared, reference-counted byte buffer that
// every visionbuf representation is built on.
//
// A Buffer is an owned, contiguous block of memory plus an element type tag
// and element count. It is the only place in the library that allocates or
// copies raw data; domain records and codecs borrow or share Buffers instead.
//
// Ownership model: every logical holder of a Buffer accounts for one
// reference. Sharing a Buffer (Retain) increments the count; dropping a
// holder (Release) decrements it. A Buffer is never mutated while a second
// holder exists: in-place transforms must first obtain exclusive access via
// TryUniqueMut, and fall back to copying the bytes when it fails. This makes
// concurrent reads safe without locks, since a shared Buffer is immutable by
// construction.
//
// Memory itself is reclaimed by the garbage collector; the reference count
// exists to gate mutation, not to free memory.
package buffer

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/visionbuf/visionbuf/errs"
	"github.com/visionbuf/visionbuf/format"
)

// Buffer is an owned, contiguous, byte-addressable block of memory with an
// element type tag. The zero value is not usable; construct Buffers with the
// From* functions.
type Buffer struct {
	data []byte
	elem format.ElementType
	refs *atomic.Int32
}

func newBuffer(data []byte, elem format.ElementType) *Buffer {
	refs := &atomic.Int32{}
	refs.Store(1)

	return &Buffer{data: data, elem: elem, refs: refs}
}

// FromBytes takes ownership of raw bytes tagged with the given element type.
//
// The byte length must be a whole multiple of the element width. The caller
// must not use the slice after handing it over.
func FromBytes(data []byte, elem format.ElementType) (*Buffer, error) {
	size, err := format.ElementSize(elem)
	if err != nil {
		return nil, err
	}
	if len(data)%int(size) != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %s width %d",
			errs.ErrIncompatibleLayout, len(data), elem, size)
	}

	return newBuffer(data, elem), nil
}

// FromUint8 takes ownership of a uint8 slice without copying.
func FromUint8(values []uint8) *Buffer {
	return newBuffer(values, format.ElementUint8)
}

// FromUint16 takes ownership of a uint16 slice, reinterpreting its backing
// array as bytes without copying.
func FromUint16(values []uint16) *Buffer {
	return newBuffer(sliceAsBytes(values, 2), format.ElementUint16)
}

// FromUint32 takes ownership of a uint32 slice, reinterpreting its backing
// array as bytes without copying.
func FromUint32(values []uint32) *Buffer {
	return newBuffer(sliceAsBytes(values, 4), format.ElementUint32)
}

// FromFloat32 takes ownership of a float32 slice, reinterpreting its backing
// array as bytes without copying.
func FromFloat32(values []float32) *Buffer {
	return newBuffer(sliceAsBytes(values, 4), format.ElementFloat32)
}

// sliceAsBytes reinterprets a typed slice as its underlying bytes.
// Host byte order; a Buffer never crosses a machine boundary in this form.
func sliceAsBytes[T uint16 | uint32 | float32](values []T, width int) []byte {
	if len(values) == 0 {
		return nil
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(values)*width)
}

// ElementType returns the element type tag.
func (b *Buffer) ElementType() format.ElementType {
	return b.elem
}

// Len returns the number of elements.
func (b *Buffer) Len() int {
	size, err := format.ElementSize(b.elem)
	if err != nil || size == 0 {
		return 0
	}

	return len(b.data) / int(size)
}

// ByteLen returns the length in bytes.
func (b *Buffer) ByteLen() int {
	return len(b.data)
}

// Bytes returns the underlying bytes. The slice must be treated as read-only
// unless it was obtained through TryUniqueMut.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Uint8s returns the elements as a uint8 slice without copying.
// Fails with ErrElementTypeMismatch if the buffer holds another type.
func (b *Buffer) Uint8s() ([]uint8, error) {
	if b.elem != format.ElementUint8 {
		return nil, fmt.Errorf("%w: buffer holds %s, want Uint8", errs.ErrElementTypeMismatch, b.elem)
	}

	return b.data, nil
}

// Uint16s returns the elements as a uint16 slice without copying.
func (b *Buffer) Uint16s() ([]uint16, error) {
	if b.elem != format.ElementUint16 {
		return nil, fmt.Errorf("%w: buffer holds %s, want Uint16", errs.ErrElementTypeMismatch, b.elem)
	}

	return bytesAsSlice[uint16](b.data, 2), nil
}

// Uint32s returns the elements as a uint32 slice without copying.
func (b *Buffer) Uint32s() ([]uint32, error) {
	if b.elem != format.ElementUint32 {
		return nil, fmt.Errorf("%w: buffer holds %s, want Uint32", errs.ErrElementTypeMismatch, b.elem)
	}

	return bytesAsSlice[uint32](b.data, 4), nil
}

// Float32s returns the elements as a float32 slice without copying.
func (b *Buffer) Float32s() ([]float32, error) {
	if b.elem != format.ElementFloat32 {
		return nil, fmt.Errorf("%w: buffer holds %s, want Float32", errs.ErrElementTypeMismatch, b.elem)
	}

	return bytesAsSlice[float32](b.data, 4), nil
}

func bytesAsSlice[T uint16 | uint32 | float32](data []byte, width int) []T {
	if len(data) == 0 {
		return nil
	}

	return unsafe.Slice((*T)(unsafe.Pointer(&data[0])), len(data)/width)
}

// ViewAs returns a new Buffer sharing the same bytes reinterpreted as the
// given element type. The reinterpretation is zero-copy and only legal when
// the element widths match; otherwise it fails with ErrIncompatibleLayout.
//
// The returned Buffer counts as a new holder of the memory.
func (b *Buffer) ViewAs(elem format.ElementType) (*Buffer, error) {
	from, err := format.ElementSize(b.elem)
	if err != nil {
		return nil, err
	}
	to, err := format.ElementSize(elem)
	if err != nil {
		return nil, err
	}
	if from != to {
		return nil, fmt.Errorf("%w: cannot view %s (%d bytes) as %s (%d bytes)",
			errs.ErrIncompatibleLayout, b.elem, from, elem, to)
	}

	b.refs.Add(1)

	return &Buffer{data: b.data, elem: elem, refs: b.refs}, nil
}

// Retain registers a new holder of the buffer and returns it.
func (b *Buffer) Retain() *Buffer {
	b.refs.Add(1)
	return b
}

// Release drops one holder. After calling Release the caller must not touch
// the buffer again through this reference.
func (b *Buffer) Release() {
	b.refs.Add(-1)
}

// RefCount returns the current number of holders. Useful for tests and for
// asserting zero-copy behavior; racy as a decision input unless the caller
// knows no other holder is being created concurrently.
func (b *Buffer) RefCount() int {
	return int(b.refs.Load())
}

// TryUniqueMut returns the underlying bytes for in-place mutation if and
// only if the calling holder is the only one. When it returns false the
// caller must copy (see CloneBytes) before mutating.
func (b *Buffer) TryUniqueMut() ([]byte, bool) {
	if b.refs.Load() != 1 {
		return nil, false
	}

	return b.data, true
}

// CloneBytes returns a new uniquely owned Buffer with a private copy of the
// bytes and the same element type.
func (b *Buffer) CloneBytes() *Buffer {
	dup := make([]byte, len(b.data))
	copy(dup, b.data)

	return newBuffer(dup, b.elem)
}

// AsPtr returns the address of the first byte, or 0 for an empty buffer.
//
// The pointer is only valid while the Buffer is reachable; callers handing
// it to a host environment must not retain it beyond the record's lifetime.
func (b *Buffer) AsPtr() uintptr {
	if len(b.data) == 0 {
		return 0
	}

	return uintptr(unsafe.Pointer(&b.data[0]))
}

// SharesMemory reports whether two buffers are backed by the same bytes.
func (b *Buffer) SharesMemory(other *Buffer) bool {
	return b.AsPtr() == other.AsPtr() && b.ByteLen() == other.ByteLen()
}
