// Package dense implements the flat, shape-annotated array view of a domain
// record's primary data field.
//
// An Array is a (Buffer, shape) pair in row-major order. It is a transient
// projection: producing one shares the record's buffer without copying, and
// the shape vector is the only metadata carried across the boundary.
package dense

import (
	"fmt"

	"github.com/visionbuf/visionbuf/buffer"
	"github.com/visionbuf/visionbuf/errs"
)

// Array is a flat buffer plus an ordered sequence of dimension sizes.
type Array struct {
	Buf   *buffer.Buffer
	Shape []int
}

// New wraps a buffer with a shape, validating that the shape's element
// product matches the buffer's element count.
func New(buf *buffer.Buffer, shape []int) (Array, error) {
	n := 1
	for _, dim := range shape {
		if dim < 0 {
			return Array{}, fmt.Errorf("%w: negative dimension %d", errs.ErrShapeMismatch, dim)
		}
		n *= dim
	}
	if n != buf.Len() {
		return Array{}, fmt.Errorf("%w: shape %v implies %d elements, buffer has %d",
			errs.ErrShapeMismatch, shape, n, buf.Len())
	}

	return Array{Buf: buf, Shape: shape}, nil
}

// Rank returns the number of dimensions.
func (a Array) Rank() int {
	return len(a.Shape)
}

// Dim returns the size of dimension i.
func (a Array) Dim(i int) int {
	return a.Shape[i]
}

// AsPtr returns the address of the first element, for zero-copy hand-off.
func (a Array) AsPtr() uintptr {
	return a.Buf.AsPtr()
}
