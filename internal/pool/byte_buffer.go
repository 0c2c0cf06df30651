// Package pool provides pooled byte buffers for the blob encoder.
package pool

import "sync"

// BlobBufferDefaultSize is the initial capacity of a pooled buffer;
// BlobBufferMaxThreshold is the largest capacity returned to the pool.
const (
	BlobBufferDefaultSize  = 1024 * 16  // 16KiB
	BlobBufferMaxThreshold = 1024 * 256 // 256KiB
)

// ByteBuffer is a grow-only byte slice wrapper reused across encodes.
type ByteBuffer struct {
	B []byte
}

// Bytes returns the accumulated bytes.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the number of accumulated bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer but keeps its capacity.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// MustWrite appends data, growing as needed.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Grow ensures capacity for at least n more bytes.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}
	grown := make([]byte, len(bb.B), len(bb.B)+n)
	copy(grown, bb.B)
	bb.B = grown
}

var blobBufferPool = sync.Pool{
	New: func() any {
		return &ByteBuffer{B: make([]byte, 0, BlobBufferDefaultSize)}
	},
}

// GetBlobBuffer obtains a reset buffer from the pool.
func GetBlobBuffer() *ByteBuffer {
	bb, _ := blobBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutBlobBuffer returns a buffer to the pool. Oversized buffers are dropped
// so a single large encode doesn't pin memory forever.
func PutBlobBuffer(bb *ByteBuffer) {
	if cap(bb.B) > BlobBufferMaxThreshold {
		return
	}
	blobBufferPool.Put(bb)
}
