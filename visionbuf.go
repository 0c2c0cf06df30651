// Package visionbuf provides typed, zero-copy value containers for vision
// pipeline data.
//
// The core types are Image (pixel buffer + dimensions + encoding + optional
// name) and BBox (box coordinates + confidences + labels + encoding), with a
// few companion records (LaserScan2D, JointsPosition, ImageInVideo). Every
// record converts losslessly between three representations:
//
//   - the record itself: an immutable value object over shared buffers
//   - a tagged-union columnar structure (one array per named field)
//   - a dense array (flat buffer + shape vector) of its primary field
//
// Conversions reuse the underlying memory whenever the byte layout permits.
// In-place transforms (RGB8<->BGR8 reorder, XYXY<->XYWH recompute) only
// mutate a buffer the caller uniquely owns; a shared buffer is copied first,
// so records are safe to read concurrently without locks.
//
// # Basic Usage
//
// Creating an image and moving it across representations:
//
//	name := "camera.front"
//	img, err := visionbuf.NewRGB8Image(pixels, 640, 480, &name)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Columnar interchange (zero-copy for the pixel buffer)
//	rec := img.IntoColumnar()
//	img, err = visionbuf.ImageFromColumnar(rec)
//
//	// Encoding conversion, in place when uniquely owned
//	bgr, err := img.IntoBGR8()
//
// Serializing a record for interprocess hand-off:
//
//	data, err := visionbuf.Marshal(bgr.IntoColumnar(),
//	    blob.WithCompression(format.CompressionZstd),
//	)
//	rec, err = visionbuf.Unmarshal(data)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the frame,
// columnar, dense and blob packages, simplifying the common cases. For
// fine-grained control, use those packages directly.
package visionbuf

import (
	"github.com/visionbuf/visionbuf/blob"
	"github.com/visionbuf/visionbuf/columnar"
	"github.com/visionbuf/visionbuf/dense"
	"github.com/visionbuf/visionbuf/format"
	"github.com/visionbuf/visionbuf/frame"
)

// Re-exported record types. Methods (IntoRGB8, IntoColumnar, IntoDense, …)
// live on the frame types.
type (
	Image          = frame.Image
	BBox           = frame.BBox
	LaserScan2D    = frame.LaserScan2D
	JointsPosition = frame.JointsPosition
	ImageInVideo   = frame.ImageInVideo
)

// NewRGB8Image creates an RGB8 image, taking ownership of the pixel data.
// Fails with errs.ErrShapeMismatch when len(data) != width*height*3.
func NewRGB8Image(data []uint8, width, height uint32, name *string) (*Image, error) {
	return frame.NewRGB8(data, width, height, name)
}

// NewBGR8Image creates a BGR8 image, taking ownership of the pixel data.
func NewBGR8Image(data []uint8, width, height uint32, name *string) (*Image, error) {
	return frame.NewBGR8(data, width, height, name)
}

// NewGray8Image creates a GRAY8 image, taking ownership of the pixel data.
func NewGray8Image(data []uint8, width, height uint32, name *string) (*Image, error) {
	return frame.NewGray8(data, width, height, name)
}

// NewXYXYBBox creates bounding boxes in corner-coordinate form.
// Fails with errs.ErrShapeMismatch when the data, confidence and label
// lengths don't describe the same box count.
func NewXYXYBBox(data, confidence []float32, labels []string) (*BBox, error) {
	return frame.NewXYXY(data, confidence, labels)
}

// NewXYWHBBox creates bounding boxes in center-and-size form.
func NewXYWHBBox(data, confidence []float32, labels []string) (*BBox, error) {
	return frame.NewXYWH(data, confidence, labels)
}

// ImageFromColumnar rebuilds an Image from a columnar record, taking
// ownership of the record's pixel buffer.
func ImageFromColumnar(rec *columnar.Record) (*Image, error) {
	return frame.ImageFromColumnar(rec)
}

// BBoxFromColumnar rebuilds a BBox from a columnar record, taking ownership
// of the record's buffers.
func BBoxFromColumnar(rec *columnar.Record) (*BBox, error) {
	return frame.BBoxFromColumnar(rec)
}

// ImageFromDense rebuilds an Image from a dense array and a pixel encoding.
func ImageFromDense(arr dense.Array, encoding format.PixelEncoding, name *string) (*Image, error) {
	return frame.ImageFromDense(arr, encoding, name)
}

// BBoxFromDense rebuilds a BBox from a dense [n, 4] coordinate array.
func BBoxFromDense(arr dense.Array, encoding format.BoxEncoding, confidence []float32, labels []string) (*BBox, error) {
	return frame.BBoxFromDense(arr, encoding, confidence, labels)
}

// Marshal serializes a columnar record into a self-describing binary blob.
//
// Available options:
//   - blob.WithCompression(format.CompressionNone|Zstd|S2|LZ4)
//   - blob.WithLittleEndian() / blob.WithBigEndian()
func Marshal(rec *columnar.Record, opts ...blob.Option) ([]byte, error) {
	return blob.Encode(rec, opts...)
}

// Unmarshal parses a blob back into a columnar record. Column buffers are
// sliced out of a single private payload block; the input slice is free for
// reuse as soon as Unmarshal returns.
func Unmarshal(data []byte) (*columnar.Record, error) {
	return blob.Decode(data)
}
