package frame

import (
	"fmt"

	"github.com/visionbuf/visionbuf/buffer"
	"github.com/visionbuf/visionbuf/errs"
	"github.com/visionbuf/visionbuf/format"
)

// BBox is an immutable set of n bounding boxes: four float32 coordinates per
// box, one confidence per box, one label per box, and the coordinate
// encoding.
type BBox struct {
	data       *buffer.Buffer // float32, 4 per box
	confidence *buffer.Buffer // float32, 1 per box
	labels     []string

	encoding format.BoxEncoding
}

// newBBox validates the shared box count invariant and wraps the buffers.
func newBBox(data, confidence *buffer.Buffer, labels []string, encoding format.BoxEncoding) (*BBox, error) {
	n := confidence.Len()
	if len(labels) != n || data.Len() != 4*n {
		return nil, fmt.Errorf("%w: %d confidences, %d labels and %d coordinates don't describe the same box count",
			errs.ErrShapeMismatch, n, len(labels), data.Len())
	}

	return &BBox{data: data, confidence: confidence, labels: labels, encoding: encoding}, nil
}

// NewXYXY creates a BBox in corner-coordinate form, taking ownership of the
// slices. Fails with ErrShapeMismatch unless len(data) == 4*n,
// len(confidence) == n and len(labels) == n for the same n.
func NewXYXY(data, confidence []float32, labels []string) (*BBox, error) {
	return newBBox(buffer.FromFloat32(data), buffer.FromFloat32(confidence), labels, format.BoxXYXY)
}

// NewXYWH creates a BBox in center-and-size form under the same invariant.
func NewXYWH(data, confidence []float32, labels []string) (*BBox, error) {
	return newBBox(buffer.FromFloat32(data), buffer.FromFloat32(confidence), labels, format.BoxXYWH)
}

// Count returns the number of boxes.
func (b *BBox) Count() int {
	return b.confidence.Len()
}

// Encoding returns the coordinate encoding tag.
func (b *BBox) Encoding() format.BoxEncoding {
	return b.encoding
}

// Data returns the coordinate buffer.
func (b *BBox) Data() *buffer.Buffer {
	return b.data
}

// Confidence returns the confidence buffer.
func (b *BBox) Confidence() *buffer.Buffer {
	return b.confidence
}

// Labels returns the per-box labels. The slice is shared; callers must not
// modify it.
func (b *BBox) Labels() []string {
	return b.labels
}

// AsPtr returns the raw address of the coordinate data.
func (b *BBox) AsPtr() uintptr {
	return b.data.AsPtr()
}

// IntoXYWH converts corner coordinates [x0,y0,x1,y1] to center-and-size
// [xc,yc,w,h]: xc=(x0+x1)/2, yc=(y0+y1)/2, w=x1-x0, h=y1-y0.
//
// Already-XYWH boxes are returned unchanged without reallocation. The
// coordinate buffer is recomputed in place when uniquely owned, otherwise on
// a private copy; confidence and labels are shared untouched across the
// conversion. The receiver must not be used afterwards.
func (b *BBox) IntoXYWH() (*BBox, error) {
	if b.encoding == format.BoxXYWH {
		return b, nil
	}

	return b.recompute(format.BoxXYWH, func(box []float32) {
		x0, y0, x1, y1 := box[0], box[1], box[2], box[3]
		box[0] = (x0 + x1) / 2
		box[1] = (y0 + y1) / 2
		box[2] = x1 - x0
		box[3] = y1 - y0
	})
}

// IntoXYXY converts center-and-size [xc,yc,w,h] back to corner coordinates
// [x0,y0,x1,y1] under the same rules as IntoXYWH.
func (b *BBox) IntoXYXY() (*BBox, error) {
	if b.encoding == format.BoxXYXY {
		return b, nil
	}

	return b.recompute(format.BoxXYXY, func(box []float32) {
		xc, yc, w, h := box[0], box[1], box[2], box[3]
		box[0] = xc - w/2
		box[1] = yc - h/2
		box[2] = xc + w/2
		box[3] = yc + h/2
	})
}

// recompute applies a per-box coordinate transform, copying first when the
// coordinate buffer is not uniquely owned, and swaps the encoding tag
// atomically with the data.
func (b *BBox) recompute(target format.BoxEncoding, transform func(box []float32)) (*BBox, error) {
	data := b.data
	if _, unique := data.TryUniqueMut(); !unique {
		data.Release()
		data = data.CloneBytes()
	}

	coords, err := data.Float32s()
	if err != nil {
		return nil, err
	}
	for i := 0; i+4 <= len(coords); i += 4 {
		transform(coords[i : i+4])
	}

	return &BBox{data: data, confidence: b.confidence, labels: b.labels, encoding: target}, nil
}
