package frame

import (
	"fmt"

	"github.com/visionbuf/visionbuf/buffer"
	"github.com/visionbuf/visionbuf/columnar"
	"github.com/visionbuf/visionbuf/dense"
	"github.com/visionbuf/visionbuf/errs"
	"github.com/visionbuf/visionbuf/format"
)

// BBoxTypeName tags BBox records in the columnar representation.
const BBoxTypeName = "BBox"

// BBox columnar field order is a compatibility contract:
// data, confidence, label, encoding.
const (
	bboxFieldData       = "data"
	bboxFieldConfidence = "confidence"
	bboxFieldLabel      = "label"
	bboxFieldEncoding   = "encoding"
)

// IntoColumnar projects the boxes into the tagged-union columnar structure.
// The coordinate and confidence buffers move into the record without
// copying; the receiver must not be used afterwards.
func (b *BBox) IntoColumnar() *columnar.Record {
	return columnar.NewBuilder(BBoxTypeName).
		PushPrimitiveArray(bboxFieldData, b.data).
		PushPrimitiveArray(bboxFieldConfidence, b.confidence).
		PushStringArray(bboxFieldLabel, b.labels).
		PushStringSingleton(bboxFieldEncoding, b.encoding.String()).
		Build()
}

// BBoxFromColumnar rebuilds a BBox from a columnar record, taking ownership
// of its buffers (identity-preserving, no copy).
//
// Fails with ErrMissingField when a field is absent, ErrUnknownEncoding when
// the encoding tag is not registered, and ErrFieldShapeMismatch when the
// data, confidence and label lengths don't describe the same box count.
func BBoxFromColumnar(rec *columnar.Record) (*BBox, error) {
	if rec.TypeName() != BBoxTypeName {
		return nil, fmt.Errorf("%w: record is %q, want %q", errs.ErrTypeMismatch, rec.TypeName(), BBoxTypeName)
	}

	c := columnar.NewConsumer(rec)

	data, err := c.PrimitiveArray(bboxFieldData, format.ElementFloat32)
	if err != nil {
		return nil, err
	}
	confidence, err := c.PrimitiveArray(bboxFieldConfidence, format.ElementFloat32)
	if err != nil {
		return nil, err
	}
	labels, err := c.StringArray(bboxFieldLabel)
	if err != nil {
		return nil, err
	}
	encodingTag, err := c.StringSingleton(bboxFieldEncoding)
	if err != nil {
		return nil, err
	}
	encoding, err := format.ParseBoxEncoding(encodingTag)
	if err != nil {
		return nil, err
	}

	return bboxFromBuffers(data, confidence, labels, encoding)
}

// BBoxFromColumnarView rebuilds a BBox that shares the record's buffers; the
// record stays usable and later conversions copy instead of mutating it.
func BBoxFromColumnarView(rec *columnar.Record) (*BBox, error) {
	if rec.TypeName() != BBoxTypeName {
		return nil, fmt.Errorf("%w: record is %q, want %q", errs.ErrTypeMismatch, rec.TypeName(), BBoxTypeName)
	}

	v := columnar.NewViewer(rec)

	data, err := v.PrimitiveArray(bboxFieldData, format.ElementFloat32)
	if err != nil {
		return nil, err
	}
	confidence, err := v.PrimitiveArray(bboxFieldConfidence, format.ElementFloat32)
	if err != nil {
		return nil, err
	}
	labels, err := v.StringArray(bboxFieldLabel)
	if err != nil {
		return nil, err
	}
	encodingTag, err := v.StringSingleton(bboxFieldEncoding)
	if err != nil {
		return nil, err
	}
	encoding, err := format.ParseBoxEncoding(encodingTag)
	if err != nil {
		return nil, err
	}

	return bboxFromBuffers(data, confidence, labels, encoding)
}

// bboxFromBuffers enforces the cross-field box count on the decode path,
// where a mismatch is a field shape error rather than a construction error.
func bboxFromBuffers(data, confidence *buffer.Buffer, labels []string, encoding format.BoxEncoding) (*BBox, error) {
	n := confidence.Len()
	if len(labels) != n || data.Len() != 4*n {
		return nil, fmt.Errorf("%w: %d confidences, %d labels, %d coordinates",
			errs.ErrFieldShapeMismatch, n, len(labels), data.Len())
	}

	return &BBox{data: data, confidence: confidence, labels: labels, encoding: encoding}, nil
}

// IntoDense exposes the coordinate buffer as a [n, 4] array. Zero-copy; the
// receiver's confidence and labels are not part of the dense projection.
func (b *BBox) IntoDense() (dense.Array, error) {
	return dense.New(b.data, []int{b.Count(), 4})
}

// BBoxFromDense rebuilds a BBox from a dense [n, 4] coordinate array plus
// the per-box confidences and labels the dense projection does not carry.
func BBoxFromDense(arr dense.Array, encoding format.BoxEncoding, confidence []float32, labels []string) (*BBox, error) {
	if arr.Buf.ElementType() != format.ElementFloat32 {
		return nil, fmt.Errorf("%w: dense buffer holds %s, box coordinates expect Float32",
			errs.ErrElementTypeMismatch, arr.Buf.ElementType())
	}
	if arr.Rank() != 2 || arr.Dim(1) != 4 {
		return nil, fmt.Errorf("%w: box coordinates expect shape [n, 4], got %v",
			errs.ErrShapeMismatch, arr.Shape)
	}
	if _, err := format.ParseBoxEncoding(encoding.String()); err != nil {
		return nil, err
	}

	return newBBox(arr.Buf, buffer.FromFloat32(confidence), labels, encoding)
}
