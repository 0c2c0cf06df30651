package frame

import (
	"fmt"

	"github.com/visionbuf/visionbuf/buffer"
	"github.com/visionbuf/visionbuf/columnar"
	"github.com/visionbuf/visionbuf/dense"
	"github.com/visionbuf/visionbuf/errs"
	"github.com/visionbuf/visionbuf/format"
)

// ImageTypeName tags Image records in the columnar representation.
const ImageTypeName = "Image"

// Image columnar field order is a compatibility contract:
// width, height, encoding, name, data.
const (
	imageFieldWidth    = "width"
	imageFieldHeight   = "height"
	imageFieldEncoding = "encoding"
	imageFieldName     = "name"
	imageFieldData     = "data"
)

// IntoColumnar projects the image into the tagged-union columnar structure.
// The pixel buffer moves into the record without copying; the receiver must
// not be used afterwards.
func (i *Image) IntoColumnar() *columnar.Record {
	return columnar.NewBuilder(ImageTypeName).
		PushUint32Singleton(imageFieldWidth, i.width).
		PushUint32Singleton(imageFieldHeight, i.height).
		PushStringSingleton(imageFieldEncoding, i.encoding.String()).
		PushOptionalString(imageFieldName, i.name).
		PushPrimitiveArray(imageFieldData, i.data).
		Build()
}

// ImageFromColumnar rebuilds an Image from a columnar record, taking
// ownership of the record's pixel buffer (identity-preserving, no copy).
func ImageFromColumnar(rec *columnar.Record) (*Image, error) {
	if rec.TypeName() != ImageTypeName {
		return nil, fmt.Errorf("%w: record is %q, want %q", errs.ErrTypeMismatch, rec.TypeName(), ImageTypeName)
	}

	return imageFromAccess(imageAccess{consumer: columnar.NewConsumer(rec)})
}

// ImageFromColumnarView rebuilds an Image that shares the record's pixel
// buffer. The record stays usable; a later in-place conversion of the
// returned image copies instead of mutating the shared bytes.
func ImageFromColumnarView(rec *columnar.Record) (*Image, error) {
	if rec.TypeName() != ImageTypeName {
		return nil, fmt.Errorf("%w: record is %q, want %q", errs.ErrTypeMismatch, rec.TypeName(), ImageTypeName)
	}

	return imageFromAccess(imageAccess{viewer: columnar.NewViewer(rec)})
}

// imageAccess abstracts over the owning and sharing decode paths.
type imageAccess struct {
	consumer *columnar.Consumer
	viewer   *columnar.Viewer
}

func (a imageAccess) uint32Singleton(name string) (uint32, error) {
	if a.consumer != nil {
		return a.consumer.Uint32Singleton(name)
	}

	return a.viewer.Uint32Singleton(name)
}

func (a imageAccess) stringSingleton(name string) (string, error) {
	if a.consumer != nil {
		return a.consumer.StringSingleton(name)
	}

	return a.viewer.StringSingleton(name)
}

func (a imageAccess) optionalString(name string) (*string, error) {
	if a.consumer != nil {
		return a.consumer.OptionalString(name)
	}

	return a.viewer.OptionalString(name)
}

func (a imageAccess) primitiveArray(name string, elem format.ElementType) (*buffer.Buffer, error) {
	if a.consumer != nil {
		return a.consumer.PrimitiveArray(name, elem)
	}

	return a.viewer.PrimitiveArray(name, elem)
}

func imageFromAccess(a imageAccess) (*Image, error) {
	width, err := a.uint32Singleton(imageFieldWidth)
	if err != nil {
		return nil, err
	}
	height, err := a.uint32Singleton(imageFieldHeight)
	if err != nil {
		return nil, err
	}
	encodingTag, err := a.stringSingleton(imageFieldEncoding)
	if err != nil {
		return nil, err
	}
	encoding, err := format.ParsePixelEncoding(encodingTag)
	if err != nil {
		return nil, err
	}
	name, err := a.optionalString(imageFieldName)
	if err != nil {
		return nil, err
	}
	elem, err := format.PixelElementType(encoding)
	if err != nil {
		return nil, err
	}
	data, err := a.primitiveArray(imageFieldData, elem)
	if err != nil {
		return nil, err
	}

	return newImage(data, width, height, encoding, name)
}

// IntoDense exposes the pixel buffer as a shape-annotated array:
// [height, width, channels] for multi-channel encodings, [height, width]
// for GRAY8. Zero-copy; the receiver must not be used afterwards.
func (i *Image) IntoDense() (dense.Array, error) {
	channels, err := format.Channels(i.encoding)
	if err != nil {
		return dense.Array{}, err
	}

	shape := []int{int(i.height), int(i.width), int(channels)}
	if channels == 1 {
		shape = shape[:2]
	}

	return dense.New(i.data, shape)
}

// ImageFromDense rebuilds an Image from a dense array and a pixel encoding.
//
// The array's element type must match the encoding's
// (ErrElementTypeMismatch otherwise), and its shape arity must match the
// encoding's channel layout (ErrShapeMismatch otherwise): rank 3 with the
// trailing dimension equal to the channel count for RGB8/BGR8, rank 2 for
// GRAY8. The buffer is shared, not copied.
func ImageFromDense(arr dense.Array, encoding format.PixelEncoding, name *string) (*Image, error) {
	elem, err := format.PixelElementType(encoding)
	if err != nil {
		return nil, err
	}
	if arr.Buf.ElementType() != elem {
		return nil, fmt.Errorf("%w: dense buffer holds %s, %s expects %s",
			errs.ErrElementTypeMismatch, arr.Buf.ElementType(), encoding, elem)
	}

	channels, err := format.Channels(encoding)
	if err != nil {
		return nil, err
	}

	switch {
	case channels == 1:
		if arr.Rank() != 2 {
			return nil, fmt.Errorf("%w: %s expects shape [height, width], got %v",
				errs.ErrShapeMismatch, encoding, arr.Shape)
		}
	default:
		if arr.Rank() != 3 || arr.Dim(2) != int(channels) {
			return nil, fmt.Errorf("%w: %s expects shape [height, width, %d], got %v",
				errs.ErrShapeMismatch, encoding, channels, arr.Shape)
		}
	}

	return newImage(arr.Buf, uint32(arr.Dim(1)), uint32(arr.Dim(0)), encoding, name)
}
