package frame

import (
	"fmt"

	"github.com/visionbuf/visionbuf/buffer"
	"github.com/visionbuf/visionbuf/errs"
	"github.com/visionbuf/visionbuf/format"
)

// Image is an immutable pixel frame: a pixel buffer, its dimensions, the
// pixel encoding, and an optional source name.
type Image struct {
	data *buffer.Buffer

	width  uint32
	height uint32

	encoding format.PixelEncoding

	name *string
}

// expectedPixelBytes returns the byte length the invariant requires for the
// given dimensions and encoding.
func expectedPixelBytes(width, height uint32, encoding format.PixelEncoding) (int, error) {
	channels, err := format.Channels(encoding)
	if err != nil {
		return 0, err
	}
	bpc, err := format.BytesPerChannel(encoding)
	if err != nil {
		return 0, err
	}

	return int(width) * int(height) * int(channels) * int(bpc), nil
}

// newImage validates the shape invariant and wraps an existing buffer.
func newImage(data *buffer.Buffer, width, height uint32, encoding format.PixelEncoding, name *string) (*Image, error) {
	want, err := expectedPixelBytes(width, height, encoding)
	if err != nil {
		return nil, err
	}
	if data.ByteLen() != want {
		return nil, fmt.Errorf("%w: %s image %dx%d requires %d bytes, got %d",
			errs.ErrShapeMismatch, encoding, width, height, want, data.ByteLen())
	}

	return &Image{data: data, width: width, height: height, encoding: encoding, name: name}, nil
}

// NewRGB8 creates an RGB8 image, taking ownership of the pixel data.
// Fails with ErrShapeMismatch when len(data) != width*height*3.
func NewRGB8(data []uint8, width, height uint32, name *string) (*Image, error) {
	return newImage(buffer.FromUint8(data), width, height, format.PixelRGB8, name)
}

// NewBGR8 creates a BGR8 image, taking ownership of the pixel data.
func NewBGR8(data []uint8, width, height uint32, name *string) (*Image, error) {
	return newImage(buffer.FromUint8(data), width, height, format.PixelBGR8, name)
}

// NewGray8 creates a GRAY8 image, taking ownership of the pixel data.
// Fails with ErrShapeMismatch when len(data) != width*height.
func NewGray8(data []uint8, width, height uint32, name *string) (*Image, error) {
	return newImage(buffer.FromUint8(data), width, height, format.PixelGRAY8, name)
}

// Width returns the image width in pixels.
func (i *Image) Width() uint32 {
	return i.width
}

// Height returns the image height in pixels.
func (i *Image) Height() uint32 {
	return i.height
}

// Encoding returns the pixel encoding tag.
func (i *Image) Encoding() format.PixelEncoding {
	return i.encoding
}

// Name returns the optional image name.
func (i *Image) Name() (string, bool) {
	if i.name == nil {
		return "", false
	}

	return *i.name, true
}

// Data returns the pixel buffer.
func (i *Image) Data() *buffer.Buffer {
	return i.data
}

// AsPtr returns the raw address of the pixel data for zero-copy hand-off.
// The pointer must not outlive the image.
func (i *Image) AsPtr() uintptr {
	return i.data.AsPtr()
}

// IntoRGB8 converts the image to RGB8.
//
// Converting an RGB8 image is the identity: the same value is returned with
// no reallocation. BGR8 pixels are reordered in place when the buffer is
// uniquely owned, otherwise on a private copy. GRAY8 cannot be expressed as
// a channel reorder and fails with ErrIncompatibleLayout.
//
// The receiver must not be used after conversion.
func (i *Image) IntoRGB8() (*Image, error) {
	return i.reorderTo(format.PixelRGB8)
}

// IntoBGR8 converts the image to BGR8 under the same rules as IntoRGB8.
func (i *Image) IntoBGR8() (*Image, error) {
	return i.reorderTo(format.PixelBGR8)
}

func (i *Image) reorderTo(target format.PixelEncoding) (*Image, error) {
	if i.encoding == target {
		return i, nil
	}

	compatible, err := format.IsReorderCompatible(i.encoding, target)
	if err != nil {
		return nil, err
	}
	if !compatible {
		return nil, fmt.Errorf("%w: can't convert %s image to %s",
			errs.ErrIncompatibleLayout, i.encoding, target)
	}

	// RGB8<->BGR8: swap the first and third channel of every pixel.
	data := i.data
	pixels, unique := data.TryUniqueMut()
	if !unique {
		data.Release()
		data = data.CloneBytes()
		pixels, _ = data.TryUniqueMut()
	}
	for p := 0; p+2 < len(pixels); p += 3 {
		pixels[p], pixels[p+2] = pixels[p+2], pixels[p]
	}

	return &Image{data: data, width: i.width, height: i.height, encoding: target, name: i.name}, nil
}
