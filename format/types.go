// Package format is the encoding registry for visionbuf.
//
// It enumerates the legal variant tags for each domain type (pixel layouts
// for Image, box layouts for BBox), the element types a buffer may carry,
// and the byte widths and channel counts each tag implies. The registry is a
// pure, stateless lookup table: it is the single place where tag strings are
// validated, and every function returns an error rather than panicking on an
// unrecognized tag.
package format

import (
	"fmt"

	"github.com/visionbuf/visionbuf/errs"
)

type (
	// PixelEncoding identifies the byte layout of image pixel data.
	PixelEncoding uint8

	// BoxEncoding identifies the coordinate convention of bounding box data.
	BoxEncoding uint8

	// JointEncoding identifies the reference frame of joint positions.
	JointEncoding uint8

	// ElementType identifies the numeric type of buffer elements.
	ElementType uint8

	// CompressionType identifies a blob payload compression algorithm.
	CompressionType uint8
)

const (
	PixelRGB8  PixelEncoding = 0x1 // PixelRGB8 is 3 channels, 1 byte each, R-G-B order.
	PixelBGR8  PixelEncoding = 0x2 // PixelBGR8 is 3 channels, 1 byte each, B-G-R order.
	PixelGRAY8 PixelEncoding = 0x3 // PixelGRAY8 is a single 1-byte luminance channel.

	BoxXYXY BoxEncoding = 0x1 // BoxXYXY is [x0, y0, x1, y1] corner coordinates.
	BoxXYWH BoxEncoding = 0x2 // BoxXYWH is [xc, yc, w, h] center and size.

	JointLogical  JointEncoding = 0x1 // JointLogical positions are in logical units.
	JointPhysical JointEncoding = 0x2 // JointPhysical positions are in physical units.

	ElementUint8   ElementType = 0x1 // ElementUint8 is an unsigned 8-bit integer.
	ElementUint16  ElementType = 0x2 // ElementUint16 is an unsigned 16-bit integer.
	ElementUint32  ElementType = 0x3 // ElementUint32 is an unsigned 32-bit integer.
	ElementFloat32 ElementType = 0x4 // ElementFloat32 is an IEEE 754 32-bit float.

	CompressionNone CompressionType = 0x1 // CompressionNone stores payloads raw.
	CompressionZstd CompressionType = 0x2 // CompressionZstd uses Zstandard.
	CompressionS2   CompressionType = 0x3 // CompressionS2 uses S2.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 uses LZ4 block format.
)

func (e PixelEncoding) String() string {
	switch e {
	case PixelRGB8:
		return "RGB8"
	case PixelBGR8:
		return "BGR8"
	case PixelGRAY8:
		return "GRAY8"
	default:
		return "Unknown"
	}
}

func (e BoxEncoding) String() string {
	switch e {
	case BoxXYXY:
		return "XYXY"
	case BoxXYWH:
		return "XYWH"
	default:
		return "Unknown"
	}
}

func (e JointEncoding) String() string {
	switch e {
	case JointLogical:
		return "Logical"
	case JointPhysical:
		return "Physical"
	default:
		return "Unknown"
	}
}

func (t ElementType) String() string {
	switch t {
	case ElementUint8:
		return "Uint8"
	case ElementUint16:
		return "Uint16"
	case ElementUint32:
		return "Uint32"
	case ElementFloat32:
		return "Float32"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParsePixelEncoding validates a pixel encoding tag string.
func ParsePixelEncoding(s string) (PixelEncoding, error) {
	switch s {
	case "RGB8":
		return PixelRGB8, nil
	case "BGR8":
		return PixelBGR8, nil
	case "GRAY8":
		return PixelGRAY8, nil
	default:
		return 0, fmt.Errorf("%w: pixel encoding %q", errs.ErrUnknownEncoding, s)
	}
}

// ParseBoxEncoding validates a box encoding tag string.
func ParseBoxEncoding(s string) (BoxEncoding, error) {
	switch s {
	case "XYXY":
		return BoxXYXY, nil
	case "XYWH":
		return BoxXYWH, nil
	default:
		return 0, fmt.Errorf("%w: box encoding %q", errs.ErrUnknownEncoding, s)
	}
}

// ParseJointEncoding validates a joint encoding tag string.
func ParseJointEncoding(s string) (JointEncoding, error) {
	switch s {
	case "Logical":
		return JointLogical, nil
	case "Physical":
		return JointPhysical, nil
	default:
		return 0, fmt.Errorf("%w: joint encoding %q", errs.ErrUnknownEncoding, s)
	}
}

// Channels returns the channel count implied by a pixel encoding.
func Channels(e PixelEncoding) (uint32, error) {
	switch e {
	case PixelRGB8, PixelBGR8:
		return 3, nil
	case PixelGRAY8:
		return 1, nil
	default:
		return 0, fmt.Errorf("%w: pixel encoding 0x%x", errs.ErrUnknownEncoding, uint8(e))
	}
}

// BytesPerChannel returns the per-channel byte width of a pixel encoding.
func BytesPerChannel(e PixelEncoding) (uint32, error) {
	switch e {
	case PixelRGB8, PixelBGR8, PixelGRAY8:
		return 1, nil
	default:
		return 0, fmt.Errorf("%w: pixel encoding 0x%x", errs.ErrUnknownEncoding, uint8(e))
	}
}

// PixelElementType returns the buffer element type a pixel encoding expects.
func PixelElementType(e PixelEncoding) (ElementType, error) {
	switch e {
	case PixelRGB8, PixelBGR8, PixelGRAY8:
		return ElementUint8, nil
	default:
		return 0, fmt.Errorf("%w: pixel encoding 0x%x", errs.ErrUnknownEncoding, uint8(e))
	}
}

// ElementSize returns the byte width of one element of the given type.
func ElementSize(t ElementType) (uint32, error) {
	switch t {
	case ElementUint8:
		return 1, nil
	case ElementUint16:
		return 2, nil
	case ElementUint32, ElementFloat32:
		return 4, nil
	default:
		return 0, fmt.Errorf("%w: element type 0x%x", errs.ErrUnknownEncoding, uint8(t))
	}
}

// IsReorderCompatible reports whether converting between two pixel encodings
// is a pure channel permutation: equal channel count and equal per-channel
// byte width. A conversion between reorder-compatible encodings never changes
// the buffer length, so it can happen in place on a uniquely owned buffer.
func IsReorderCompatible(a, b PixelEncoding) (bool, error) {
	ca, err := Channels(a)
	if err != nil {
		return false, err
	}
	cb, err := Channels(b)
	if err != nil {
		return false, err
	}
	wa, err := BytesPerChannel(a)
	if err != nil {
		return false, err
	}
	wb, err := BytesPerChannel(b)
	if err != nil {
		return false, err
	}

	return ca == cb && wa == wb, nil
}
