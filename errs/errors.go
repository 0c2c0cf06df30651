// Package errs defines the sentinel errors shared by all visionbuf packages.
//
// Every fallible operation in the library wraps one of these sentinels with
// fmt.Errorf("...: %w", ...), so callers can classify failures with
// errors.Is regardless of the added context.
package errs

import "errors"

// Core conversion errors.
var (
	// ErrShapeMismatch indicates declared dimensions disagree with the
	// supplied buffer length (e.g. width*height*channels != len(data)).
	ErrShapeMismatch = errors.New("shape mismatch between declared dimensions and data length")

	// ErrIncompatibleLayout indicates a requested zero-copy reinterpretation
	// or in-place conversion is impossible because the byte layout differs
	// (element width or channel count changes).
	ErrIncompatibleLayout = errors.New("incompatible buffer layout")

	// ErrUnknownEncoding indicates an encoding tag that is not part of the
	// format registry.
	ErrUnknownEncoding = errors.New("unknown encoding")

	// ErrMissingField indicates a required field is absent from a columnar
	// record.
	ErrMissingField = errors.New("missing columnar field")

	// ErrFieldShapeMismatch indicates columnar field lengths disagree with
	// each other (e.g. confidence count != label count).
	ErrFieldShapeMismatch = errors.New("columnar field length mismatch")

	// ErrElementTypeMismatch indicates a buffer holds a different element
	// type than the operation expects.
	ErrElementTypeMismatch = errors.New("element type mismatch")
)

// Blob serialization errors.
var (
	// ErrInvalidMagic indicates the blob does not start with the visionbuf
	// magic number.
	ErrInvalidMagic = errors.New("invalid blob magic")

	// ErrInvalidHeaderSize indicates the blob is shorter than a complete
	// header.
	ErrInvalidHeaderSize = errors.New("invalid blob header size")

	// ErrUnsupportedVersion indicates a well-formed blob written by a newer
	// format version than this library understands.
	ErrUnsupportedVersion = errors.New("unsupported blob format version")

	// ErrUnknownCompression indicates a compression tag that is not part of
	// the format registry.
	ErrUnknownCompression = errors.New("unknown compression type")

	// ErrChecksumMismatch indicates the payload CRC32 does not match the
	// stored checksum.
	ErrChecksumMismatch = errors.New("blob checksum mismatch")

	// ErrTypeMismatch indicates the record type stored in a blob is not the
	// type the caller asked to decode.
	ErrTypeMismatch = errors.New("record type mismatch")

	// ErrInvalidPayload indicates a payload section that cannot be sliced
	// into the field layout announced by the schema.
	ErrInvalidPayload = errors.New("invalid blob payload")
)
