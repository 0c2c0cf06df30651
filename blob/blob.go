// Package blob serializes columnar records to a compact binary form and
// back.
//
// A blob is self-describing: a fixed header carries the format version, the
// payload compression tag and a 64-bit hash of the record type name; a JSON
// schema section describes every column (name, kind, element type, counts);
// the payload section concatenates the column data; a trailing CRC32 guards
// the payload bytes. Decoding slices column buffers directly out of the
// decompressed payload block, so a decode allocates once for the block
// rather than once per column.
//
// Layout (header scalars in the writer's byte order, auto-detected from the
// magic on decode):
//
//	magic      uint32
//	version    uint8
//	flags      uint8   bit0: writer host is big-endian
//	compression uint8  format.CompressionType
//	reserved   uint8
//	typeID     uint64  xxHash64 of the record type name
//	schemaLen  uint32
//	schema     []byte  JSON, see recordSchema
//	payloadLen uint32
//	payload    []byte  possibly compressed
//	checksum   uint32  CRC32 (IEEE) of the stored payload bytes
package blob

import (
	"github.com/visionbuf/visionbuf/endian"
	"github.com/visionbuf/visionbuf/format"
)

const (
	magicNumber   uint32 = 0x56424631 // "VBF1"
	formatVersion uint8  = 1

	flagBigEndianHost uint8 = 0x01

	// headerSize is the fixed prefix before the schema section.
	headerSize = 20
)

// recordSchema is the JSON schema section of a blob.
type recordSchema struct {
	Type   string        `json:"type"`
	Fields []fieldSchema `json:"fields"`
}

// fieldSchema describes one column's layout inside the payload section.
type fieldSchema struct {
	Name  string `json:"name"`
	Kind  uint8  `json:"kind"`
	Elem  uint8  `json:"elem,omitempty"`
	Count int    `json:"count"`
	Size  int    `json:"size"`
}

type options struct {
	engine      endian.EndianEngine
	compression format.CompressionType
}

// Option configures blob encoding.
type Option func(*options)

// WithCompression selects the payload compression algorithm. The default is
// CompressionNone: raw pixel payloads rarely repay the CPU spent on them.
func WithCompression(t format.CompressionType) Option {
	return func(o *options) { o.compression = t }
}

// WithLittleEndian writes header scalars little-endian (the default).
func WithLittleEndian() Option {
	return func(o *options) { o.engine = endian.GetLittleEndianEngine() }
}

// WithBigEndian writes header scalars big-endian, for readers on big-endian
// hosts that want to skip byte swapping.
func WithBigEndian() Option {
	return func(o *options) { o.engine = endian.GetBigEndianEngine() }
}

func defaultOptions() options {
	return options{
		engine:      endian.GetLittleEndianEngine(),
		compression: format.CompressionNone,
	}
}
