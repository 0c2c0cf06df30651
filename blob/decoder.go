package blob

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/visionbuf/visionbuf/buffer"
	"github.com/visionbuf/visionbuf/codec"
	"github.com/visionbuf/visionbuf/columnar"
	"github.com/visionbuf/visionbuf/compress"
	"github.com/visionbuf/visionbuf/endian"
	"github.com/visionbuf/visionbuf/errs"
	"github.com/visionbuf/visionbuf/format"
	"github.com/visionbuf/visionbuf/internal/hash"
)

// Decode parses a blob back into a columnar record.
//
// Column buffers are sliced out of a private payload block: one allocation
// per decode, never aliasing the input. The caller may reuse or discard the
// input slice as soon as Decode returns.
func Decode(data []byte) (*columnar.Record, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", errs.ErrInvalidHeaderSize, len(data), headerSize)
	}

	// The magic also identifies the header byte order: it only reads back
	// correctly with the engine that wrote it.
	engine := endian.GetLittleEndianEngine()
	if engine.Uint32(data[0:4]) != magicNumber {
		engine = endian.GetBigEndianEngine()
		if engine.Uint32(data[0:4]) != magicNumber {
			return nil, fmt.Errorf("%w: 0x%x", errs.ErrInvalidMagic, data[0:4])
		}
	}

	if data[4] != formatVersion {
		return nil, fmt.Errorf("%w: %d, this library reads version %d", errs.ErrUnsupportedVersion, data[4], formatVersion)
	}
	flags := data[5]
	compression := format.CompressionType(data[6])
	typeID := engine.Uint64(data[8:16])
	schemaLen := int(engine.Uint32(data[16:20]))

	if len(data) < headerSize+schemaLen+4 {
		return nil, fmt.Errorf("%w: truncated schema section", errs.ErrInvalidHeaderSize)
	}

	var schema recordSchema
	if err := codec.Default.Unmarshal(data[headerSize:headerSize+schemaLen], &schema); err != nil {
		return nil, fmt.Errorf("failed to decode blob schema: %w", err)
	}
	if hash.ID(schema.Type) != typeID {
		return nil, fmt.Errorf("%w: schema type %q does not match header type id", errs.ErrTypeMismatch, schema.Type)
	}

	rest := data[headerSize+schemaLen:]
	payloadLen := int(engine.Uint32(rest[0:4]))
	if len(rest) < 4+payloadLen+4 {
		return nil, fmt.Errorf("%w: truncated payload section", errs.ErrInvalidHeaderSize)
	}
	stored := rest[4 : 4+payloadLen]

	if crc := engine.Uint32(rest[4+payloadLen:]); crc != crc32.ChecksumIEEE(stored) {
		return nil, fmt.Errorf("%w: payload crc 0x%08x, stored 0x%08x",
			errs.ErrChecksumMismatch, crc32.ChecksumIEEE(stored), crc)
	}

	compressor, err := compress.ByType(compression)
	if err != nil {
		return nil, err
	}
	payload, err := compressor.Decompress(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress blob payload: %w", err)
	}

	// The no-op codec hands back the stored bytes themselves. Copy before
	// slicing buffers out, so a record that later mutates a uniquely owned
	// buffer in place can never write through to the caller's blob.
	if compression == format.CompressionNone {
		private := make([]byte, len(payload))
		copy(private, payload)
		payload = private
	}

	writerBigEndian := flags&flagBigEndianHost != 0
	if swap := writerBigEndian != !endian.IsNativeLittleEndian(); swap {
		swapPayload(payload, schema)
	}

	return buildRecord(payload, schema)
}

// swapPayload byte-swaps every multi-byte primitive field in place, for a
// blob written on a host of the opposite endianness. The payload block is
// private by the time this runs.
func swapPayload(payload []byte, schema recordSchema) {
	offset := 0
	for _, field := range schema.Fields {
		if field.Size < 0 || offset+field.Size > len(payload) {
			// buildRecord rejects the blob; nothing left to swap.
			return
		}
		if columnar.ColumnKind(field.Kind) == columnar.KindPrimitive {
			width, err := format.ElementSize(format.ElementType(field.Elem))
			if err == nil && width > 1 {
				section := payload[offset : offset+field.Size]
				for i := 0; i+int(width) <= len(section); i += int(width) {
					for a, b := i, i+int(width)-1; a < b; a, b = a+1, b-1 {
						section[a], section[b] = section[b], section[a]
					}
				}
			}
		}
		offset += field.Size
	}
}

// buildRecord slices the payload into columns following the schema.
func buildRecord(payload []byte, schema recordSchema) (*columnar.Record, error) {
	b := columnar.NewBuilder(schema.Type)

	offset := 0
	for _, field := range schema.Fields {
		if field.Size < 0 || offset+field.Size > len(payload) {
			return nil, fmt.Errorf("%w: field %q overruns payload", errs.ErrInvalidPayload, field.Name)
		}
		section := payload[offset : offset+field.Size]
		offset += field.Size

		switch columnar.ColumnKind(field.Kind) {
		case columnar.KindPrimitive:
			buf, err := buffer.FromBytes(section, format.ElementType(field.Elem))
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", field.Name, err)
			}
			if buf.Len() != field.Count {
				return nil, fmt.Errorf("%w: field %q has %d elements, schema says %d",
					errs.ErrInvalidPayload, field.Name, buf.Len(), field.Count)
			}
			b.PushPrimitiveArray(field.Name, buf)

		case columnar.KindStrings:
			values := make([]string, 0, field.Count)
			for i := 0; i < field.Count; i++ {
				length, n := binary.Uvarint(section)
				if n <= 0 || int(length) > len(section)-n {
					return nil, fmt.Errorf("%w: field %q string %d overruns payload",
						errs.ErrInvalidPayload, field.Name, i)
				}
				values = append(values, string(section[n:n+int(length)]))
				section = section[n+int(length):]
			}
			if len(section) != 0 {
				return nil, fmt.Errorf("%w: field %q has %d trailing bytes",
					errs.ErrInvalidPayload, field.Name, len(section))
			}
			b.PushStringArray(field.Name, values)

		default:
			return nil, fmt.Errorf("%w: field %q has unknown kind %d",
				errs.ErrInvalidPayload, field.Name, field.Kind)
		}
	}
	if offset != len(payload) {
		return nil, fmt.Errorf("%w: %d trailing payload bytes", errs.ErrInvalidPayload, len(payload)-offset)
	}

	return b.Build(), nil
}
