package blob

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/visionbuf/visionbuf/codec"
	"github.com/visionbuf/visionbuf/columnar"
	"github.com/visionbuf/visionbuf/compress"
	"github.com/visionbuf/visionbuf/endian"
	"github.com/visionbuf/visionbuf/internal/hash"
	"github.com/visionbuf/visionbuf/internal/pool"
)

// Encode serializes a columnar record into a self-describing blob.
//
// The record is read, not consumed: its buffers are copied into the payload
// section, so the record remains usable afterwards.
func Encode(rec *columnar.Record, opts ...Option) ([]byte, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	compressor, err := compress.ByType(cfg.compression)
	if err != nil {
		return nil, err
	}

	schema := recordSchema{
		Type:   rec.TypeName(),
		Fields: make([]fieldSchema, 0, rec.NumColumns()),
	}

	payload := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(payload)

	for _, col := range rec.Columns() {
		start := payload.Len()
		field := fieldSchema{
			Name:  col.Name,
			Kind:  uint8(col.Kind),
			Count: col.Len(),
		}

		switch col.Kind {
		case columnar.KindPrimitive:
			field.Elem = uint8(col.Buf.ElementType())
			payload.MustWrite(col.Buf.Bytes())
		case columnar.KindStrings:
			for _, s := range col.Strs {
				payload.B = binary.AppendUvarint(payload.B, uint64(len(s)))
				payload.MustWrite([]byte(s))
			}
		default:
			return nil, fmt.Errorf("unsupported column kind %s for field %q", col.Kind, col.Name)
		}

		field.Size = payload.Len() - start
		schema.Fields = append(schema.Fields, field)
	}

	schemaBytes, err := codec.Default.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to encode blob schema: %w", err)
	}

	compressed, err := compressor.Compress(payload.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to compress blob payload: %w", err)
	}

	var flags uint8
	if !endian.IsNativeLittleEndian() {
		flags |= flagBigEndianHost
	}

	engine := cfg.engine
	out := make([]byte, 0, headerSize+len(schemaBytes)+len(compressed)+8)
	out = engine.AppendUint32(out, magicNumber)
	out = append(out, formatVersion, flags, uint8(cfg.compression), 0)
	out = engine.AppendUint64(out, hash.ID(rec.TypeName()))
	out = engine.AppendUint32(out, uint32(len(schemaBytes))) //nolint:gosec
	out = append(out, schemaBytes...)
	out = engine.AppendUint32(out, uint32(len(compressed))) //nolint:gosec
	out = append(out, compressed...)
	out = engine.AppendUint32(out, crc32.ChecksumIEEE(compressed))

	return out, nil
}
