// Package compress provides the payload compression codecs used by the blob
// serialization layer.
//
// Each codec compresses a complete payload section in one shot; streaming is
// not needed because blob payloads are bounded in-memory byte slices. All
// codecs are safe for concurrent use.
package compress

import (
	"fmt"

	"github.com/visionbuf/visionbuf/errs"
	"github.com/visionbuf/visionbuf/format"
)

// Codec compresses and decompresses blob payload sections.
type Codec interface {
	// Compress returns the compressed form of data. The returned slice is
	// owned by the caller; the input is not modified.
	Compress(data []byte) ([]byte, error)

	// Decompress reverses Compress. Returns an error when the input is
	// corrupted or was produced by a different algorithm.
	Decompress(data []byte) ([]byte, error)
}

// ByType returns the codec for a registered compression tag.
func ByType(t format.CompressionType) (Codec, error) {
	switch t {
	case format.CompressionNone:
		return NoOpCompressor{}, nil
	case format.CompressionZstd:
		return ZstdCompressor{}, nil
	case format.CompressionS2:
		return S2Compressor{}, nil
	case format.CompressionLZ4:
		return LZ4Compressor{}, nil
	default:
		return nil, fmt.Errorf("%w: 0x%x", errs.ErrUnknownCompression, uint8(t))
	}
}
