package compress

import "github.com/klauspost/compress/s2"

// S2Compressor compresses payloads with S2, a Snappy-compatible format
// tuned for speed over ratio. A good fit for coordinate and confidence
// payloads that must stay cheap to pack.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// Compress compresses the payload with S2.
func (S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decompresses an S2 payload.
func (S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
