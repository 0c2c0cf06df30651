package compress

// NoOpCompressor passes payloads through unchanged. It is the default: raw
// pixel data rarely compresses well enough to pay for the CPU.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// Compress returns the input slice as-is, sharing its memory.
func (NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is, sharing its memory.
func (NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
