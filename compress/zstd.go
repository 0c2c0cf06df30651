package compress

// ZstdCompressor compresses payloads with Zstandard, trading CPU for the
// best ratio of the registered codecs. Use it when blobs cross a slow link
// or sit in storage.
//
// Two implementations exist behind build tags: a cgo binding to libzstd when
// cgo is available, and a pure-Go fallback otherwise. Both produce standard
// zstd frames and interoperate freely.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)
