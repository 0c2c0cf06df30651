// Package codec centralizes metadata encoding for the blob layer.
//
// Blob headers carry a self-describing schema section; the codec that wrote
// it is implied by the blob version, so changing the default codec is a
// breaking-change boundary for persisted bytes.
package codec

// Codec encodes/decodes values. Implementations must be safe for concurrent
// use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default is the codec used for blob schema sections.
var Default Codec = GoJSON{}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}
