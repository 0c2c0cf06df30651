// Package frame provides the visionbuf domain record types: immutable value
// objects (Image, BBox, LaserScan2D, JointsPosition, ImageInVideo) composed
// of shared buffers, scalars and optional strings.
//
// Records are constructed through per-variant constructors that validate
// their shape invariants immediately, and converted between encodings with
// Into* methods. Conversion methods consume the receiver: they return a new
// record that reuses the receiver's buffers wherever the byte layout allows,
// and the receiver must not be used afterwards. When a buffer is shared with
// another holder, an in-place transform copies the bytes first, so a record
// observed through another reference never changes under it.
//
// Each record type also implements the two interchange codecs:
//
//   - IntoColumnar / <Type>FromColumnar project a record to and from the
//     generic tagged-union columnar structure of package columnar.
//   - IntoDense / <Type>FromDense expose the primary data field as a flat
//     shape-annotated array of package dense.
package frame
