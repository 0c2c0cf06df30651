// Package columnar implements the generic tagged-union columnar structure
// that visionbuf domain records convert to and from.
//
// A Record is a transient projection of a domain record: a type name plus an
// ordered list of named columns, one value array per field. Field order is a
// compatibility contract with external consumers and is preserved exactly as
// built. Columns either wrap a primitive Buffer (numeric data, scalars as
// length-1 arrays) or carry a string array (encoding tags, names, labels).
//
// Two decode paths exist, mirroring the two ways a consumer may want the
// data:
//
//   - Consumer takes ownership of the record's buffers; the record must not
//     be used afterwards. Buffer identity is preserved, so a full
//     build-then-consume round trip is zero-copy for primitive columns.
//   - Viewer shares the record's buffers, leaving the record usable. Any
//     later in-place transform on the shared data transparently copies
//     first, because the buffer is no longer uniquely owned.
package columnar

import (
	"fmt"

	"github.com/visionbuf/visionbuf/buffer"
	"github.com/visionbuf/visionbuf/errs"
	"github.com/visionbuf/visionbuf/format"
)

// ColumnKind discriminates the two column payload shapes.
type ColumnKind uint8

const (
	KindPrimitive ColumnKind = 0x1 // KindPrimitive wraps a numeric Buffer.
	KindStrings   ColumnKind = 0x2 // KindStrings carries a string array.
)

func (k ColumnKind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindStrings:
		return "Strings"
	default:
		return "Unknown"
	}
}

// Column is one named field of a Record.
type Column struct {
	Name string
	Kind ColumnKind

	// Buf holds the values for KindPrimitive columns.
	Buf *buffer.Buffer

	// Strs holds the values for KindStrings columns.
	Strs []string
}

// Len returns the number of logical values in the column.
func (c Column) Len() int {
	if c.Kind == KindStrings {
		return len(c.Strs)
	}
	if c.Buf == nil {
		return 0
	}

	return c.Buf.Len()
}

// Record is a tagged union of named, ordered columns.
type Record struct {
	typeName string
	cols     []Column
	index    map[string]int
}

// TypeName returns the domain type tag of the record (e.g. "Image").
func (r *Record) TypeName() string {
	return r.typeName
}

// NumColumns returns the number of columns.
func (r *Record) NumColumns() int {
	return len(r.cols)
}

// Columns returns the columns in build order. The slice is shared; callers
// must not modify it.
func (r *Record) Columns() []Column {
	return r.cols
}

// Column looks up a column by field name.
func (r *Record) Column(name string) (Column, bool) {
	i, ok := r.index[name]
	if !ok {
		return Column{}, false
	}

	return r.cols[i], true
}

// Builder assembles a Record column by column. Push order defines the
// record's field order. Pushing a name a second time replaces the earlier
// column in place, keeping its position, so a record can never carry two
// columns that disagree under the same name.
type Builder struct {
	typeName string
	cols     []Column
	index    map[string]int
}

// NewBuilder creates a Builder for a record of the given type name.
func NewBuilder(typeName string) *Builder {
	return &Builder{typeName: typeName, index: make(map[string]int)}
}

func (b *Builder) push(c Column) *Builder {
	if i, ok := b.index[c.Name]; ok {
		b.cols[i] = c
		return b
	}
	b.index[c.Name] = len(b.cols)
	b.cols = append(b.cols, c)

	return b
}

// PushUint32Singleton appends a scalar field stored as a length-1 uint32 array.
func (b *Builder) PushUint32Singleton(name string, value uint32) *Builder {
	return b.push(Column{Name: name, Kind: KindPrimitive, Buf: buffer.FromUint32([]uint32{value})})
}

// PushFloat32Singleton appends a scalar field stored as a length-1 float32 array.
func (b *Builder) PushFloat32Singleton(name string, value float32) *Builder {
	return b.push(Column{Name: name, Kind: KindPrimitive, Buf: buffer.FromFloat32([]float32{value})})
}

// PushPrimitiveArray appends a numeric field, taking over the caller's
// reference to the buffer.
func (b *Builder) PushPrimitiveArray(name string, buf *buffer.Buffer) *Builder {
	return b.push(Column{Name: name, Kind: KindPrimitive, Buf: buf})
}

// PushStringSingleton appends a string field with exactly one entry.
func (b *Builder) PushStringSingleton(name string, value string) *Builder {
	return b.push(Column{Name: name, Kind: KindStrings, Strs: []string{value}})
}

// PushStringArray appends a string field with one entry per logical instance.
func (b *Builder) PushStringArray(name string, values []string) *Builder {
	return b.push(Column{Name: name, Kind: KindStrings, Strs: values})
}

// PushOptionalString appends a present/absent string field: a length-1 array
// when value is non-nil, a length-0 array when it is nil. Absence therefore
// round-trips as absence rather than as an empty string.
func (b *Builder) PushOptionalString(name string, value *string) *Builder {
	if value == nil {
		return b.push(Column{Name: name, Kind: KindStrings, Strs: []string{}})
	}

	return b.push(Column{Name: name, Kind: KindStrings, Strs: []string{*value}})
}

// Build finalizes the record. The Builder must not be reused afterwards.
func (b *Builder) Build() *Record {
	return &Record{typeName: b.typeName, cols: b.cols, index: b.index}
}

// access implements the shared field lookups behind Consumer and Viewer.
type access struct {
	rec *Record
}

func (a access) column(name string, kind ColumnKind) (Column, error) {
	c, ok := a.rec.Column(name)
	if !ok {
		return Column{}, fmt.Errorf("%w: %q in %s record", errs.ErrMissingField, name, a.rec.typeName)
	}
	if c.Kind != kind {
		return Column{}, fmt.Errorf("%w: field %q is %s, want %s",
			errs.ErrFieldShapeMismatch, name, c.Kind, kind)
	}

	return c, nil
}

func (a access) primitive(name string, elem format.ElementType) (*buffer.Buffer, error) {
	c, err := a.column(name, KindPrimitive)
	if err != nil {
		return nil, err
	}
	if c.Buf.ElementType() != elem {
		return nil, fmt.Errorf("%w: field %q holds %s, want %s",
			errs.ErrElementTypeMismatch, name, c.Buf.ElementType(), elem)
	}

	return c.Buf, nil
}

func (a access) uint32Singleton(name string) (uint32, error) {
	buf, err := a.primitive(name, format.ElementUint32)
	if err != nil {
		return 0, err
	}
	values, err := buf.Uint32s()
	if err != nil {
		return 0, err
	}
	if len(values) != 1 {
		return 0, fmt.Errorf("%w: field %q has %d values, want 1", errs.ErrFieldShapeMismatch, name, len(values))
	}

	return values[0], nil
}

func (a access) float32Singleton(name string) (float32, error) {
	buf, err := a.primitive(name, format.ElementFloat32)
	if err != nil {
		return 0, err
	}
	values, err := buf.Float32s()
	if err != nil {
		return 0, err
	}
	if len(values) != 1 {
		return 0, fmt.Errorf("%w: field %q has %d values, want 1", errs.ErrFieldShapeMismatch, name, len(values))
	}

	return values[0], nil
}

func (a access) stringSingleton(name string) (string, error) {
	c, err := a.column(name, KindStrings)
	if err != nil {
		return "", err
	}
	if len(c.Strs) != 1 {
		return "", fmt.Errorf("%w: field %q has %d values, want 1", errs.ErrFieldShapeMismatch, name, len(c.Strs))
	}

	return c.Strs[0], nil
}

func (a access) stringArray(name string) ([]string, error) {
	c, err := a.column(name, KindStrings)
	if err != nil {
		return nil, err
	}

	return c.Strs, nil
}

func (a access) optionalString(name string) (*string, error) {
	c, err := a.column(name, KindStrings)
	if err != nil {
		return nil, err
	}
	switch len(c.Strs) {
	case 0:
		return nil, nil
	case 1:
		s := c.Strs[0]
		return &s, nil
	default:
		return nil, fmt.Errorf("%w: optional field %q has %d values, want 0 or 1",
			errs.ErrFieldShapeMismatch, name, len(c.Strs))
	}
}

// Consumer decodes a Record by taking ownership of its buffers. The record
// must not be used after a Consumer is created for it.
type Consumer struct {
	access
}

// NewConsumer wraps a record for owning decode.
func NewConsumer(rec *Record) *Consumer {
	return &Consumer{access{rec: rec}}
}

// Uint32Singleton reads a scalar uint32 field.
func (c *Consumer) Uint32Singleton(name string) (uint32, error) {
	return c.uint32Singleton(name)
}

// Float32Singleton reads a scalar float32 field.
func (c *Consumer) Float32Singleton(name string) (float32, error) {
	return c.float32Singleton(name)
}

// StringSingleton reads a scalar string field.
func (c *Consumer) StringSingleton(name string) (string, error) {
	return c.stringSingleton(name)
}

// OptionalString reads a present/absent string field; nil means absent.
func (c *Consumer) OptionalString(name string) (*string, error) {
	return c.optionalString(name)
}

// StringArray reads a string field.
func (c *Consumer) StringArray(name string) ([]string, error) {
	return c.stringArray(name)
}

// PrimitiveArray transfers the field's buffer to the caller. Identity is
// preserved: the returned Buffer is the one the record was built with.
func (c *Consumer) PrimitiveArray(name string, elem format.ElementType) (*buffer.Buffer, error) {
	return c.primitive(name, elem)
}

// Viewer decodes a Record without consuming it: primitive buffers are shared
// (the record keeps its reference), so a later in-place transform on the
// returned data copies instead of mutating the record's bytes.
type Viewer struct {
	access
}

// NewViewer wraps a record for shared, read-only decode.
func NewViewer(rec *Record) *Viewer {
	return &Viewer{access{rec: rec}}
}

// Uint32Singleton reads a scalar uint32 field.
func (v *Viewer) Uint32Singleton(name string) (uint32, error) {
	return v.uint32Singleton(name)
}

// Float32Singleton reads a scalar float32 field.
func (v *Viewer) Float32Singleton(name string) (float32, error) {
	return v.float32Singleton(name)
}

// StringSingleton reads a scalar string field.
func (v *Viewer) StringSingleton(name string) (string, error) {
	return v.stringSingleton(name)
}

// OptionalString reads a present/absent string field; nil means absent.
func (v *Viewer) OptionalString(name string) (*string, error) {
	return v.optionalString(name)
}

// StringArray reads a string field. The slice is shared with the record.
func (v *Viewer) StringArray(name string) ([]string, error) {
	return v.stringArray(name)
}

// PrimitiveArray returns the field's buffer as a shared reference. The
// record remains a holder, so the returned buffer is not uniquely owned.
func (v *Viewer) PrimitiveArray(name string, elem format.ElementType) (*buffer.Buffer, error) {
	buf, err := v.primitive(name, elem)
	if err != nil {
		return nil, err
	}

	return buf.Retain(), nil
}
