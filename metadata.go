// metadata.go - ordered, redaction-aware metadata for masterror.
//
// Design:
//   • Internal representation: []Field in insertion order.
//   • Keys are unique; inserting an existing key replaces the value in place
//     and keeps the original position.
//   • Every Field carries its own Redaction; new fields default to Preserve.
//   • AppError builders clone the slice before writing (copy-on-write), so a
//     published Metadata is never modified through another error value.
//
// Only IterWithRedaction may feed externally visible output.
package masterror

import (
	"encoding/json"
	"iter"
	"net/netip"
	"time"

	"github.com/google/uuid"
)

// Field is a named metadata value with its redaction policy.
type Field struct {
	name      string
	value     Value
	redaction Redaction
}

// NewField builds a field with the default Preserve policy.
func NewField(name string, v Value) Field { return Field{name: name, value: v} }

func Str(name, v string) Field { return NewField(name, StringValue(v)) }

func I64(name string, v int64) Field { return NewField(name, Int64Value(v)) }

func U64(name string, v uint64) Field { return NewField(name, Uint64Value(v)) }

func F64(name string, v float64) Field { return NewField(name, Float64Value(v)) }

func Bool(name string, v bool) Field { return NewField(name, BoolValue(v)) }

func UUID(name string, v uuid.UUID) Field { return NewField(name, UUIDValue(v)) }

func Duration(name string, d time.Duration) Field { return NewField(name, DurationValue(d)) }

func IP(name string, v netip.Addr) Field { return NewField(name, IPValue(v)) }

func JSON(name string, raw json.RawMessage) Field { return NewField(name, JSONValue(raw)) }

func (f Field) Name() string { return f.name }

func (f Field) Value() Value { return f.value }

func (f Field) Redaction() Redaction { return f.redaction }

// WithRedaction returns a copy of f with the given policy.
func (f Field) WithRedaction(r Redaction) Field {
	f.redaction = r
	return f
}

// Metadata is an ordered set of fields keyed by name.
// The zero value is empty and ready to use.
type Metadata struct {
	fields []Field
}

// NewMetadata builds metadata from fields using upsert semantics.
func NewMetadata(fields ...Field) Metadata {
	var m Metadata
	m.Extend(fields...)
	return m
}

func (m *Metadata) Len() int { return len(m.fields) }

func (m *Metadata) IsEmpty() bool { return len(m.fields) == 0 }

func (m *Metadata) index(name string) int {
	for i := range m.fields {
		if m.fields[i].name == name {
			return i
		}
	}
	return -1
}

// Insert upserts f. When a field with the same name exists its value and
// policy are replaced in place and the previous value is returned.
func (m *Metadata) Insert(f Field) (Value, bool) {
	if i := m.index(f.name); i >= 0 {
		old := m.fields[i].value
		m.fields[i] = f
		return old, true
	}
	m.fields = append(m.fields, f)
	return Value{}, false
}

// Extend upserts every field in order.
func (m *Metadata) Extend(fields ...Field) {
	for _, f := range fields {
		m.Insert(f)
	}
}

// Get returns the value stored under name.
func (m *Metadata) Get(name string) (Value, bool) {
	if i := m.index(name); i >= 0 {
		return m.fields[i].value, true
	}
	return Value{}, false
}

// Field returns the full field stored under name.
func (m *Metadata) Field(name string) (Field, bool) {
	if i := m.index(name); i >= 0 {
		return m.fields[i], true
	}
	return Field{}, false
}

// SetRedaction changes the policy of an existing field. Absent names are
// ignored; no field is created.
func (m *Metadata) SetRedaction(name string, r Redaction) {
	if i := m.index(name); i >= 0 {
		m.fields[i].redaction = r
	}
}

// Iter yields every (name, value) pair regardless of redaction. It is meant
// for trusted in-process consumers only.
func (m *Metadata) Iter() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, f := range m.fields {
			if !yield(f.name, f.value) {
				return
			}
		}
	}
}

// IterWithRedaction yields every field together with its policy. Anything
// that produces externally visible output must read metadata through here.
func (m *Metadata) IterWithRedaction() iter.Seq[Field] {
	return func(yield func(Field) bool) {
		for _, f := range m.fields {
			if !yield(f) {
				return
			}
		}
	}
}

// Clone returns an independent copy.
func (m *Metadata) Clone() Metadata {
	if len(m.fields) == 0 {
		return Metadata{}
	}
	out := make([]Field, len(m.fields))
	copy(out, m.fields)
	return Metadata{fields: out}
}

// hasPublic reports whether at least one field survives external rendering.
func (m *Metadata) hasPublic() bool {
	for f := range m.IterWithRedaction() {
		if _, ok := sanitize(f); ok {
			return true
		}
	}
	return false
}
