// jsonw.go - append-style JSON helpers for deterministic output.
//
// Render output must be byte-identical across calls and keep metadata in
// insertion order, so objects are appended member by member instead of going
// through map marshalling.
package masterror

import (
	"math"
	"strconv"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// appendJSONString appends s as a quoted JSON string.
func appendJSONString(b []byte, s string) []byte {
	b = append(b, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"':
				b = append(b, '\\', '"')
			case c == '\\':
				b = append(b, '\\', '\\')
			case c == '\n':
				b = append(b, '\\', 'n')
			case c == '\r':
				b = append(b, '\\', 'r')
			case c == '\t':
				b = append(b, '\\', 't')
			case c < 0x20 || c == 0x7f:
				b = append(b, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
			default:
				b = append(b, c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b = append(b, "\ufffd"...)
		} else {
			b = append(b, s[i:i+size]...)
		}
		i += size
	}
	return append(b, '"')
}

// appendValueJSON appends the wire form of a metadata value.
func appendValueJSON(b []byte, v Value) []byte {
	switch v.typ {
	case TypeString, TypeUUID, TypeIP:
		return appendJSONString(b, v.String())
	case TypeInt64:
		return strconv.AppendInt(b, v.Int64(), 10)
	case TypeUint64:
		return strconv.AppendUint(b, v.Uint64(), 10)
	case TypeFloat64:
		f := v.Float64()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return append(b, "null"...)
		}
		return strconv.AppendFloat(b, f, 'g', -1, 64)
	case TypeBool:
		return strconv.AppendBool(b, v.Bool())
	case TypeDuration:
		b = append(b, `{"secs":`...)
		b = strconv.AppendUint(b, v.Seconds(), 10)
		b = append(b, `,"nanos":`...)
		b = strconv.AppendUint(b, uint64(v.Nanos()), 10)
		return append(b, '}')
	case TypeJSON:
		if len(v.raw) == 0 {
			return append(b, "null"...)
		}
		return append(b, v.raw...)
	default:
		return append(b, "null"...)
	}
}

// appendPublicMetadata appends `"metadata":{...}` with every field that
// survives sanitization, preceded by a comma. Nothing is written when no
// field survives.
func appendPublicMetadata(b []byte, m *Metadata) []byte {
	if !m.hasPublic() {
		return b
	}
	b = append(b, `,"metadata":{`...)
	first := true
	for f := range m.IterWithRedaction() {
		v, ok := sanitize(f)
		if !ok {
			continue
		}
		if !first {
			b = append(b, ',')
		}
		first = false
		b = appendJSONString(b, f.name)
		b = append(b, ':')
		b = appendValueJSON(b, v)
	}
	return append(b, '}')
}
