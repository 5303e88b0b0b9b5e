// redaction.go - per-field and per-message visibility policies.
package masterror

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strconv"
	"unicode/utf8"
)

// Redaction controls how a metadata field appears in external output.
type Redaction uint8

const (
	// Preserve renders the value as is. It is the default.
	Preserve Redaction = iota
	// Redact omits the field from external output.
	Redact
	// Hash replaces the value with the hex SHA-256 of its canonical bytes.
	Hash
	// Last4 masks everything except the trailing four characters.
	Last4
)

func (r Redaction) String() string {
	switch r {
	case Preserve:
		return "preserve"
	case Redact:
		return "redact"
	case Hash:
		return "hash"
	case Last4:
		return "last4"
	default:
		return "Redaction(" + strconv.Itoa(int(r)) + ")"
	}
}

// EditPolicy governs whether the top-level message may leave the process.
// It is independent from field redaction.
type EditPolicy uint8

const (
	EditPreserve EditPolicy = iota
	EditRedact
)

func (p EditPolicy) String() string {
	if p == EditRedact {
		return "redact"
	}
	return "preserve"
}

// sanitize applies the field's policy. ok is false when the field must be
// left out entirely. Unknown policies fail closed.
func sanitize(f Field) (Value, bool) {
	switch f.redaction {
	case Preserve:
		return f.value, true
	case Hash:
		return StringValue(hashValue(f.value)), true
	case Last4:
		if f.value.typ == TypeBool {
			return Value{}, false
		}
		return StringValue(maskLast4(f.value.String())), true
	default:
		return Value{}, false
	}
}

func hashValue(v Value) string {
	h := sha256.New()
	switch v.typ {
	case TypeFloat64:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], v.n)
		h.Write(b[:])
	case TypeDuration:
		var b [12]byte
		binary.LittleEndian.PutUint64(b[:8], v.Seconds())
		binary.LittleEndian.PutUint32(b[8:], v.Nanos())
		h.Write(b[:])
	case TypeIP:
		h.Write(v.ip.AsSlice())
	case TypeJSON:
		h.Write(v.raw)
	default:
		h.Write([]byte(v.String()))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// maskLast4 keeps the last four runes, or only the last one when the value
// has four runes or fewer.
func maskLast4(s string) string {
	total := utf8.RuneCountInString(s)
	if total == 0 {
		return ""
	}
	keep := 4
	if total <= 4 {
		keep = 1
	}
	masked := total - keep
	out := make([]byte, 0, len(s))
	i := 0
	for _, r := range s {
		if i < masked {
			out = append(out, '*')
		} else {
			out = utf8.AppendRune(out, r)
		}
		i++
	}
	return string(out)
}
