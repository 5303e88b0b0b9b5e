// value.go - the closed set of metadata value types.
//
// Value is a small tagged union in the spirit of slog.Value: one struct, a
// type tag, and typed accessors. It is comparable only through Equal because
// JSON payloads are byte slices.
package masterror

import (
	"bytes"
	"encoding/json"
	"math"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ValueType tags the variant held by a Value.
type ValueType uint8

const (
	TypeString ValueType = iota
	TypeInt64
	TypeUint64
	TypeFloat64
	TypeBool
	TypeUUID
	TypeDuration
	TypeIP
	TypeJSON
)

var valueTypeNames = [...]string{
	TypeString:   "string",
	TypeInt64:    "int64",
	TypeUint64:   "uint64",
	TypeFloat64:  "float64",
	TypeBool:     "bool",
	TypeUUID:     "uuid",
	TypeDuration: "duration",
	TypeIP:       "ip",
	TypeJSON:     "json",
}

func (t ValueType) String() string {
	if int(t) < len(valueTypeNames) {
		return valueTypeNames[t]
	}
	return "ValueType(" + strconv.Itoa(int(t)) + ")"
}

// Value is a typed metadata value.
type Value struct {
	typ ValueType
	s   string
	n   uint64 // int64/uint64/float64 bits/bool/duration
	id  uuid.UUID
	ip  netip.Addr
	raw json.RawMessage
}

func StringValue(v string) Value { return Value{typ: TypeString, s: v} }

func Int64Value(v int64) Value { return Value{typ: TypeInt64, n: uint64(v)} }

func Uint64Value(v uint64) Value { return Value{typ: TypeUint64, n: v} }

func Float64Value(v float64) Value { return Value{typ: TypeFloat64, n: math.Float64bits(v)} }

func BoolValue(v bool) Value {
	var n uint64
	if v {
		n = 1
	}
	return Value{typ: TypeBool, n: n}
}

func UUIDValue(v uuid.UUID) Value { return Value{typ: TypeUUID, id: v} }

// DurationValue stores d as seconds plus nanoseconds. Negative durations are
// clamped to zero.
func DurationValue(d time.Duration) Value {
	if d < 0 {
		d = 0
	}
	return Value{typ: TypeDuration, n: uint64(d)}
}

func IPValue(v netip.Addr) Value { return Value{typ: TypeIP, ip: v} }

// JSONValue embeds a raw JSON document in compact form. Invalid JSON is
// stored as a JSON string so that rendered output stays well formed.
func JSONValue(raw json.RawMessage) Value {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		quoted, _ := json.Marshal(string(raw))
		return Value{typ: TypeJSON, raw: quoted}
	}
	return Value{typ: TypeJSON, raw: buf.Bytes()}
}

func (v Value) Type() ValueType { return v.typ }

func (v Value) Str() string { return v.s }

func (v Value) Int64() int64 { return int64(v.n) }

func (v Value) Uint64() uint64 { return v.n }

func (v Value) Float64() float64 { return math.Float64frombits(v.n) }

func (v Value) Bool() bool { return v.n == 1 }

func (v Value) UUID() uuid.UUID { return v.id }

func (v Value) Duration() time.Duration { return time.Duration(v.n) }

func (v Value) IP() netip.Addr { return v.ip }

// JSON returns a copy of the embedded document.
func (v Value) JSON() json.RawMessage {
	if v.raw == nil {
		return nil
	}
	cp := make(json.RawMessage, len(v.raw))
	copy(cp, v.raw)
	return cp
}

// Seconds and Nanos split a duration value the way the wire format does.
func (v Value) Seconds() uint64 { return v.n / uint64(time.Second) }

func (v Value) Nanos() uint32 { return uint32(v.n % uint64(time.Second)) }

// Equal reports whether two values hold the same variant and payload.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case TypeString:
		return v.s == o.s
	case TypeUUID:
		return v.id == o.id
	case TypeIP:
		return v.ip == o.ip
	case TypeJSON:
		return bytes.Equal(v.raw, o.raw)
	default:
		return v.n == o.n
	}
}

// String renders the value for humans. Durations use the trimmed
// "<secs>.<fraction>s" form ("1.5s", "3s").
func (v Value) String() string {
	switch v.typ {
	case TypeString:
		return v.s
	case TypeInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case TypeUint64:
		return strconv.FormatUint(v.n, 10)
	case TypeFloat64:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case TypeBool:
		return strconv.FormatBool(v.Bool())
	case TypeUUID:
		return v.id.String()
	case TypeDuration:
		return formatDuration(v.Seconds(), v.Nanos())
	case TypeIP:
		return v.ip.String()
	case TypeJSON:
		return string(v.raw)
	default:
		return ""
	}
}

func formatDuration(secs uint64, nanos uint32) string {
	if nanos == 0 {
		return strconv.FormatUint(secs, 10) + "s"
	}
	frac := strconv.FormatUint(uint64(nanos)+1_000_000_000, 10)[1:]
	return strconv.FormatUint(secs, 10) + "." + strings.TrimRight(frac, "0") + "s"
}
