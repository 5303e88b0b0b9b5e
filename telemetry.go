// telemetry.go - creation-time telemetry for AppError.
//
// One Event is emitted per constructed error (New, With, Bare). Builder
// calls only bump the dirty counter on the returned value. The hook is the
// only process-wide state in the package and is swapped atomically.
package masterror

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Event describes a freshly constructed error.
type Event struct {
	Kind            Kind
	Code            Code
	Message         string
	HasMessage      bool
	Redactable      bool
	MetadataLen     int
	RetrySeconds    uint64
	HasRetry        bool
	WWWAuthenticate string
}

// Telemetry receives creation events. Implementations must be safe for
// concurrent use and must not block.
type Telemetry interface {
	ErrorCreated(Event)
}

// TelemetryFunc adapts a function to Telemetry.
type TelemetryFunc func(Event)

func (f TelemetryFunc) ErrorCreated(ev Event) { f(ev) }

type telemetryBox struct{ t Telemetry }

var telemetry atomic.Pointer[telemetryBox]

func init() {
	telemetry.Store(&telemetryBox{t: ZapTelemetry(zap.NewNop())})
}

// SetTelemetry installs t and returns the previous hook. A nil t restores
// the no-op default.
func SetTelemetry(t Telemetry) Telemetry {
	if t == nil {
		t = ZapTelemetry(zap.NewNop())
	}
	old := telemetry.Swap(&telemetryBox{t: t})
	return old.t
}

func emitTelemetry(e *AppError) {
	ev := Event{
		Kind:            e.kind,
		Code:            e.code,
		Message:         e.message,
		HasMessage:      e.hasMessage,
		Redactable:      e.editPolicy == EditRedact,
		MetadataLen:     e.metadata.Len(),
		WWWAuthenticate: e.wwwAuthenticate,
	}
	if e.retry != nil {
		ev.HasRetry = true
		ev.RetrySeconds = e.retry.AfterSeconds
	}
	telemetry.Load().t.ErrorCreated(ev)
	e.dirty = 0
}

type zapTelemetry struct {
	log *zap.Logger
}

// ZapTelemetry logs every creation event at error level on a child logger
// named "masterror". Redactable messages are not logged.
func ZapTelemetry(log *zap.Logger) Telemetry {
	if log == nil {
		log = zap.NewNop()
	}
	return &zapTelemetry{log: log.Named("masterror")}
}

func (z *zapTelemetry) ErrorCreated(ev Event) {
	ce := z.log.Check(zapcore.ErrorLevel, "app error constructed")
	if ce == nil {
		return
	}
	fields := make([]zap.Field, 0, 8)
	fields = append(fields,
		zap.String("code", string(ev.Code)),
		zap.Stringer("category", ev.Kind),
		zap.Bool("redactable", ev.Redactable),
		zap.Int("metadata_len", ev.MetadataLen),
	)
	if ev.HasMessage && !ev.Redactable {
		fields = append(fields, zap.String("message", ev.Message))
	}
	if ev.HasRetry {
		fields = append(fields, zap.Uint64("retry_seconds", ev.RetrySeconds))
	}
	if ev.WWWAuthenticate != "" {
		fields = append(fields, zap.String("www_authenticate", ev.WWWAuthenticate))
	}
	ce.Write(fields...)
}

// MarshalLogObject lets AppError be logged with zap.Object. Metadata goes
// through the same sanitization as external renderers.
func (e *AppError) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("kind", e.kind.String())
	enc.AddString("code", string(e.code))
	if msg, ok := e.visibleMessage(); ok {
		enc.AddString("message", msg)
	}
	if e.retry != nil {
		enc.AddUint64("retry_after_secs", e.retry.AfterSeconds)
	}
	if e.context != nil {
		enc.AddString("cause", e.context.Error())
	}
	if e.metadata.hasPublic() {
		return enc.AddObject("metadata", zapcore.ObjectMarshalerFunc(func(oe zapcore.ObjectEncoder) error {
			for f := range e.metadata.IterWithRedaction() {
				v, ok := sanitize(f)
				if !ok {
					continue
				}
				addZapValue(oe, f.name, v)
			}
			return nil
		}))
	}
	return nil
}

func addZapValue(enc zapcore.ObjectEncoder, key string, v Value) {
	switch v.typ {
	case TypeInt64:
		enc.AddInt64(key, v.Int64())
	case TypeUint64:
		enc.AddUint64(key, v.Uint64())
	case TypeFloat64:
		enc.AddFloat64(key, v.Float64())
	case TypeBool:
		enc.AddBool(key, v.Bool())
	case TypeDuration:
		enc.AddDuration(key, v.Duration())
	case TypeJSON:
		enc.AddByteString(key, v.raw)
	default:
		enc.AddString(key, v.String())
	}
}

var _ zapcore.ObjectMarshaler = (*AppError)(nil)
