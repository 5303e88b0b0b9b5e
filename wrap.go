// wrap.go - converting foreign errors into AppError.
//
// From is the single place where kind selection for foreign errors lives, so
// call sites never hand-roll it. The original error is always kept as the
// owned cause, so errors.Is/As keep working through the result.
//
//	nil                                   → nil
//	*AppError anywhere in the chain       → that error, unchanged
//	context.DeadlineExceeded              → Timeout
//	context.Canceled                      → Service
//	fs.ErrNotExist                        → NotFound
//	fs.ErrPermission                      → Forbidden
//	*json.SyntaxError                     → Deserialization (+offset)
//	*json.UnmarshalTypeError              → Deserialization (+field)
//	*json.Unsupported{Type,Value}Error    → Serialization
//	*json.MarshalerError                  → Serialization
//	*yaml.TypeError                       → Config
//	net.Error with Timeout()              → Timeout
//	net.Error                             → Network
//	*strconv.NumError                     → BadRequest
//	gRPC status error                     → kind of the status code
//	anything else                         → Internal
package masterror

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net"
	"strconv"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gopkg.in/yaml.v3"
)

// From converts any error into an AppError.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	var ae *AppError
	if errors.As(err, &ae) && ae != nil {
		return ae
	}
	return classify(err).WithContext(err)
}

func classify(err error) *AppError {
	var (
		syntaxErr    *json.SyntaxError
		typeErr      *json.UnmarshalTypeError
		unsupType    *json.UnsupportedTypeError
		unsupValue   *json.UnsupportedValueError
		marshalerErr *json.MarshalerError
		yamlErr      *yaml.TypeError
		numErr       *strconv.NumError
		netErr       net.Error
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Timeout("operation deadline exceeded")
	case errors.Is(err, context.Canceled):
		return Service("operation canceled")
	case errors.Is(err, fs.ErrNotExist):
		return NotFound("resource does not exist")
	case errors.Is(err, fs.ErrPermission):
		return Forbidden("permission denied")
	case errors.As(err, &syntaxErr):
		return Deserialization("malformed JSON").WithField(I64("offset", syntaxErr.Offset))
	case errors.As(err, &typeErr):
		e := Deserialization("unexpected JSON type")
		if typeErr.Field != "" {
			e = e.WithField(Str("field", typeErr.Field))
		}
		return e
	case errors.As(err, &unsupType), errors.As(err, &unsupValue), errors.As(err, &marshalerErr):
		return Serialization("cannot encode JSON")
	case errors.As(err, &yamlErr):
		return Config("invalid YAML configuration")
	case errors.As(err, &netErr):
		if netErr.Timeout() {
			return Timeout("network timeout")
		}
		return Network("network failure")
	case errors.As(err, &numErr):
		return BadRequest("invalid number").WithField(Str("input", numErr.Num))
	}
	if st, ok := status.FromError(err); ok && st.Code() != codes.Unknown {
		return New(kindForGRPC(st.Code()), st.Message())
	}
	return Bare(KindInternal)
}

func kindForGRPC(c codes.Code) Kind {
	switch c {
	case codes.NotFound:
		return KindNotFound
	case codes.InvalidArgument, codes.OutOfRange:
		return KindBadRequest
	case codes.FailedPrecondition:
		return KindValidation
	case codes.AlreadyExists, codes.Aborted:
		return KindConflict
	case codes.Unauthenticated:
		return KindUnauthorized
	case codes.PermissionDenied:
		return KindForbidden
	case codes.Unimplemented:
		return KindNotImplemented
	case codes.ResourceExhausted:
		return KindRateLimited
	case codes.DeadlineExceeded:
		return KindTimeout
	case codes.Unavailable:
		return KindDependencyUnavailable
	case codes.Canceled:
		return KindService
	default:
		return KindInternal
	}
}

// Wrap attaches err as the owned cause of a new error of the given kind.
// It returns nil when err is nil. The result is a typed pointer, so check err
// before returning it through an error interface.
func Wrap(err error, kind Kind, msg string) *AppError {
	if err == nil {
		return nil
	}
	return New(kind, msg).WithContext(err)
}

// WrapField converts err with From and adds a metadata field. nil stays nil.
func WrapField(err error, f Field) *AppError {
	if err == nil {
		return nil
	}
	return From(err).WithField(f)
}

// Recode converts err with From and overrides its code. nil stays nil.
func Recode(err error, c Code) *AppError {
	if err == nil {
		return nil
	}
	return From(err).WithCode(c)
}
