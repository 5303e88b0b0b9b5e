// codes.go - stable wire codes for masterror.
//
// Intent:
//   - Codes are the machine-facing identifier clients match on.
//   - Every Kind has a canonical Code (CodeFor); callers may override it.
//   - The set is open: projects may mint their own codes with ParseCode.
//
// Conventions (enforced by ParseCode):
//   - Codes are SCREAMING_SNAKE_CASE ASCII: A-Z, 0-9 and single underscores,
//     starting with a letter and never ending with an underscore.
//   - Consumers switching on codes MUST keep a default branch.
package masterror

import (
	"errors"
	"fmt"
)

// Code is a stable, wire-visible error identifier.
type Code string

// ErrInvalidCode is returned by ParseCode for malformed codes.
var ErrInvalidCode = errors.New("masterror: invalid code")

// Client-facing
const (
	CodeNotFound          Code = "NOT_FOUND"
	CodeValidation        Code = "VALIDATION"
	CodeConflict          Code = "CONFLICT"
	CodeUserAlreadyExists Code = "USER_ALREADY_EXISTS"
	CodeUnauthorized      Code = "UNAUTHORIZED"
	CodeForbidden         Code = "FORBIDDEN"
	CodeNotImplemented    Code = "NOT_IMPLEMENTED"
	CodeBadRequest        Code = "BAD_REQUEST"
	CodeRateLimited       Code = "RATE_LIMITED"
	CodeInvalidJWT        Code = "INVALID_JWT"
)

// Server-side / infrastructure
const (
	CodeInternal              Code = "INTERNAL"
	CodeDatabase              Code = "DATABASE"
	CodeService               Code = "SERVICE"
	CodeConfig                Code = "CONFIG"
	CodeTimeout               Code = "TIMEOUT"
	CodeNetwork               Code = "NETWORK"
	CodeDependencyUnavailable Code = "DEPENDENCY_UNAVAILABLE"
	CodeSerialization         Code = "SERIALIZATION"
	CodeDeserialization       Code = "DESERIALIZATION"
	CodeExternalAPI           Code = "EXTERNAL_API"
	CodeQueue                 Code = "QUEUE"
	CodeCache                 Code = "CACHE"
)

// kindCodes is indexed by Kind.
var kindCodes = [kindCount]Code{
	KindNotFound:              CodeNotFound,
	KindValidation:            CodeValidation,
	KindConflict:              CodeConflict,
	KindUnauthorized:          CodeUnauthorized,
	KindForbidden:             CodeForbidden,
	KindNotImplemented:        CodeNotImplemented,
	KindInternal:              CodeInternal,
	KindBadRequest:            CodeBadRequest,
	KindInvalidJWT:            CodeInvalidJWT,
	KindDatabase:              CodeDatabase,
	KindService:               CodeService,
	KindConfig:                CodeConfig,
	KindTimeout:               CodeTimeout,
	KindNetwork:               CodeNetwork,
	KindRateLimited:           CodeRateLimited,
	KindDependencyUnavailable: CodeDependencyUnavailable,
	KindSerialization:         CodeSerialization,
	KindDeserialization:       CodeDeserialization,
	KindExternalAPI:           CodeExternalAPI,
	KindQueue:                 CodeQueue,
	KindCache:                 CodeCache,
}

// allBuiltinCodes is the ordered set of codes the package ships with.
var allBuiltinCodes = []Code{
	CodeNotFound,
	CodeValidation,
	CodeConflict,
	CodeUserAlreadyExists,
	CodeUnauthorized,
	CodeForbidden,
	CodeNotImplemented,
	CodeBadRequest,
	CodeRateLimited,
	CodeInvalidJWT,

	CodeInternal,
	CodeDatabase,
	CodeService,
	CodeConfig,
	CodeTimeout,
	CodeNetwork,
	CodeDependencyUnavailable,
	CodeSerialization,
	CodeDeserialization,
	CodeExternalAPI,
	CodeQueue,
	CodeCache,
}

var builtinCodeSet = func() map[Code]struct{} {
	m := make(map[Code]struct{}, len(allBuiltinCodes))
	for _, c := range allBuiltinCodes {
		m[c] = struct{}{}
	}
	return m
}()

// CodeFor returns the canonical code for a kind. The mapping is one-way:
// several codes may share a kind (USER_ALREADY_EXISTS and CONFLICT).
func CodeFor(k Kind) Code {
	if !k.valid() {
		return CodeInternal
	}
	return kindCodes[k]
}

// BuiltinCodes returns a defensive copy of the built-in codes in a stable order.
func BuiltinCodes() []Code {
	out := make([]Code, len(allBuiltinCodes))
	copy(out, allBuiltinCodes)
	return out
}

// IsBuiltin reports whether c is one of the built-in codes.
func (c Code) IsBuiltin() bool {
	_, ok := builtinCodeSet[c]
	return ok
}

func (c Code) String() string { return string(c) }

// ParseCode validates s and returns it as a Code.
func ParseCode(s string) (Code, error) {
	if !validCode(s) {
		return "", fmt.Errorf("%w: %q is not SCREAMING_SNAKE_CASE", ErrInvalidCode, s)
	}
	return Code(s), nil
}

// MustCode is ParseCode for package-level literals; it panics on bad input.
func MustCode(s string) Code {
	c, err := ParseCode(s)
	if err != nil {
		panic(err)
	}
	return c
}

func validCode(s string) bool {
	if s == "" || s[0] < 'A' || s[0] > 'Z' || s[len(s)-1] == '_' {
		return false
	}
	prevUnderscore := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			prevUnderscore = false
		case c == '_':
			if prevUnderscore {
				return false
			}
			prevUnderscore = true
		default:
			return false
		}
	}
	return true
}
