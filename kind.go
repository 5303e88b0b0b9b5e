// kind.go - semantic failure categories for masterror.
//
// Kind is the coarse classification an AppError carries. It drives the
// default Code, the HTTP status, and the title of problem documents. The set
// is closed in this package; unknown numeric values render as "Kind(n)" and
// map like KindInternal.
package masterror

import "strconv"

// Kind classifies a failure.
type Kind uint8

const (
	KindNotFound Kind = iota
	KindValidation
	KindConflict
	KindUnauthorized
	KindForbidden
	KindNotImplemented
	KindInternal
	KindBadRequest
	KindInvalidJWT
	KindDatabase
	KindService
	KindConfig
	KindTimeout
	KindNetwork
	KindRateLimited
	KindDependencyUnavailable
	KindSerialization
	KindDeserialization
	KindExternalAPI
	KindQueue
	KindCache

	kindCount
)

type kindInfo struct {
	ident  string
	label  string
	status int
}

var kindTable = [kindCount]kindInfo{
	KindNotFound:              {"NotFound", "Not found", 404},
	KindValidation:            {"Validation", "Validation error", 422},
	KindConflict:              {"Conflict", "Conflict", 409},
	KindUnauthorized:          {"Unauthorized", "Unauthorized", 401},
	KindForbidden:             {"Forbidden", "Forbidden", 403},
	KindNotImplemented:        {"NotImplemented", "Not implemented", 501},
	KindInternal:              {"Internal", "Internal server error", 500},
	KindBadRequest:            {"BadRequest", "Bad request", 400},
	KindInvalidJWT:            {"InvalidJwt", "Invalid JWT", 401},
	KindDatabase:              {"Database", "Database error", 500},
	KindService:               {"Service", "Service error", 500},
	KindConfig:                {"Config", "Configuration error", 500},
	KindTimeout:               {"Timeout", "Operation timed out", 504},
	KindNetwork:               {"Network", "Network error", 503},
	KindRateLimited:           {"RateLimited", "Rate limit exceeded", 429},
	KindDependencyUnavailable: {"DependencyUnavailable", "External dependency unavailable", 503},
	KindSerialization:         {"Serialization", "Serialization error", 500},
	KindDeserialization:       {"Deserialization", "Deserialization error", 500},
	KindExternalAPI:           {"ExternalApi", "External API error", 500},
	KindQueue:                 {"Queue", "Queue processing error", 500},
	KindCache:                 {"Cache", "Cache error", 500},
}

func (k Kind) valid() bool { return k < kindCount }

// String returns the stable identifier used in machine output ("NotFound").
func (k Kind) String() string {
	if !k.valid() {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindTable[k].ident
}

// Label returns the human-readable title ("Not found").
func (k Kind) Label() string {
	if !k.valid() {
		return kindTable[KindInternal].label
	}
	return kindTable[k].label
}

// HTTPStatus returns the transport status associated with the kind.
func (k Kind) HTTPStatus() int {
	if !k.valid() {
		return 500
	}
	return kindTable[k].status
}

// IsCritical reports whether the kind maps to a server-side (5xx) status.
func (k Kind) IsCritical() bool { return k.HTTPStatus() >= 500 }

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
