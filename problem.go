// problem.go - RFC 7807 problem documents and the code mapping table.
//
// This is the only place where a Code is bound to an HTTP status, a gRPC
// code and a problem type URI. Metadata reaches the document exclusively
// through Metadata.IterWithRedaction; Redact fields are dropped, Hash and
// Last4 fields are transformed. Details follow the message: a Redactable
// error carries neither.
package masterror

import (
	"encoding/json"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ProblemContentType is the media type of a serialized Problem.
const ProblemContentType = "application/problem+json"

const problemTypeBase = "https://errors.masterror.rs/"

// CodeMapping binds a code to its transport representations.
type CodeMapping struct {
	HTTPStatus  int
	GRPC        codes.Code
	ProblemType string
	Kind        Kind
}

func mapping(status int, grpc codes.Code, slug string, kind Kind) CodeMapping {
	return CodeMapping{HTTPStatus: status, GRPC: grpc, ProblemType: problemTypeBase + slug, Kind: kind}
}

var codeMappings = map[Code]CodeMapping{
	CodeNotFound:              mapping(404, codes.NotFound, "not-found", KindNotFound),
	CodeValidation:            mapping(422, codes.InvalidArgument, "validation", KindValidation),
	CodeConflict:              mapping(409, codes.AlreadyExists, "conflict", KindConflict),
	CodeUserAlreadyExists:     mapping(409, codes.AlreadyExists, "user-already-exists", KindConflict),
	CodeUnauthorized:          mapping(401, codes.Unauthenticated, "unauthorized", KindUnauthorized),
	CodeForbidden:             mapping(403, codes.PermissionDenied, "forbidden", KindForbidden),
	CodeNotImplemented:        mapping(501, codes.Unimplemented, "not-implemented", KindNotImplemented),
	CodeBadRequest:            mapping(400, codes.InvalidArgument, "bad-request", KindBadRequest),
	CodeRateLimited:           mapping(429, codes.ResourceExhausted, "rate-limited", KindRateLimited),
	CodeInvalidJWT:            mapping(401, codes.Unauthenticated, "invalid-jwt", KindInvalidJWT),
	CodeInternal:              mapping(500, codes.Internal, "internal", KindInternal),
	CodeDatabase:              mapping(500, codes.Internal, "database", KindDatabase),
	CodeService:               mapping(500, codes.Internal, "service", KindService),
	CodeConfig:                mapping(500, codes.Internal, "config", KindConfig),
	CodeTimeout:               mapping(504, codes.DeadlineExceeded, "timeout", KindTimeout),
	CodeNetwork:               mapping(503, codes.Unavailable, "network", KindNetwork),
	CodeDependencyUnavailable: mapping(503, codes.Unavailable, "dependency-unavailable", KindDependencyUnavailable),
	CodeSerialization:         mapping(500, codes.Internal, "serialization", KindSerialization),
	CodeDeserialization:       mapping(500, codes.Internal, "deserialization", KindDeserialization),
	CodeExternalAPI:           mapping(500, codes.Unavailable, "external-api", KindExternalAPI),
	CodeQueue:                 mapping(500, codes.Unavailable, "queue", KindQueue),
	CodeCache:                 mapping(500, codes.Unavailable, "cache", KindCache),
}

// MappingFor returns the mapping of c, falling back to the internal mapping
// for codes this package does not know.
func MappingFor(c Code) CodeMapping {
	if m, ok := codeMappings[c]; ok {
		return m
	}
	return codeMappings[CodeInternal]
}

// Problem is an RFC 7807 document with a gRPC mirror.
type Problem struct {
	Type     string          `json:"type"`
	Title    string          `json:"title"`
	Status   int             `json:"status"`
	Detail   string          `json:"detail,omitempty"`
	Code     Code            `json:"code"`
	GRPC     *codes.Code     `json:"grpc,omitempty"`
	Metadata ProblemMetadata `json:"metadata,omitempty"`
	Details  json.RawMessage `json:"details,omitempty"`

	// Carried for the HTTP layer, never serialized.
	RetryAfter      *uint64 `json:"-"`
	WWWAuthenticate string  `json:"-"`
}

// NewProblem maps e onto a problem document. e is not modified.
func NewProblem(e *AppError) Problem {
	if e == nil {
		e = &AppError{kind: KindInternal, code: CodeInternal}
	}
	m := MappingFor(e.code)
	grpc := m.GRPC
	p := Problem{
		Type:            m.ProblemType,
		Title:           e.kind.Label(),
		Status:          e.kind.HTTPStatus(),
		Code:            e.code,
		GRPC:            &grpc,
		Metadata:        publicMetadata(&e.metadata),
		WWWAuthenticate: e.wwwAuthenticate,
	}
	if e.editPolicy != EditRedact {
		if e.hasMessage && e.message != "" {
			p.Detail = e.message
		} else {
			p.Detail = e.kind.Label()
		}
		if e.details != nil {
			p.Details = append(json.RawMessage(nil), e.details...)
		}
	}
	if e.retry != nil {
		secs := e.retry.AfterSeconds
		p.RetryAfter = &secs
	}
	return p
}

// GRPCStatus converts the problem to a gRPC status; the detail (or title
// when the detail was redacted) becomes the status message.
func (p Problem) GRPCStatus() *status.Status {
	code := codes.Internal
	if p.GRPC != nil {
		code = *p.GRPC
	}
	msg := p.Detail
	if msg == "" {
		msg = p.Title
	}
	return status.New(code, msg)
}

// GRPCStatus lets status.FromError and status.Code recognise AppError.
func (e *AppError) GRPCStatus() *status.Status {
	return NewProblem(e).GRPCStatus()
}

// ProblemMetadata is the ordered, already sanitized metadata of a Problem.
type ProblemMetadata []ProblemField

// ProblemField is a single public metadata member.
type ProblemField struct {
	Name  string
	Value Value
}

func publicMetadata(m *Metadata) ProblemMetadata {
	var out ProblemMetadata
	for f := range m.IterWithRedaction() {
		if v, ok := sanitize(f); ok {
			out = append(out, ProblemField{Name: f.name, Value: v})
		}
	}
	return out
}

// Get returns the public value for name.
func (pm ProblemMetadata) Get(name string) (Value, bool) {
	for _, f := range pm {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// MarshalJSON writes the members in insertion order.
func (pm ProblemMetadata) MarshalJSON() ([]byte, error) {
	b := make([]byte, 0, 64)
	b = append(b, '{')
	for i, f := range pm {
		if i > 0 {
			b = append(b, ',')
		}
		b = appendJSONString(b, f.Name)
		b = append(b, ':')
		b = appendValueJSON(b, f.Value)
	}
	return append(b, '}'), nil
}

var _ json.Marshaler = ProblemMetadata(nil)
