// doc.go - package documentation for masterror
//
// Package masterror provides a single application error type with stable
// codes, redaction-aware metadata, and mode-specific rendering for local
// terminals, staging logs, and production responses.
//
// # Building errors
//
// Errors are built once and decorated through a fluent, copy-on-write
// builder. Every method returns a new *AppError; the receiver never changes.
//
//	err := masterror.Validation("email rejected").
//	           WithField(masterror.Str("field", "email")).
//	           WithField(masterror.Str("password", pw).WithRedaction(masterror.Redact)).
//	           WithRetryAfterSecs(30).
//	           WithContext(cause)
//
// New, With and Bare (and the kind constructors built on them) emit exactly
// one telemetry Event. Builder calls only bump Dirty on the new value.
//
// # Redaction
//
// Two independent axes:
//
//	+----------------------+-----------------------------+---------------------------+
//	| Axis                 | Set with                    | Affects                   |
//	+----------------------+-----------------------------+---------------------------+
//	| message edit policy  | Redactable()                | message / problem detail  |
//	| field redaction      | Field.WithRedaction,        | one metadata field        |
//	|                      | RedactField                 |                           |
//	+----------------------+-----------------------------+---------------------------+
//
// Fields default to Preserve. Redact drops the field from every rendered
// output; Hash and Last4 transform it. Metadata.Iter ignores redaction and is
// for trusted in-process code only.
//
// # Rendering
//
// Render picks one of three shapes from a RenderContext the caller builds
// (ContextFromOS, ContextFromEnv, or RenderConfig.Context):
//
//	local    multi-line text with "Caused by:" lines
//	staging  one-line JSON with "source_chain"
//	prod     one-line JSON, no causes
//
// MASTERROR_ENV (local|staging|prod) overrides; otherwise a Kubernetes
// service host implies prod; otherwise local.
//
// # Problem documents
//
// NewProblem maps an error to an RFC 7807 document with a gRPC status
// mirror. WriteProblem writes it to an http.ResponseWriter together with
// Retry-After and WWW-Authenticate. AppError also implements GRPCStatus.
//
// # Causes
//
// WithContext attaches an owned cause, WithSharedContext a shared one. Chain
// walks the causes lazily and trusts the graph; Walk and Root are the
// cycle-safe alternatives for foreign errors.
package masterror
