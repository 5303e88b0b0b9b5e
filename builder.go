// builder.go - fluent, copy-on-write decoration of AppError.
//
// Every method returns a NEW *AppError and leaves the receiver untouched.
// The returned value has its dirty counter bumped; telemetry is not emitted
// again. A nil receiver is treated as Bare(KindInternal).
package masterror

import "encoding/json"

// clone copies e for modification. Metadata is shared until a method needs
// to write it (see withMeta).
func (e *AppError) clone() *AppError {
	if e == nil {
		e = Bare(KindInternal)
	}
	n := *e
	n.dirty++
	return &n
}

// withMeta is clone plus a private metadata copy.
func (e *AppError) withMeta() *AppError {
	n := e.clone()
	n.metadata = n.metadata.Clone()
	return n
}

// WithField upserts a single metadata field.
func (e *AppError) WithField(f Field) *AppError {
	n := e.withMeta()
	n.metadata.Insert(f)
	return n
}

// WithFields upserts fields in order.
func (e *AppError) WithFields(fields ...Field) *AppError {
	n := e.withMeta()
	n.metadata.Extend(fields...)
	return n
}

// RedactField changes the policy of an existing field. Unknown names leave
// the metadata unchanged.
func (e *AppError) RedactField(name string, r Redaction) *AppError {
	n := e.withMeta()
	n.metadata.SetRedaction(name, r)
	return n
}

// WithMetadata replaces the metadata wholesale.
func (e *AppError) WithMetadata(m Metadata) *AppError {
	n := e.clone()
	n.metadata = m.Clone()
	return n
}

// WithCode overrides the code derived from the kind.
func (e *AppError) WithCode(c Code) *AppError {
	n := e.clone()
	n.code = c
	return n
}

// WithRetryAfterSecs attaches retry advice.
func (e *AppError) WithRetryAfterSecs(secs uint64) *AppError {
	n := e.clone()
	n.retry = &RetryAdvice{AfterSeconds: secs}
	return n
}

// WithWWWAuthenticate attaches an authentication challenge.
func (e *AppError) WithWWWAuthenticate(challenge string) *AppError {
	n := e.clone()
	n.wwwAuthenticate = challenge
	return n
}

// Redactable marks the message as not safe for external output.
func (e *AppError) Redactable() *AppError {
	n := e.clone()
	n.editPolicy = EditRedact
	return n
}

// WithContext attaches err as an owned cause. A nil err clears nothing and
// attaches nothing.
func (e *AppError) WithContext(err error) *AppError {
	if err == nil {
		return e.clone()
	}
	if a, ok := err.(Attachment); ok {
		return e.WithAttachment(a)
	}
	return e.WithAttachment(Owned(err))
}

// WithSharedContext attaches err as a shared cause.
func (e *AppError) WithSharedContext(err error) *AppError {
	if err == nil {
		return e.clone()
	}
	return e.WithAttachment(Shared(err))
}

// WithAttachment attaches a prepared cause wrapper.
func (e *AppError) WithAttachment(a Attachment) *AppError {
	n := e.clone()
	if a.err != nil {
		n.context = &a
	}
	return n
}

// WithStack captures the current call stack.
func (e *AppError) WithStack() *AppError {
	return e.WithStackSkip(1)
}

// WithStackSkip captures the stack skipping extra frames above the caller
// (for helper wrappers).
func (e *AppError) WithStackSkip(skip int) *AppError {
	n := e.clone()
	n.stk = captureStackDefault(skip + 1)
	return n
}

// WithDetailsJSON attaches a structured payload for problem documents. The
// document is stored compacted; invalid JSON is kept as a JSON string.
// Details are dropped from every output when the error is Redactable.
func (e *AppError) WithDetailsJSON(raw json.RawMessage) *AppError {
	n := e.clone()
	n.details = JSONValue(raw).raw
	return n
}

// WithDetailsText attaches a plain-text payload, encoded as a JSON string.
func (e *AppError) WithDetailsText(text string) *AppError {
	n := e.clone()
	n.details, _ = json.Marshal(text)
	return n
}

// WithDetails marshals v as the details payload. A value that cannot be
// encoded yields a BadRequest error wrapping the encoder failure, and e is
// left as it was.
func (e *AppError) WithDetails(v any) (*AppError, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return e, BadRequest("failed to serialize details").WithContext(err)
	}
	return e.WithDetailsJSON(raw), nil
}

// Details returns a copy of the details payload, if any.
func (e *AppError) Details() (json.RawMessage, bool) {
	if e == nil || e.details == nil {
		return nil, false
	}
	return append(json.RawMessage(nil), e.details...), true
}
