// error.go - the AppError envelope and its accessors.
//
// Design tenets:
//   - Interop-first: errors.Is/As walk through the attached cause.
//   - Non-mutating ergonomics: every builder returns a new value.
//   - Rendering is explicit: callers pass a RenderContext; nothing reads the
//     environment behind their back.
package masterror

// RetryAdvice tells the caller's transport when a retry may succeed.
// It is advisory; masterror never retries anything itself.
type RetryAdvice struct {
	AfterSeconds uint64
}

// AppError is the error envelope. Values are immutable once returned from a
// constructor or builder; share them freely.
type AppError struct {
	kind            Kind
	code            Code
	message         string
	hasMessage      bool
	metadata        Metadata
	retry           *RetryAdvice
	wwwAuthenticate string
	editPolicy      EditPolicy
	context         *Attachment
	stk             Stack
	diag            *Diagnostics
	details         []byte
	dirty           uint32
}

// Error returns the concise form "<label>: <message>" (or the label alone).
// It never depends on the render mode.
func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if !e.hasMessage || e.message == "" {
		return e.kind.Label()
	}
	return e.kind.Label() + ": " + e.message
}

// Unwrap exposes the attached cause to errors.Is/As.
func (e *AppError) Unwrap() error {
	if e == nil || e.context == nil {
		return nil
	}
	return e.context.err
}

func (e *AppError) Kind() Kind { return e.kind }

func (e *AppError) Code() Code { return e.code }

// Message returns the raw message and whether one was set. Renderers decide
// separately whether it may be shown (see EditPolicy).
func (e *AppError) Message() (string, bool) { return e.message, e.hasMessage }

// Metadata returns a copy of the error's metadata.
func (e *AppError) Metadata() Metadata { return e.metadata.Clone() }

// Retry returns the retry advice, if any.
func (e *AppError) Retry() (RetryAdvice, bool) {
	if e.retry == nil {
		return RetryAdvice{}, false
	}
	return *e.retry, true
}

func (e *AppError) WWWAuthenticate() (string, bool) {
	return e.wwwAuthenticate, e.wwwAuthenticate != ""
}

func (e *AppError) EditPolicy() EditPolicy { return e.editPolicy }

// Attachment returns the cause wrapper, if any.
func (e *AppError) Attachment() (Attachment, bool) {
	if e.context == nil {
		return Attachment{}, false
	}
	return *e.context, true
}

// Stack returns the frames captured by WithStack.
func (e *AppError) Stack() Stack { return e.stk }

// Dirty returns how many builder calls modified this value after
// construction. Telemetry is not re-emitted for them.
func (e *AppError) Dirty() uint32 { return e.dirty }

// visibleMessage is the message as external renderers may show it.
func (e *AppError) visibleMessage() (string, bool) {
	if e.editPolicy == EditRedact || !e.hasMessage {
		return "", false
	}
	return e.message, true
}
