// attachment.go - the causal predecessor of an AppError.
package masterror

// Attachment holds the cause of an AppError. Owned causes belong to a single
// error; Shared causes are referenced from several errors at once (the same
// root I/O failure wrapped by several call sites) and must be treated as
// read-only. Both variants expose the same error surface.
type Attachment struct {
	err    error
	shared bool
}

// Owned wraps err as an exclusively owned cause.
func Owned(err error) Attachment { return Attachment{err: err} }

// Shared wraps err as a cause that other errors may reference too.
func Shared(err error) Attachment { return Attachment{err: err, shared: true} }

// Err returns the wrapped cause.
func (a Attachment) Err() error { return a.err }

// IsShared reports whether the cause was attached as Shared.
func (a Attachment) IsShared() bool { return a.shared }

func (a Attachment) Error() string {
	if a.err == nil {
		return "<nil>"
	}
	return a.err.Error()
}

func (a Attachment) Unwrap() error { return a.err }
