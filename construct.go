// construct.go - constructors for AppError.
//
// New, With and Bare are the only entry points that emit telemetry; each
// emits exactly once. The kind constructors below are thin aliases of New.
package masterror

// New builds an error of the given kind with a message.
func New(kind Kind, msg string) *AppError {
	e := &AppError{
		kind:       kind,
		code:       CodeFor(kind),
		message:    msg,
		hasMessage: true,
	}
	emitTelemetry(e)
	return e
}

// With is an alias of New for call sites that read better as
// masterror.With(kind, msg).
func With(kind Kind, msg string) *AppError { return New(kind, msg) }

// Bare builds an error without a message.
func Bare(kind Kind) *AppError {
	e := &AppError{kind: kind, code: CodeFor(kind)}
	emitTelemetry(e)
	return e
}

func NotFound(msg string) *AppError { return New(KindNotFound, msg) }

func Validation(msg string) *AppError { return New(KindValidation, msg) }

func Conflict(msg string) *AppError { return New(KindConflict, msg) }

func Unauthorized(msg string) *AppError { return New(KindUnauthorized, msg) }

func Forbidden(msg string) *AppError { return New(KindForbidden, msg) }

func NotImplemented(msg string) *AppError { return New(KindNotImplemented, msg) }

func Internal(msg string) *AppError { return New(KindInternal, msg) }

func BadRequest(msg string) *AppError { return New(KindBadRequest, msg) }

func InvalidJWT(msg string) *AppError { return New(KindInvalidJWT, msg) }

func Database(msg string) *AppError { return New(KindDatabase, msg) }

func Service(msg string) *AppError { return New(KindService, msg) }

func Config(msg string) *AppError { return New(KindConfig, msg) }

func Timeout(msg string) *AppError { return New(KindTimeout, msg) }

func Network(msg string) *AppError { return New(KindNetwork, msg) }

// RateLimited builds a rate-limit error; pair it with WithRetryAfterSecs.
func RateLimited(msg string) *AppError { return New(KindRateLimited, msg) }

func DependencyUnavailable(msg string) *AppError { return New(KindDependencyUnavailable, msg) }

func Serialization(msg string) *AppError { return New(KindSerialization, msg) }

func Deserialization(msg string) *AppError { return New(KindDeserialization, msg) }

func ExternalAPI(msg string) *AppError { return New(KindExternalAPI, msg) }

func Queue(msg string) *AppError { return New(KindQueue, msg) }

func Cache(msg string) *AppError { return New(KindCache, msg) }

var _ error = (*AppError)(nil)
