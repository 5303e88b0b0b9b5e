// predicates.go - classification helpers over arbitrary error chains.
//
// All helpers look for the first *AppError reachable through errors.As, so
// they see through fmt.Errorf("%w") wrappers and errors.Join.
package masterror

import "errors"

func asApp(err error) (*AppError, bool) {
	var ae *AppError
	if err == nil || !errors.As(err, &ae) || ae == nil {
		return nil, false
	}
	return ae, true
}

// KindOf returns the kind of the first AppError in err's chain.
func KindOf(err error) (Kind, bool) {
	ae, ok := asApp(err)
	if !ok {
		return 0, false
	}
	return ae.kind, true
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) Code {
	ae, ok := asApp(err)
	if !ok {
		return ""
	}
	return ae.code
}

// IsKind reports whether err carries an AppError of kind k.
func IsKind(err error, k Kind) bool {
	got, ok := KindOf(err)
	return ok && got == k
}

// HasCode reports whether err carries an AppError with code c.
func HasCode(err error, c Code) bool {
	ae, ok := asApp(err)
	return ok && ae.code == c
}

// RetryAfter returns the retry advice of the first AppError in err's chain.
func RetryAfter(err error) (RetryAdvice, bool) {
	ae, ok := asApp(err)
	if !ok {
		return RetryAdvice{}, false
	}
	return ae.Retry()
}

// IsRetryable is a policy-free heuristic: explicit retry advice, or a kind
// that usually denotes a transient condition (timeout, network, rate limit,
// unavailable dependency).
func IsRetryable(err error) bool {
	ae, ok := asApp(err)
	if !ok {
		return false
	}
	if ae.retry != nil {
		return true
	}
	switch ae.kind {
	case KindTimeout, KindNetwork, KindRateLimited, KindDependencyUnavailable:
		return true
	default:
		return false
	}
}
