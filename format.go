// format.go - fmt.Formatter for AppError.
//
//	%s, %v   → concise Error()
//	%+v      → local multi-line rendering (kind, code, message, causes,
//	           sanitized metadata, stack)
//	%q       → quoted Error()
package masterror

import (
	"fmt"
	"io"
)

func (e *AppError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = io.WriteString(s, RenderLocal(e))
			return
		}
		_, _ = io.WriteString(s, e.Error())
	case 's':
		_, _ = io.WriteString(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	default:
		_, _ = fmt.Fprintf(s, "%%!%c(*masterror.AppError=%s)", verb, e.Error())
	}
}

var _ fmt.Formatter = (*AppError)(nil)
