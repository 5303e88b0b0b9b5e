// stack.go - opt-in stack capture for AppError.
//
// Stacks are never captured implicitly; WithStack marks the boundary where a
// trace is worth its cost. Frames are resolved through runtime.CallersFrames
// so inlined calls are reported correctly.
package masterror

import (
	"runtime"
	"strconv"
)

// Frame is a single call site.
type Frame struct {
	PC       uintptr
	File     string
	Line     int
	Function string
}

func (f Frame) String() string {
	return f.Function + " " + f.File + ":" + strconv.Itoa(f.Line)
}

// Stack lists frames from the most recent call outward.
type Stack []Frame

const defaultMaxDepth = 64

// captureStackDefault captures with the default depth bound. skip counts
// frames above the function that calls captureStackDefault.
func captureStackDefault(skip int) Stack {
	return captureStack(skip, defaultMaxDepth)
}

// captureStack skips runtime.Callers, itself and captureStackDefault (+3) so
// that skip=0 starts at the caller of captureStackDefault.
func captureStack(skip, maxDepth int) Stack {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	pc := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+3, pc)
	if n == 0 {
		return nil
	}
	frames := runtime.CallersFrames(pc[:n])
	out := make(Stack, 0, n)
	for {
		fr, more := frames.Next()
		out = append(out, Frame{
			PC:       fr.PC,
			File:     fr.File,
			Line:     fr.Line,
			Function: fr.Function,
		})
		if !more {
			break
		}
	}
	return out
}
