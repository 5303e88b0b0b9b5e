// chain.go - walking the causes behind an error.
//
// Chain is the plain, lazy cursor: it follows Unwrap() error one step at a
// time and trusts the graph it is given. A cyclic Unwrap implementation on a
// foreign error makes it run forever; callers who cannot rule that out use
// Walk or Root, which track visited nodes.
//
// Joined errors (Unwrap() []error) end a Chain: the joined value itself is
// yielded and its children are not followed. Walk does visit them.
package masterror

import (
	"errors"
	"iter"
	"reflect"
)

type singleUnwrapper interface{ Unwrap() error }
type multiUnwrapper interface{ Unwrap() []error }

// Chain is a forward-only cursor over a causal chain.
type Chain struct {
	current error
}

// NewChain starts a chain at err (err itself is the first item).
func NewChain(err error) *Chain { return &Chain{current: err} }

// Chain returns a cursor over the causes of e, starting with the attached
// cause (e itself is not included).
func (e *AppError) Chain() *Chain {
	if e == nil || e.context == nil {
		return &Chain{}
	}
	return &Chain{current: e.context.err}
}

// Next returns the current error and advances to its cause.
func (c *Chain) Next() (error, bool) {
	cur := c.current
	if cur == nil {
		return nil, false
	}
	c.current = errors.Unwrap(cur)
	return cur, true
}

// All drains the cursor as an iterator. Like Next it cannot be restarted.
func (c *Chain) All() iter.Seq[error] {
	return func(yield func(error) bool) {
		for {
			err, ok := c.Next()
			if !ok || !yield(err) {
				return
			}
		}
	}
}

// ---------- cycle-safe traversal ---------------------------------------------

// isComparable reports whether err can be used as a map key. The check
// inspects the dynamic contents, so a struct whose interface field holds a
// slice-carrying error is rejected.
func isComparable(err error) bool {
	return err != nil && reflect.ValueOf(err).Comparable()
}

// ptrID returns a pointer identity for pointer-typed dynamic errors.
func ptrID(err error) (uintptr, bool) {
	rv := reflect.ValueOf(err)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		return rv.Pointer(), true
	}
	return 0, false
}

type seenSet struct {
	errs map[error]struct{}
	ptrs map[uintptr]struct{}
}

func newSeenSet() *seenSet {
	return &seenSet{
		errs: make(map[error]struct{}, 8),
		ptrs: make(map[uintptr]struct{}, 8),
	}
}

// mark returns false if err was already visited. Dynamic types that are
// neither comparable nor pointers cannot be tracked and are always accepted;
// the depth cap bounds them.
func (s *seenSet) mark(err error) bool {
	if err == nil {
		return false
	}
	if isComparable(err) {
		if _, ok := s.errs[err]; ok {
			return false
		}
		s.errs[err] = struct{}{}
		return true
	}
	if id, ok := ptrID(err); ok {
		if _, dup := s.ptrs[id]; dup {
			return false
		}
		s.ptrs[id] = struct{}{}
	}
	return true
}

const maxWalkDepth = 1 << 12

// Walk visits each distinct node of err's unwrap graph in pre-order,
// following both Unwrap forms. It stops when visit returns false and is safe
// on cycles.
func Walk(err error, visit func(error) bool) {
	if err == nil || visit == nil {
		return
	}
	seen := newSeenSet()
	stack := make([]error, 0, 8)
	stack = append(stack, err)
	seen.mark(err)

	for steps := 0; len(stack) > 0 && steps < maxWalkDepth; steps++ {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !visit(cur) {
			return
		}

		switch u := cur.(type) {
		case multiUnwrapper:
			kids := u.Unwrap()
			for i := len(kids) - 1; i >= 0; i-- {
				if seen.mark(kids[i]) {
					stack = append(stack, kids[i])
				}
			}
		case singleUnwrapper:
			if next := u.Unwrap(); seen.mark(next) {
				stack = append(stack, next)
			}
		}
	}
}

// Root returns the deepest error reachable through Unwrap() error, stopping
// early if a node repeats.
func Root(err error) error {
	if err == nil {
		return nil
	}
	seen := newSeenSet()
	seen.mark(err)
	for depth := 0; depth < maxWalkDepth; depth++ {
		next := errors.Unwrap(err)
		if !seen.mark(next) {
			return err
		}
		err = next
	}
	return err
}
