package proxy

import "errors"

var (
	// ErrInvalidTarget indicates a rule target that is not an absolute URL.
	ErrInvalidTarget = errors.New("invalid proxy target")
	// ErrInvalidContext indicates a rule context that does not start with "/".
	ErrInvalidContext = errors.New("invalid proxy context")
	// ErrDuplicateContext indicates two rules sharing one context.
	ErrDuplicateContext = errors.New("duplicate proxy context")
)
