package adapter

import "errors"

var (
	// ErrUpstreamUnreachable means no HTTP response came back at all.
	ErrUpstreamUnreachable = errors.New("upstream unreachable")
	// ErrInvalidTarget means the target is not a usable base URL.
	ErrInvalidTarget = errors.New("invalid upstream target")
)
