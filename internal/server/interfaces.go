package server

import "context"

// Server defines the lifecycle contract of the HTTP servers managed by this
// package.
//
// The listener is bound when the server is created, so [URLs] is known
// before [RunServer] is called.
type Server interface {
	// RunServer serves requests and blocks until ctx is canceled, a stop
	// signal arrives or serving fails. A regular stop returns nil.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server and frees the listener.
	Shutdown()

	// URLs returns the addresses the server is reachable at.
	URLs() URLs
}
