// Package server runs the dev and preview HTTP servers.
//
// It picks the listening port (honoring strictPort), reports the Local and
// Network URLs, and handles startup, signal handling and graceful shutdown.
package server
