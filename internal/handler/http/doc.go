// Package http implements the routers of the dev and preview servers.
//
// Both routers share the same middleware chain (panic recovery, request
// tracing, access logging) and the proxy rules of the descriptor. The dev
// router serves the in-memory build and the live reload channel under
// /__frontkit; the preview router serves the build output from disk.
package http
