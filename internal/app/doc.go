// Package app wires the services, servers and workers behind each CLI
// command into a single process lifecycle.
package app
