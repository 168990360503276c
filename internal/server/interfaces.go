package server

import "context"

// Server is the lifecycle contract of the local API server.
type Server interface {
	// Run serves requests until ctx is cancelled, then shuts down gracefully.
	Run(ctx context.Context) error

	// Shutdown stops accepting connections and waits for in-flight requests
	// for at most the configured shutdown timeout.
	Shutdown() error
}
