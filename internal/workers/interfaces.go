// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface, a Workers aggregate that runs several
// workers together, and the workers that keep opened books in sync.
package workers

import (
	"context"

	"github.com/MKhiriev/go-ledger-sync/models"
)

// Worker is the interface that must be implemented by any background worker.
// It defines a single Run method that starts the worker's execution.
//
// Run blocks until ctx is cancelled or the worker fails. A worker stopped
// by ctx returns nil.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// BookSyncer is the part of the endpoint the workers drive.
// service.Endpoint implements it.
type BookSyncer interface {
	LocalBooks(ctx context.Context) ([]string, error)
	ToSync(bookID string) models.SyncRun
}
