package ingest

import "context"

// Pipeline is a long running source of document mutations
type Pipeline interface {
	// Run blocks until ctx is cancelled or the source fails
	Run(ctx context.Context) error

	Stop()
}
