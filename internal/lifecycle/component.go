package lifecycle

import "context"

// Component is a supporting service that must be started before an
// analysis run and stopped after it (trace exporter, metrics writer).
type Component interface {
	// Start prepares the component. A failure aborts the run.
	Start(ctx context.Context) error

	// Stop flushes and releases the component. It should respect the
	// context deadline.
	Stop(ctx context.Context) error

	// Name returns the human-readable name used in logs and errors
	Name() string
}
