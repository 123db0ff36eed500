package worker

import "context"

// Worker is a long running stream consumer.
// Start blocks until Stop is called, ctx is done or the worker fails.
type Worker interface {
	Start(ctx context.Context) error
	Stop() error
	Name() string
}
