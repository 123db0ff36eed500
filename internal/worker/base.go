package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// BaseWorker carries the identity and stop signal shared by stream consumers.
// Embed it and call StopChan or Sleep from the consume loop.
type BaseWorker struct {
	name          string
	consumerGroup string
	logger        *zap.Logger

	stopCh   chan struct{}
	stopOnce sync.Once
	stopped  atomic.Bool
}

func NewBaseWorker(name, consumerGroup string, logger *zap.Logger) *BaseWorker {
	return &BaseWorker{
		name:          name,
		consumerGroup: consumerGroup,
		logger:        logger.With(zap.String("worker", name)),
		stopCh:        make(chan struct{}),
	}
}

func (w *BaseWorker) Name() string {
	return w.name
}

func (w *BaseWorker) ConsumerGroup() string {
	return w.consumerGroup
}

// Logger is scoped with the worker name
func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}

// Stop closes the stop channel; later calls are no-ops
func (w *BaseWorker) Stop() error {
	w.stopOnce.Do(func() {
		w.logger.Info("Stopping worker")
		w.stopped.Store(true)
		close(w.stopCh)
	})
	return nil
}

func (w *BaseWorker) IsStopped() bool {
	return w.stopped.Load()
}

func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopCh
}

// Sleep waits for d and reports false when interrupted by ctx or Stop.
func (w *BaseWorker) Sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	case <-w.stopCh:
		return false
	}
}
