package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultShutdownTimeout bounds Stop when no timeout is configured
const DefaultShutdownTimeout = 30 * time.Second

// WorkerManager runs the registered workers as one group. The first worker that
// fails cancels the others; Done and Err expose the group's end to the caller.
type WorkerManager struct {
	logger          *zap.Logger
	shutdownTimeout time.Duration

	mu      sync.Mutex
	workers []Worker
	started bool

	done chan struct{}
	err  error
}

func NewWorkerManager(logger *zap.Logger, shutdownTimeout time.Duration) *WorkerManager {
	if shutdownTimeout <= 0 {
		shutdownTimeout = DefaultShutdownTimeout
	}
	return &WorkerManager{
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
		done:            make(chan struct{}),
	}
}

func (m *WorkerManager) Register(w Worker) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.workers = append(m.workers, w)
	m.logger.Info("Worker registered", zap.String("name", w.Name()))
}

// Start launches every worker and returns immediately.
func (m *WorkerManager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.workers) == 0 {
		return errors.New("no workers registered")
	}
	if m.started {
		return errors.New("workers already started")
	}
	m.started = true

	m.logger.Info("Starting workers", zap.Int("count", len(m.workers)))

	g, gctx := errgroup.WithContext(ctx)
	for _, w := range m.workers {
		g.Go(func() error {
			m.logger.Info("Starting worker", zap.String("name", w.Name()))

			err := w.Start(gctx)
			if err == nil || errors.Is(err, context.Canceled) {
				m.logger.Info("Worker exited", zap.String("name", w.Name()))
				return nil
			}

			m.logger.Error("Worker failed", zap.String("name", w.Name()), zap.Error(err))
			return fmt.Errorf("worker %s: %w", w.Name(), err)
		})
	}

	go func() {
		m.err = g.Wait()
		close(m.done)
	}()

	return nil
}

// Done is closed once every worker has returned
func (m *WorkerManager) Done() <-chan struct{} {
	return m.done
}

// Err returns the first worker failure; valid after Done is closed
func (m *WorkerManager) Err() error {
	<-m.done
	return m.err
}

// Stop signals every worker and waits up to the shutdown timeout.
func (m *WorkerManager) Stop() error {
	m.mu.Lock()
	workers := append([]Worker(nil), m.workers...)
	started := m.started
	m.mu.Unlock()

	m.logger.Info("Stopping workers", zap.Int("count", len(workers)))

	for _, w := range workers {
		if err := w.Stop(); err != nil {
			m.logger.Error("Failed to stop worker", zap.String("name", w.Name()), zap.Error(err))
		}
	}

	if !started {
		return nil
	}

	select {
	case <-m.done:
		m.logger.Info("All workers stopped gracefully")
		return m.err
	case <-time.After(m.shutdownTimeout):
		m.logger.Warn("Workers shutdown timed out, some messages may stay pending",
			zap.Duration("timeout", m.shutdownTimeout))
		return fmt.Errorf("workers shutdown timed out after %v", m.shutdownTimeout)
	}
}
