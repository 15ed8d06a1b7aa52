// Package mgr provides a minimal manager for named background workers
// with scoped logging, panic recovery and cancellation.
package mgr

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Manager manages workers.
type Manager struct {
	name   string
	logger *slog.Logger

	ctx       context.Context
	cancelCtx context.CancelFunc

	wg sync.WaitGroup
}

// New returns a new manager.
func New(name string) *Manager {
	return NewWithContext(context.Background(), name)
}

// NewWithContext returns a new manager that uses the given context.
func NewWithContext(ctx context.Context, name string) *Manager {
	m := &Manager{
		name:   name,
		logger: slog.Default().With("manager", name),
	}
	m.ctx, m.cancelCtx = context.WithCancel(ctx)
	return m
}

// Name returns the manager name.
func (m *Manager) Name() string {
	return m.name
}

// Ctx returns the manager context.
func (m *Manager) Ctx() context.Context {
	return m.ctx
}

// Cancel cancels the manager context, stopping all workers.
func (m *Manager) Cancel() {
	m.cancelCtx()
}

// Done returns the context Done channel.
func (m *Manager) Done() <-chan struct{} {
	return m.ctx.Done()
}

// IsDone checks whether the manager context is done.
func (m *Manager) IsDone() bool {
	return m.ctx.Err() != nil
}

// WaitForWorkers waits for all workers of this manager to be done,
// up to the given maximum duration. A max of zero defaults to one
// minute. It reports whether all workers finished in time.
func (m *Manager) WaitForWorkers(max time.Duration) (done bool) {
	if max <= 0 {
		max = time.Minute
	}

	finished := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return true
	case <-time.After(max):
		return false
	}
}

// Debug logs at LevelDebug.
func (m *Manager) Debug(msg string, args ...any) {
	m.logger.DebugContext(m.ctx, msg, args...)
}

// Info logs at LevelInfo.
func (m *Manager) Info(msg string, args ...any) {
	m.logger.InfoContext(m.ctx, msg, args...)
}

// Warn logs at LevelWarn.
func (m *Manager) Warn(msg string, args ...any) {
	m.logger.WarnContext(m.ctx, msg, args...)
}

// Error logs at LevelError.
func (m *Manager) Error(msg string, args ...any) {
	m.logger.ErrorContext(m.ctx, msg, args...)
}
