package mgr

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
)

// WorkerCtx provides workers with the necessary environment for flow
// control and logging.
type WorkerCtx struct {
	name   string
	ctx    context.Context
	logger *slog.Logger
}

// Ctx returns the worker context.
func (w *WorkerCtx) Ctx() context.Context {
	return w.ctx
}

// Done returns the context Done channel.
func (w *WorkerCtx) Done() <-chan struct{} {
	return w.ctx.Done()
}

// IsDone checks whether the worker context is done.
func (w *WorkerCtx) IsDone() bool {
	return w.ctx.Err() != nil
}

// Logger returns the logger used by the worker context.
func (w *WorkerCtx) Logger() *slog.Logger {
	return w.logger
}

// Debug logs at LevelDebug.
func (w *WorkerCtx) Debug(msg string, args ...any) {
	w.logger.DebugContext(w.ctx, msg, args...)
}

// Info logs at LevelInfo.
func (w *WorkerCtx) Info(msg string, args ...any) {
	w.logger.InfoContext(w.ctx, msg, args...)
}

// Warn logs at LevelWarn.
func (w *WorkerCtx) Warn(msg string, args ...any) {
	w.logger.WarnContext(w.ctx, msg, args...)
}

// Error logs at LevelError.
func (w *WorkerCtx) Error(msg string, args ...any) {
	w.logger.ErrorContext(w.ctx, msg, args...)
}

// Go starts the given function as a worker in a new goroutine. Panics
// are recovered and logged, as are errors other than context.Canceled.
// The worker is stopped by canceling the manager.
func (m *Manager) Go(name string, fn func(w *WorkerCtx) error) {
	m.wg.Add(1)
	go m.runWorker(name, fn)
}

func (m *Manager) runWorker(name string, fn func(w *WorkerCtx) error) {
	defer m.wg.Done()

	w := &WorkerCtx{
		name:   name,
		ctx:    m.ctx,
		logger: m.logger.With("worker", name),
	}

	defer func() {
		if panicVal := recover(); panicVal != nil {
			w.logger.Error(
				"worker panicked",
				"panic", panicVal,
				"stack", string(debug.Stack()),
			)
		}
	}()

	err := fn(w)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
	default:
		w.logger.Error("worker failed", "err", err)
	}
}
