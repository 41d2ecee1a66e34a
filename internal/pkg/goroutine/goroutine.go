// Package goroutine runs bounded fire-and-forget background work that must
// outlive the request that started it and be drained on shutdown.
package goroutine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/worknest/worknest-api/internal/pkg/stacktrace"
)

const (
	// DefaultMaxGoroutine is used when NewManager receives a non-positive limit.
	DefaultMaxGoroutine = 100
	// DefaultTaskTimeout bounds a single task when the manager has no timeout.
	DefaultTaskTimeout = 30 * time.Second
	// MaxKeptErrors caps the task errors held for Wait; later ones are only
	// logged and counted.
	MaxKeptErrors = 32
)

// Manager runs tasks in goroutines with a concurrency limit.
//
// Tasks get a context that keeps the caller's values (correlation ID, span)
// but not its cancellation, so they survive the end of an HTTP request.
type Manager struct {
	mu      sync.Mutex
	errs    []error
	dropped int
	wg      sync.WaitGroup
	sema    chan struct{}
	timeout time.Duration

	stateMu sync.RWMutex
	closed  bool
}

// NewManager creates a Manager running at most maxGoroutine tasks at once,
// each bounded by timeout.
func NewManager(maxGoroutine int, timeout time.Duration) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = DefaultMaxGoroutine
	}
	if timeout <= 0 {
		timeout = DefaultTaskTimeout
	}

	return &Manager{
		sema:    make(chan struct{}, maxGoroutine),
		timeout: timeout,
	}
}

// Go schedules f. It reports false, and logs, when the manager is closed or
// at capacity; the task is dropped in that case.
func (g *Manager) Go(pCtx context.Context, name string, f func(ctx context.Context) error) bool {
	if g == nil {
		return false
	}

	g.stateMu.RLock()
	defer g.stateMu.RUnlock()

	if g.closed {
		slog.WarnContext(pCtx, "goroutine manager is closed, task dropped", "task", name)
		return false
	}

	select {
	case g.sema <- struct{}{}:
	default:
		slog.WarnContext(pCtx, "goroutine limit reached, task dropped", "task", name)
		return false
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(pCtx), g.timeout)

	g.wg.Go(func() {
		defer func() {
			cancel()
			<-g.sema

			if rvr := recover(); rvr != nil {
				stack := debug.Stack()
				if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
					slog.ErrorContext(ctx, "panic occurred in goroutine", "task", name, "because", rvr, "stack", paths)
				} else {
					slog.ErrorContext(ctx, "panic occurred in goroutine", "task", name, "because", rvr, "stack", string(stack))
				}
			}
		}()

		if err := f(ctx); err != nil {
			slog.WarnContext(ctx, "background task failed", "task", name, "error", err)
			g.mu.Lock()
			if len(g.errs) < MaxKeptErrors {
				g.errs = append(g.errs, err)
			} else {
				g.dropped++
			}
			g.mu.Unlock()
		}
	})

	return true
}

// Wait closes the manager, blocks until every scheduled task finishes and
// returns the joined task errors, at most MaxKeptErrors of them plus a count
// of the rest.
func (g *Manager) Wait() error {
	if g == nil {
		return nil
	}

	g.stateMu.Lock()
	g.closed = true
	g.stateMu.Unlock()

	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.dropped > 0 {
		return errors.Join(append(g.errs, fmt.Errorf("%d more background task errors", g.dropped))...)
	}

	return errors.Join(g.errs...)
}
