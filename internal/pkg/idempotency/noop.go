package idempotency

import (
	"context"
	"time"
)

// Noop runs every operation; used when no Redis is configured.
type Noop struct{}

func (Noop) Acquire(context.Context, string, time.Duration) (State, error) { return StateNone, nil }

func (Noop) MarkCompleted(context.Context, string, time.Duration) error { return nil }

func (Noop) Release(context.Context, string) error { return nil }

func (Noop) Exec(ctx context.Context, _ string, fn func(context.Context) error, _ ...Option) error {
	return fn(ctx)
}
