package messaging

import (
	"context"
	"time"
)

// Noop discards every message; used when no broker is configured.
type Noop struct{}

func (Noop) Publish(ctx context.Context, destination string, _ OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	return PublishResult{Destination: destination, Timestamp: time.Now()}, nil
}

func (Noop) Close() error { return nil }
