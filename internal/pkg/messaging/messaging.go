package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrUnsupported is returned when a feature is not supported by the selected broker.
var ErrUnsupported = errors.New("messaging: unsupported operation")

// Messaging is a broker client owned by the application and closed on shutdown.
type Messaging interface {
	io.Closer
	Publisher
}

// Publisher publishes messages to a destination (subject/topic).
type Publisher interface {
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// OutgoingMessage is a broker-agnostic message to be published.
type OutgoingMessage struct {
	Body    []byte
	Headers []Header
	// Delay requests deferred delivery; brokers without support reject it.
	Delay time.Duration
}

// Header is a key/value pair used for message headers.
type Header struct {
	Key   string
	Value []byte
}

// PublishResult carries broker publish metadata.
type PublishResult struct {
	Destination string
	Timestamp   time.Time
}
