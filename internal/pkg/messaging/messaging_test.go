package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromDriver(t *testing.T) {
	t.Parallel()

	m, err := NewFromDriver("", FactoryOptions{})
	require.NoError(t, err)
	assert.IsType(t, &Noop{}, m)

	m, err = NewFromDriver(" NOOP ", FactoryOptions{})
	require.NoError(t, err)
	assert.IsType(t, &Noop{}, m)

	_, err = NewFromDriver("nats", FactoryOptions{})
	assert.ErrorIs(t, err, ErrNATSURLRequired)

	_, err = NewFromDriver("kafka", FactoryOptions{})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestNoop_Publish(t *testing.T) {
	t.Parallel()

	res, err := Noop{}.Publish(context.Background(), "worknest.user.verified", OutgoingMessage{Body: []byte("{}")})
	require.NoError(t, err)
	assert.Equal(t, "worknest.user.verified", res.Destination)
	assert.WithinDuration(t, time.Now(), res.Timestamp, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Noop{}.Publish(ctx, "x", OutgoingMessage{})
	assert.ErrorIs(t, err, context.Canceled)

	assert.NoError(t, Noop{}.Close())
}

func TestNATS_PublishValidation(t *testing.T) {
	t.Parallel()

	n := &NATS{}

	_, err := n.Publish(context.Background(), "", OutgoingMessage{})
	assert.ErrorIs(t, err, ErrNATSSubjectRequired)

	_, err = n.Publish(context.Background(), "subject", OutgoingMessage{Delay: time.Second})
	assert.ErrorIs(t, err, ErrUnsupported)

	n.closed = true
	_, err = n.Publish(context.Background(), "subject", OutgoingMessage{})
	assert.ErrorIs(t, err, ErrClosed)
}
