package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestNoop_Exec(t *testing.T) {
	t.Parallel()

	calls := 0
	fn := func(context.Context) error { calls++; return nil }

	require.NoError(t, Noop{}.Exec(context.Background(), "k", fn))
	require.NoError(t, Noop{}.Exec(context.Background(), "k", fn))
	assert.Equal(t, 2, calls)
}

func TestBuildOptions(t *testing.T) {
	t.Parallel()

	o := buildOptions(nil)
	assert.Equal(t, defaultLockDuration, o.lockDuration)
	assert.Equal(t, defaultStateTTL, o.stateTTL)

	o = buildOptions([]Option{WithLockDuration(time.Second), WithStateTTL(-1)})
	assert.Equal(t, time.Second, o.lockDuration)
	assert.Equal(t, defaultStateTTL, o.stateTTL)
}

func TestStateTracker_Redis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}

	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	opt, err := redis.ParseURL(uri)
	require.NoError(t, err)
	client := redis.NewClient(opt)
	t.Cleanup(func() { _ = client.Close() })

	tracker := New(client)

	t.Run("CompletedKeyIsRejected", func(t *testing.T) {
		calls := 0
		fn := func(context.Context) error { calls++; return nil }

		require.NoError(t, tracker.Exec(ctx, "create-1", fn))
		assert.ErrorIs(t, tracker.Exec(ctx, "create-1", fn), ErrAlreadyCompleted)
		assert.Equal(t, 1, calls)
	})

	t.Run("FailedKeyCanRetry", func(t *testing.T) {
		errBoom := errors.New("boom")

		err := tracker.Exec(ctx, "create-2", func(context.Context) error { return errBoom })
		assert.ErrorIs(t, err, errBoom)

		assert.NoError(t, tracker.Exec(ctx, "create-2", func(context.Context) error { return nil }))
	})

	t.Run("InFlightKeyIsRejected", func(t *testing.T) {
		state, err := tracker.Acquire(ctx, "create-3", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, StateNone, state)

		err = tracker.Exec(ctx, "create-3", func(context.Context) error { return nil })
		assert.ErrorIs(t, err, ErrAlreadyInProgress)
	})
}
