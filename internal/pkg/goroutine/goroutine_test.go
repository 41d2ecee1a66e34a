package goroutine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RunsAndCollectsErrors(t *testing.T) {
	t.Parallel()

	m := NewManager(4, time.Second)
	errBoom := errors.New("boom")

	var ran atomic.Int32
	for i := range 3 {
		ok := m.Go(context.Background(), "task", func(context.Context) error {
			ran.Add(1)
			if i == 0 {
				return errBoom
			}
			return nil
		})
		assert.True(t, ok)
	}

	err := m.Wait()
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, int32(3), ran.Load())
}

func TestManager_OutlivesCanceledParent(t *testing.T) {
	t.Parallel()

	m := NewManager(1, time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	release := make(chan struct{})
	var sawErr atomic.Value
	m.Go(ctx, "publish", func(ctx context.Context) error {
		<-release
		sawErr.Store(ctx.Err() == nil)
		return nil
	})

	cancel()
	close(release)

	assert.NoError(t, m.Wait())
	assert.Equal(t, true, sawErr.Load())
}

func TestManager_CapacityAndClosed(t *testing.T) {
	t.Parallel()

	m := NewManager(1, time.Second)
	block := make(chan struct{})

	assert.True(t, m.Go(context.Background(), "first", func(context.Context) error { <-block; return nil }))
	assert.False(t, m.Go(context.Background(), "second", func(context.Context) error { return nil }))

	close(block)
	assert.NoError(t, m.Wait())
	assert.False(t, m.Go(context.Background(), "after-wait", func(context.Context) error { return nil }))
}

func TestManager_RecoversPanic(t *testing.T) {
	t.Parallel()

	m := NewManager(1, time.Second)
	m.Go(context.Background(), "panics", func(context.Context) error { panic("kaboom") })

	assert.NoError(t, m.Wait())
}

func TestManager_Nil(t *testing.T) {
	t.Parallel()

	var m *Manager
	assert.False(t, m.Go(context.Background(), "x", func(context.Context) error { return nil }))
	assert.NoError(t, m.Wait())
}

func TestManager_CapsKeptErrors(t *testing.T) {
	t.Parallel()

	const failures = MaxKeptErrors + 40

	m := NewManager(failures, time.Second)
	for range failures {
		assert.True(t, m.Go(context.Background(), "task", func(context.Context) error {
			return errors.New("nats down")
		}))
	}

	err := m.Wait()
	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok)
	assert.Len(t, joined.Unwrap(), MaxKeptErrors+1)
	assert.Contains(t, err.Error(), "40 more background task errors")
}
