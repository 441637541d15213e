package client

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunsTasks(t *testing.T) {
	p := NewPool(2)

	var count int32
	for i := 0; i < 10; i++ {
		require.NoError(t, p.Submit(func(ctx context.Context) {
			atomic.AddInt32(&count, 1)
		}))
	}

	require.NoError(t, p.Close(time.Second))
	assert.Equal(t, int32(10), atomic.LoadInt32(&count))
}

func TestPoolLimit(t *testing.T) {
	p := NewPool(2)

	var running, peak int32
	release := make(chan struct{})

	for i := 0; i < 2; i++ {
		require.NoError(t, p.Submit(func(ctx context.Context) {
			n := atomic.AddInt32(&running, 1)
			for {
				old := atomic.LoadInt32(&peak)
				if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
					break
				}
			}
			<-release
			atomic.AddInt32(&running, -1)
		}))
	}

	// a third task waits for a free worker
	submitted := make(chan struct{})
	go func() {
		p.Submit(func(ctx context.Context) {})
		close(submitted)
	}()

	select {
	case <-submitted:
		t.Fatal("third task should wait for a free worker")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-submitted

	require.NoError(t, p.Close(time.Second))
	assert.Equal(t, int32(2), atomic.LoadInt32(&peak))
}

func TestPoolRejectsAfterClose(t *testing.T) {
	p := NewPool(1)
	require.NoError(t, p.Close(time.Second))

	err := p.Submit(func(ctx context.Context) {})
	assert.ErrorIs(t, err, ErrClientClosed)
}

func TestPoolCloseTimeout(t *testing.T) {
	p := NewPool(1)

	stopped := make(chan struct{})
	require.NoError(t, p.Submit(func(ctx context.Context) {
		<-ctx.Done()
		close(stopped)
	}))

	err := p.Close(50 * time.Millisecond)
	assert.ErrorIs(t, err, ErrCloseTimeout)

	// the blocked task is released through its context
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("task context was not cancelled")
	}
}
