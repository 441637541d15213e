package client

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the number of executions a client runs in the background
// at the same time.
const DefaultWorkers = 4

// Pool runs asynchronous executions on a bounded number of goroutines.
type Pool struct {
	mu     sync.RWMutex
	closed bool
	group  errgroup.Group

	// ctx is handed to every task and cancelled when Close gives up waiting.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewPool creates a Pool running at most workers tasks at once. A
// non-positive value selects DefaultWorkers.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		ctx:    ctx,
		cancel: cancel,
	}
	p.group.SetLimit(workers)

	return p
}

// Submit schedules a task. It blocks while every worker is busy, and fails
// with ErrClientClosed once the pool is closed.
func (p *Pool) Submit(task func(ctx context.Context)) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrClientClosed
	}

	p.group.Go(func() error {
		task(p.ctx)
		return nil
	})

	return nil
}

// Close stops accepting tasks and waits for the running ones, at most for
// timeout. When the timeout expires the tasks' context is cancelled and
// ErrCloseTimeout is returned.
func (p *Pool) Close(timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()

		p.group.Wait()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-timer.C:
		p.cancel()
		return ErrCloseTimeout
	}
}
