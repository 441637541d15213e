package common

import (
	"context"
	"sync"
)

// Future is used to represent an action that may occur in the future.
type Future interface {
	// Error blocks until the future arrives and then returns the error
	// status of the future. This may be called any number of times, all
	// calls return the same value.
	Error() error
}

// Promise is a Future carrying a value. It is resolved exactly once, by the
// goroutine performing the action; any number of goroutines may wait on it.
type Promise[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

// NewPromise creates an unresolved Promise.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{
		done: make(chan struct{}),
	}
}

// Resolve sets the outcome of the promise. Only the first call has an effect.
func (p *Promise[T]) Resolve(value T, err error) {
	p.once.Do(func() {
		p.value = value
		p.err = err
		close(p.done)
	})
}

// Done returns a channel that is closed once the promise is resolved.
func (p *Promise[T]) Done() <-chan struct{} {
	return p.done
}

// Result blocks until the promise is resolved and returns its outcome.
func (p *Promise[T]) Result() (T, error) {
	<-p.done
	return p.value, p.err
}

// Error implements Future.
func (p *Promise[T]) Error() error {
	<-p.done
	return p.err
}

// Wait is like Result but gives up when ctx is done.
func (p *Promise[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
