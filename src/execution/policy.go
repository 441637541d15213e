package execution

import (
	"context"
	"time"

	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
)

// Default retry parameters.
const (
	DefaultMaxAttempts = 10
	DefaultMinBackoff  = 250 * time.Millisecond
	DefaultMaxBackoff  = 8 * time.Second
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// RetryPolicy controls how many attempts an execution makes, how long it
// waits before trying a node again, and which precheck statuses are worth a
// retry.
type RetryPolicy struct {
	MaxAttempts int
	MinBackoff  time.Duration
	MaxBackoff  time.Duration
	Retryable   []ledger.Status

	// Sleep replaces the timer based wait. Tests use it to observe and skip
	// backoffs.
	Sleep SleepFunc
}

// DefaultRetryPolicy returns the policy used when nothing is configured.
func DefaultRetryPolicy() RetryPolicy {
	retryable := make([]ledger.Status, len(ledger.DefaultRetryableStatuses))
	copy(retryable, ledger.DefaultRetryableStatuses)

	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		MinBackoff:  DefaultMinBackoff,
		MaxBackoff:  DefaultMaxBackoff,
		Retryable:   retryable,
	}
}

// withDefaults fills the zero fields of p.
func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.MinBackoff <= 0 {
		p.MinBackoff = DefaultMinBackoff
	}
	if p.MaxBackoff < p.MinBackoff {
		p.MaxBackoff = p.MinBackoff
	}
	if p.Retryable == nil {
		p.Retryable = ledger.DefaultRetryableStatuses
	}
	return p
}

// Backoff returns the wait before the n-th retry against the same node:
// min(MaxBackoff, MinBackoff * 2^(n-1)).
func (p RetryPolicy) Backoff(n int) time.Duration {
	p = p.withDefaults()

	delay := p.MinBackoff
	for i := 1; i < n; i++ {
		if delay >= p.MaxBackoff/2 {
			return p.MaxBackoff
		}
		delay *= 2
	}
	if delay > p.MaxBackoff {
		return p.MaxBackoff
	}
	return delay
}

// IsRetryable reports whether a precheck status moves the execution to the
// next node.
func (p RetryPolicy) IsRetryable(s ledger.Status) bool {
	retryable := p.Retryable
	if retryable == nil {
		retryable = ledger.DefaultRetryableStatuses
	}
	for _, r := range retryable {
		if r == s {
			return true
		}
	}
	return false
}

func (p RetryPolicy) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
