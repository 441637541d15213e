package execution

import (
	"context"
	"fmt"
	"time"

	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/metrics"
	"github.com/sirupsen/logrus"
)

// Execute runs op until a node accepts it, a node rejects it for good, or the
// retry policy runs out of attempts.
func Execute[Req, Resp, Out any](ctx context.Context, env Environment, op Executable[Req, Resp, Out]) (Out, error) {
	var zero Out

	if err := op.OnExecute(ctx, env); err != nil {
		return zero, err
	}

	policy := env.RetryPolicy().withDefaults()
	name := operationName(op)
	logger := env.Logger().WithFields(logrus.Fields{
		"prefix":    "engine",
		"operation": name,
	})

	seen := make(map[ledger.AccountID]int)
	var lastErr error

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if err := env.Wait(ctx); err != nil {
			return zero, err
		}

		node := op.NodeAccountID()

		req, err := op.MakeRequest()
		if err != nil {
			return zero, err
		}

		addr, err := env.AddressOf(node)
		if err != nil {
			return zero, err
		}

		if n := seen[node]; n > 0 {
			delay := policy.Backoff(n)
			logger.WithFields(logrus.Fields{
				"node":    node.String(),
				"attempt": attempt,
				"backoff": delay,
			}).Debug("Backing off before retrying node")

			if err := policy.sleep(ctx, delay); err != nil {
				return zero, err
			}
			metrics.BackoffSeconds.Add(delay.Seconds())
		}
		seen[node]++

		resp, err := submit(ctx, env, op, addr, req, name)
		if err != nil {
			if ctx.Err() != nil {
				return zero, ctx.Err()
			}

			logger.WithFields(logrus.Fields{
				"node":    node.String(),
				"attempt": attempt,
				"error":   err,
			}).Debug("Transport error")

			metrics.AttemptsTotal.WithLabelValues(name, metrics.OutcomeTransport).Inc()
			env.MarkUnhealthy(node)
			lastErr = fmt.Errorf("node %s: %w", node, err)
			op.Advance()
			continue
		}

		status := op.Status(resp)

		logger.WithFields(logrus.Fields{
			"node":    node.String(),
			"attempt": attempt,
			"status":  status.String(),
		}).Debug("Attempt")

		switch {
		case status == ledger.StatusOK:
			metrics.AttemptsTotal.WithLabelValues(name, metrics.OutcomeSuccess).Inc()
			return op.MapResponse(resp, node, req)
		case policy.IsRetryable(status):
			metrics.AttemptsTotal.WithLabelValues(name, metrics.OutcomeRetry).Inc()
			lastErr = precheckError(op, node, status)
			op.Advance()
		default:
			metrics.AttemptsTotal.WithLabelValues(name, metrics.OutcomeFatal).Inc()
			return zero, precheckError(op, node, status)
		}
	}

	return zero, &MaxAttemptsError{
		Attempts: policy.MaxAttempts,
		Last:     lastErr,
	}
}

// submit sends one request under the per-attempt timeout.
func submit[Req, Resp, Out any](ctx context.Context, env Environment, op Executable[Req, Resp, Out], addr string, req Req, name string) (Resp, error) {
	attemptCtx := ctx
	if timeout := env.RequestTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		metrics.AttemptLatency.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}()

	return op.Submit(attemptCtx, env.Transport(), addr, req)
}

func precheckError(op interface{}, node ledger.AccountID, status ledger.Status) *PrecheckError {
	e := &PrecheckError{
		NodeID: node,
		Status: status,
	}
	if id, ok := op.(identified); ok {
		e.TransactionID = id.TransactionID()
	}
	return e
}

func operationName(op interface{}) string {
	if n, ok := op.(named); ok {
		return n.OperationName()
	}
	return fmt.Sprintf("%T", op)
}
