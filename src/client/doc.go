// Package client holds everything operations need to reach a network: the
// node directory, the transport, the operator paying for transactions and
// queries, default fees, retry policy, rate limiting and a worker pool for
// asynchronous executions.
//
// A Client is safe for concurrent use by many operations.
package client
