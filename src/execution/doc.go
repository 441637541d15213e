// Package execution runs a request against the network until a node accepts
// it.
//
// Execute drives any Executable, transactions and queries alike, through the
// same loop: pick the node the operation targets, build the request for that
// node, submit it under a per-attempt timeout and classify the precheck
// status. Transport failures and the retryable statuses of the RetryPolicy
// move the operation to its next node, anything else ends the execution.
// Repeated attempts against the same node are spaced by an exponential
// backoff, moving to a fresh node is immediate.
package execution
