package execution

import (
	"fmt"

	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/peers"
)

// ErrUnknownNode is returned when an operation targets a node that the
// client cannot resolve to an address.
var ErrUnknownNode = peers.ErrUnknownNode

// PrecheckError is returned when a node rejects a request with a non-OK
// status.
type PrecheckError struct {
	NodeID        ledger.AccountID
	Status        ledger.Status
	TransactionID ledger.TransactionID
}

func (e *PrecheckError) Error() string {
	return fmt.Sprintf("precheck failed on node %s with status %s", e.NodeID, e.Status)
}

// MaxAttemptsError is returned when every attempt of an execution failed
// with a retryable outcome. Last is the outcome of the final attempt.
type MaxAttemptsError struct {
	Attempts int
	Last     error
}

func (e *MaxAttemptsError) Error() string {
	return fmt.Sprintf("giving up after %d attempts: %v", e.Attempts, e.Last)
}

func (e *MaxAttemptsError) Unwrap() error {
	return e.Last
}
