package query

import (
	"fmt"

	"github.com/mosaicnetworks/hashgraph-sdk/src/client"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
)

// ErrMissingOperator is client.ErrMissingOperator. Paid queries need an
// operator to sign their payments.
var ErrMissingOperator = client.ErrMissingOperator

// MaxQueryPaymentExceededError is returned when a node quotes a cost above
// the maximum payment.
type MaxQueryPaymentExceededError struct {
	Cost ledger.Amount
	Max  ledger.Amount
}

func (e *MaxQueryPaymentExceededError) Error() string {
	return fmt.Sprintf("query cost of %s exceeds max query payment of %s", e.Cost, e.Max)
}
