package transaction

import (
	"errors"
	"fmt"

	"github.com/mosaicnetworks/hashgraph-sdk/src/client"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
)

var (
	// ErrAlreadyFrozen is returned by the mutators of a frozen template.
	ErrAlreadyFrozen = errors.New("transaction is frozen")

	// ErrNotFrozen is returned when a Transaction was not produced by Freeze
	// or FromBytes.
	ErrNotFrozen = errors.New("transaction is not frozen")

	// ErrNotSigned is returned when hashing a transaction without signature.
	ErrNotSigned = errors.New("transaction is not signed")

	// ErrMultipleNodes is returned by Hash when the transaction is bound to
	// more than one node. Use HashPerNode instead.
	ErrMultipleNodes = errors.New("transaction is bound to more than one node")

	// ErrMissingNodeOrDirectory is returned when freezing without explicit
	// nodes and without a client to pick them from.
	ErrMissingNodeOrDirectory = errors.New("transaction has no node accounts and no client to choose them")

	// ErrMissingPayerIdentity is returned when freezing without an explicit
	// transaction id and without an operator to generate one.
	ErrMissingPayerIdentity = errors.New("transaction has no transaction id and no operator to generate one")

	// ErrNoOperationData is returned when the body of a transaction does not
	// carry a known operation kind.
	ErrNoOperationData = errors.New("transaction has no known operation data")

	// ErrMalformedTransaction is returned when bytes cannot be decoded as a
	// transaction.
	ErrMalformedTransaction = errors.New("malformed transaction")

	// ErrMemoTooLong is returned when a memo exceeds MaxMemoLength bytes.
	ErrMemoTooLong = errors.New("memo is too long")

	// ErrMissingOperator is client.ErrMissingOperator.
	ErrMissingOperator = client.ErrMissingOperator
)

// ValidationError is returned when the body of an operation is invalid.
type ValidationError struct {
	Kind   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Kind, e.Reason)
}

// ReceiptStatusError is returned when a transaction reached consensus with a
// status other than SUCCESS.
type ReceiptStatusError struct {
	Status        ledger.Status
	TransactionID ledger.TransactionID
}

func (e *ReceiptStatusError) Error() string {
	return fmt.Sprintf("receipt for transaction %s contained error status %s", e.TransactionID, e.Status)
}
