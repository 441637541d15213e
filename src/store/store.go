package store

import (
	"fmt"

	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/transaction"
)

const (
	txPrefix = "tx"
	txData   = "Transaction"
)

// Store holds frozen transactions keyed by transaction id. Put replaces an
// existing entry, so that a transaction can be stored again after adding
// signatures.
type Store interface {
	Put(*transaction.Transaction) error
	Get(ledger.TransactionID) (*transaction.Transaction, error)
	List() ([]*transaction.Transaction, error)
	Delete(ledger.TransactionID) error
	Close() error
}

func txKey(id ledger.TransactionID) []byte {
	return []byte(fmt.Sprintf("%s_%s", txPrefix, id))
}

func txPrefixKey() []byte {
	return []byte(txPrefix + "_")
}
