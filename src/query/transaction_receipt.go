package query

import (
	"context"

	"github.com/mosaicnetworks/hashgraph-sdk/src/client"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
)

// TransactionReceiptQuery returns the receipt of a transaction. It is free
// and retries while the transaction has not reached consensus, that is while
// the receipt status is UNKNOWN. Unlike transaction.GetReceipt it returns
// receipts of any final status.
type TransactionReceiptQuery struct {
	Query
	transactionID ledger.TransactionID
}

// NewTransactionReceiptQuery creates a TransactionReceiptQuery.
func NewTransactionReceiptQuery() *TransactionReceiptQuery {
	q := new(TransactionReceiptQuery)
	q.init(wire.QueryTransactionReceipt, false, q.payload)
	q.status = wire.ReceiptPrecheck
	return q
}

// SetTransactionID sets the transaction.
func (q *TransactionReceiptQuery) SetTransactionID(id ledger.TransactionID) *TransactionReceiptQuery {
	q.transactionID = id
	return q
}

func (q *TransactionReceiptQuery) payload() ([]byte, error) {
	return wire.Marshal(&wire.TransactionReceiptQuery{TransactionID: q.transactionID})
}

// TransactionID returns the transaction.
func (q *TransactionReceiptQuery) TransactionID() ledger.TransactionID {
	return q.transactionID
}

// Execute returns the receipt.
func (q *TransactionReceiptQuery) Execute(ctx context.Context, c *client.Client) (*wire.Receipt, error) {
	return execute(ctx, c, &q.Query, func(data []byte) (*wire.Receipt, error) {
		var answer wire.TransactionReceiptResponse
		if err := wire.Unmarshal(data, &answer); err != nil {
			return nil, err
		}
		return &answer.Receipt, nil
	})
}
