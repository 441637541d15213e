package query

import (
	"context"

	"github.com/mosaicnetworks/hashgraph-sdk/src/client"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
)

// TransactionRecordQuery returns the record of a transaction. It is paid.
type TransactionRecordQuery struct {
	Query
	transactionID ledger.TransactionID
}

// NewTransactionRecordQuery creates a TransactionRecordQuery.
func NewTransactionRecordQuery() *TransactionRecordQuery {
	q := new(TransactionRecordQuery)
	q.init(wire.QueryTransactionRecord, true, q.payload)
	return q
}

// SetTransactionID sets the transaction.
func (q *TransactionRecordQuery) SetTransactionID(id ledger.TransactionID) *TransactionRecordQuery {
	q.transactionID = id
	return q
}

func (q *TransactionRecordQuery) payload() ([]byte, error) {
	return wire.Marshal(&wire.TransactionRecordQuery{TransactionID: q.transactionID})
}

// TransactionID returns the transaction.
func (q *TransactionRecordQuery) TransactionID() ledger.TransactionID {
	return q.transactionID
}

// Execute returns the record.
func (q *TransactionRecordQuery) Execute(ctx context.Context, c *client.Client) (*wire.Record, error) {
	return execute(ctx, c, &q.Query, decodeRecord)
}

func decodeRecord(data []byte) (*wire.Record, error) {
	var answer wire.TransactionRecordResponse
	if err := wire.Unmarshal(data, &answer); err != nil {
		return nil, err
	}
	return &answer.Record, nil
}

// GetRecord returns the record of the transaction with the given id, paying
// for it with the operator of c.
func GetRecord(ctx context.Context, c *client.Client, id ledger.TransactionID) (*wire.Record, error) {
	return NewTransactionRecordQuery().SetTransactionID(id).Execute(ctx, c)
}
