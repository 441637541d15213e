package query

import (
	"context"

	"github.com/mosaicnetworks/hashgraph-sdk/src/client"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
)

// ContractRecordsQuery returns the records of the transactions that called a
// contract. It is paid.
type ContractRecordsQuery struct {
	Query
	contractID ledger.ContractID
}

// NewContractRecordsQuery creates a ContractRecordsQuery.
func NewContractRecordsQuery() *ContractRecordsQuery {
	q := new(ContractRecordsQuery)
	q.init(wire.QueryContractRecords, true, q.payload)
	return q
}

// SetContractID sets the contract.
func (q *ContractRecordsQuery) SetContractID(id ledger.ContractID) *ContractRecordsQuery {
	q.contractID = id
	return q
}

func (q *ContractRecordsQuery) payload() ([]byte, error) {
	return wire.Marshal(&wire.ContractRecordsQuery{ContractID: q.contractID})
}

// Execute returns the records.
func (q *ContractRecordsQuery) Execute(ctx context.Context, c *client.Client) ([]wire.Record, error) {
	return execute(ctx, c, &q.Query, func(data []byte) ([]wire.Record, error) {
		var answer wire.ContractRecordsResponse
		if err := wire.Unmarshal(data, &answer); err != nil {
			return nil, err
		}
		return answer.Records, nil
	})
}
