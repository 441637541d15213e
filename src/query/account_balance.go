package query

import (
	"context"

	"github.com/mosaicnetworks/hashgraph-sdk/src/client"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
)

// AccountBalanceQuery returns the balance of an account. It is free.
type AccountBalanceQuery struct {
	Query
	accountID ledger.AccountID
}

// NewAccountBalanceQuery creates an AccountBalanceQuery.
func NewAccountBalanceQuery() *AccountBalanceQuery {
	q := new(AccountBalanceQuery)
	q.init(wire.QueryAccountBalance, false, q.payload)
	return q
}

// SetAccountID sets the account.
func (q *AccountBalanceQuery) SetAccountID(id ledger.AccountID) *AccountBalanceQuery {
	q.accountID = id
	return q
}

func (q *AccountBalanceQuery) payload() ([]byte, error) {
	return wire.Marshal(&wire.AccountBalanceQuery{AccountID: q.accountID})
}

// Execute returns the balance.
func (q *AccountBalanceQuery) Execute(ctx context.Context, c *client.Client) (ledger.Amount, error) {
	return execute(ctx, c, &q.Query, func(data []byte) (ledger.Amount, error) {
		var answer wire.AccountBalanceResponse
		if err := wire.Unmarshal(data, &answer); err != nil {
			return 0, err
		}
		return answer.Balance, nil
	})
}
