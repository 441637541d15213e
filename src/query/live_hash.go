package query

import (
	"context"

	"github.com/mosaicnetworks/hashgraph-sdk/src/client"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
)

// LiveHashQuery returns a live hash attached to an account. It is paid.
type LiveHashQuery struct {
	Query
	accountID ledger.AccountID
	hash      []byte
}

// NewLiveHashQuery creates a LiveHashQuery.
func NewLiveHashQuery() *LiveHashQuery {
	q := new(LiveHashQuery)
	q.init(wire.QueryLiveHash, true, q.payload)
	return q
}

// SetAccountID sets the account.
func (q *LiveHashQuery) SetAccountID(id ledger.AccountID) *LiveHashQuery {
	q.accountID = id
	return q
}

// SetHash sets the hash to look for.
func (q *LiveHashQuery) SetHash(hash []byte) *LiveHashQuery {
	q.hash = append([]byte(nil), hash...)
	return q
}

func (q *LiveHashQuery) payload() ([]byte, error) {
	return wire.Marshal(&wire.LiveHashQuery{AccountID: q.accountID, Hash: q.hash})
}

// Execute returns the live hash.
func (q *LiveHashQuery) Execute(ctx context.Context, c *client.Client) (*wire.LiveHash, error) {
	return execute(ctx, c, &q.Query, func(data []byte) (*wire.LiveHash, error) {
		var answer wire.LiveHashResponse
		if err := wire.Unmarshal(data, &answer); err != nil {
			return nil, err
		}
		return &answer.LiveHash, nil
	})
}
