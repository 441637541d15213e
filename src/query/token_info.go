package query

import (
	"context"

	"github.com/mosaicnetworks/hashgraph-sdk/src/client"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
)

// TokenInfoQuery returns the properties of a token. It is paid.
type TokenInfoQuery struct {
	Query
	tokenID ledger.TokenID
}

// NewTokenInfoQuery creates a TokenInfoQuery.
func NewTokenInfoQuery() *TokenInfoQuery {
	q := new(TokenInfoQuery)
	q.init(wire.QueryTokenInfo, true, q.payload)
	return q
}

// SetTokenID sets the token.
func (q *TokenInfoQuery) SetTokenID(id ledger.TokenID) *TokenInfoQuery {
	q.tokenID = id
	return q
}

func (q *TokenInfoQuery) payload() ([]byte, error) {
	return wire.Marshal(&wire.TokenInfoQuery{TokenID: q.tokenID})
}

// Execute returns the token info.
func (q *TokenInfoQuery) Execute(ctx context.Context, c *client.Client) (*wire.TokenInfo, error) {
	return execute(ctx, c, &q.Query, func(data []byte) (*wire.TokenInfo, error) {
		var answer wire.TokenInfoResponse
		if err := wire.Unmarshal(data, &answer); err != nil {
			return nil, err
		}
		return &answer.TokenInfo, nil
	})
}
