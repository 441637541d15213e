package transaction

import (
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
)

// TokenDelete marks a token as deleted. It must be signed by the admin key of
// the token.
type TokenDelete struct {
	Template
	tokenID ledger.TokenID
}

// NewTokenDelete creates an empty TokenDelete.
func NewTokenDelete() *TokenDelete {
	t := new(TokenDelete)
	t.init(t)
	return t
}

// Kind implements Operation.
func (t *TokenDelete) Kind() wire.TransactionKind {
	return wire.KindTokenDelete
}

// SetTokenID sets the token to delete.
func (t *TokenDelete) SetTokenID(id ledger.TokenID) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	t.tokenID = id
	return nil
}

// TokenID returns the token to delete.
func (t *TokenDelete) TokenID() ledger.TokenID {
	return t.tokenID
}

func (t *TokenDelete) validate() error {
	if t.tokenID.IsZero() {
		return &ValidationError{Kind: "TokenDelete", Reason: "token is not set"}
	}
	return nil
}

func (t *TokenDelete) encode() ([]byte, error) {
	return wire.Marshal(&wire.TokenDeleteBody{TokenID: t.tokenID})
}

func decodeTokenDelete(data []byte) (Operation, error) {
	var body wire.TokenDeleteBody
	if err := wire.Unmarshal(data, &body); err != nil {
		return nil, err
	}
	t := NewTokenDelete()
	t.tokenID = body.TokenID
	return t, nil
}
