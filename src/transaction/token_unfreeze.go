package transaction

import (
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
)

// TokenUnfreeze allows an account to transact a token again.
type TokenUnfreeze struct {
	Template
	tokenID   ledger.TokenID
	accountID ledger.AccountID
}

// NewTokenUnfreeze creates an empty TokenUnfreeze.
func NewTokenUnfreeze() *TokenUnfreeze {
	t := new(TokenUnfreeze)
	t.init(t)
	return t
}

// Kind implements Operation.
func (t *TokenUnfreeze) Kind() wire.TransactionKind {
	return wire.KindTokenUnfreeze
}

// SetTokenID sets the token.
func (t *TokenUnfreeze) SetTokenID(id ledger.TokenID) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	t.tokenID = id
	return nil
}

// SetAccountID sets the account to unfreeze.
func (t *TokenUnfreeze) SetAccountID(id ledger.AccountID) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	t.accountID = id
	return nil
}

func (t *TokenUnfreeze) validate() error {
	switch {
	case t.tokenID.IsZero():
		return &ValidationError{Kind: "TokenUnfreeze", Reason: "token is not set"}
	case t.accountID.IsZero():
		return &ValidationError{Kind: "TokenUnfreeze", Reason: "account is not set"}
	}
	return nil
}

func (t *TokenUnfreeze) encode() ([]byte, error) {
	return wire.Marshal(&wire.TokenUnfreezeBody{
		TokenID:   t.tokenID,
		AccountID: t.accountID,
	})
}

func decodeTokenUnfreeze(data []byte) (Operation, error) {
	var body wire.TokenUnfreezeBody
	if err := wire.Unmarshal(data, &body); err != nil {
		return nil, err
	}
	t := NewTokenUnfreeze()
	t.tokenID = body.TokenID
	t.accountID = body.AccountID
	return t, nil
}
