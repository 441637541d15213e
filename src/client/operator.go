package client

import (
	"github.com/mosaicnetworks/hashgraph-sdk/src/crypto/keys"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
)

// Operator is the account paying for the operations of a client, with the
// means to sign on its behalf. The private key itself may live elsewhere,
// behind Signer.
type Operator struct {
	AccountID ledger.AccountID
	PublicKey keys.PublicKey
	Signer    keys.TransactionSigner
}

// NewOperator creates an Operator signing with a private key held in memory.
func NewOperator(accountID ledger.AccountID, key keys.PrivateKey) *Operator {
	return &Operator{
		AccountID: accountID,
		PublicKey: key.PublicKey(),
		Signer:    keys.Signer(key),
	}
}
