package wire

import (
	"fmt"

	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
)

// TransactionKind discriminates the payload carried by a TransactionBody.
type TransactionKind uint16

// Transaction kinds. KindNone is the zero value and never valid.
const (
	KindNone TransactionKind = iota
	KindCryptoTransfer
	KindAccountCreate
	KindTokenCreate
	KindTokenDelete
	KindTokenUnfreeze
	KindLiveHashAdd
	KindContractUpdate
)

func (k TransactionKind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindCryptoTransfer:
		return "CryptoTransfer"
	case KindAccountCreate:
		return "AccountCreate"
	case KindTokenCreate:
		return "TokenCreate"
	case KindTokenDelete:
		return "TokenDelete"
	case KindTokenUnfreeze:
		return "TokenUnfreeze"
	case KindLiveHashAdd:
		return "LiveHashAdd"
	case KindContractUpdate:
		return "ContractUpdate"
	default:
		return fmt.Sprintf("TransactionKind(%d)", uint16(k))
	}
}

// TransactionBody is the signed part of a transaction. A frozen transaction
// holds one encoded body per target node; the bodies only differ in
// NodeAccountID.
type TransactionBody struct {
	TransactionID        ledger.TransactionID `codec:"transaction_id"`
	NodeAccountID        ledger.AccountID     `codec:"node_account_id"`
	TransactionFee       uint64               `codec:"transaction_fee"`
	ValidDurationSeconds int64                `codec:"valid_duration"`
	Memo                 string               `codec:"memo"`
	Kind                 TransactionKind      `codec:"kind"`
	Data                 []byte               `codec:"data"`
}

// SignaturePair associates a signature with the public key that produced it.
// PubKeyPrefix may be shorter than the full key, as long as it is unambiguous
// among the signers of the transaction.
type SignaturePair struct {
	PubKeyPrefix []byte `codec:"pub_key_prefix"`
	Signature    []byte `codec:"signature"`
}

// Transaction is a body blob with the signatures attached to it. It is the
// unit submitted to a node.
type Transaction struct {
	BodyBytes []byte          `codec:"body_bytes"`
	SigMap    []SignaturePair `codec:"sig_map"`
}

// Body decodes BodyBytes.
func (t *Transaction) Body() (*TransactionBody, error) {
	body := new(TransactionBody)
	if err := Unmarshal(t.BodyBytes, body); err != nil {
		return nil, err
	}
	return body, nil
}

// TransactionList is the serialized form of a frozen transaction: one entry
// per node binding.
type TransactionList struct {
	Transactions []Transaction `codec:"transactions"`
}

// TransactionResponse is the synchronous answer of a node to a submitted
// transaction.
type TransactionResponse struct {
	Precheck ledger.Status `codec:"precheck"`
}

// AccountAmount is one leg of a transfer.
type AccountAmount struct {
	AccountID ledger.AccountID `codec:"account_id"`
	Amount    ledger.Amount    `codec:"amount"`
}

// CryptoTransferBody moves hbars between accounts. The amounts sum to zero.
type CryptoTransferBody struct {
	Transfers []AccountAmount `codec:"transfers"`
}

// AccountCreateBody creates a new account controlled by Key.
type AccountCreateBody struct {
	Key                    []byte        `codec:"key"`
	InitialBalance         ledger.Amount `codec:"initial_balance"`
	ReceiverSigRequired    bool          `codec:"receiver_sig_required"`
	AutoRenewPeriodSeconds int64         `codec:"auto_renew_period"`
}

// TokenCreateBody creates a new fungible token.
type TokenCreateBody struct {
	Name          string           `codec:"name"`
	Symbol        string           `codec:"symbol"`
	Decimals      uint32           `codec:"decimals"`
	InitialSupply uint64           `codec:"initial_supply"`
	Treasury      ledger.AccountID `codec:"treasury"`
	AdminKey      []byte           `codec:"admin_key"`
	FreezeDefault bool             `codec:"freeze_default"`
}

// TokenDeleteBody marks a token as deleted.
type TokenDeleteBody struct {
	TokenID ledger.TokenID `codec:"token_id"`
}

// TokenUnfreezeBody unfreezes an account for a token.
type TokenUnfreezeBody struct {
	TokenID   ledger.TokenID   `codec:"token_id"`
	AccountID ledger.AccountID `codec:"account_id"`
}

// LiveHash is a hash attached to an account, with the keys allowed to
// delete it.
type LiveHash struct {
	AccountID       ledger.AccountID `codec:"account_id"`
	Hash            []byte           `codec:"hash"`
	Keys            [][]byte         `codec:"keys"`
	DurationSeconds int64            `codec:"duration"`
}

// LiveHashAddBody attaches a LiveHash to an account.
type LiveHashAddBody struct {
	LiveHash LiveHash `codec:"live_hash"`
}

// ContractUpdateBody changes the properties of a contract instance. Zero
// values leave the corresponding property unchanged.
type ContractUpdateBody struct {
	ContractID            ledger.ContractID `codec:"contract_id"`
	AdminKey              []byte            `codec:"admin_key"`
	ExpirationTime        ledger.Timestamp  `codec:"expiration_time"`
	ProxyAccountID        ledger.AccountID  `codec:"proxy_account_id"`
	AutoRenewPeriodSecond int64             `codec:"auto_renew_period"`
	Memo                  string            `codec:"memo"`
}
