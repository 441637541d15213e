package transaction

import (
	"time"

	"github.com/mosaicnetworks/hashgraph-sdk/src/crypto/keys"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
)

// DefaultAutoRenewPeriod is the auto renew period of new accounts.
const DefaultAutoRenewPeriod = 90 * 24 * time.Hour

// AccountCreate creates an account controlled by a key. The receipt carries
// the id of the new account.
type AccountCreate struct {
	Template
	key                 keys.PublicKey
	initialBalance      ledger.Amount
	receiverSigRequired bool
	autoRenewPeriod     time.Duration
}

// NewAccountCreate creates an AccountCreate with the default auto renew
// period.
func NewAccountCreate() *AccountCreate {
	t := &AccountCreate{autoRenewPeriod: DefaultAutoRenewPeriod}
	t.init(t)
	return t
}

// Kind implements Operation.
func (t *AccountCreate) Kind() wire.TransactionKind {
	return wire.KindAccountCreate
}

// SetKey sets the key controlling the new account.
func (t *AccountCreate) SetKey(key keys.PublicKey) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	t.key = key
	return nil
}

// SetInitialBalance sets the hbars transferred from the payer to the new
// account.
func (t *AccountCreate) SetInitialBalance(balance ledger.Amount) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	if balance < 0 {
		return ledger.ErrNegativeAmount
	}
	t.initialBalance = balance
	return nil
}

// SetReceiverSignatureRequired requires the signature of the account on
// transfers crediting it.
func (t *AccountCreate) SetReceiverSignatureRequired(required bool) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	t.receiverSigRequired = required
	return nil
}

// SetAutoRenewPeriod sets the auto renew period.
func (t *AccountCreate) SetAutoRenewPeriod(d time.Duration) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	t.autoRenewPeriod = d
	return nil
}

// Key returns the key of the new account.
func (t *AccountCreate) Key() keys.PublicKey {
	return t.key
}

// InitialBalance returns the initial balance.
func (t *AccountCreate) InitialBalance() ledger.Amount {
	return t.initialBalance
}

func (t *AccountCreate) validate() error {
	if t.key == nil {
		return &ValidationError{Kind: "AccountCreate", Reason: "key is not set"}
	}
	return nil
}

func (t *AccountCreate) encode() ([]byte, error) {
	return wire.Marshal(&wire.AccountCreateBody{
		Key:                    t.key.Bytes(),
		InitialBalance:         t.initialBalance,
		ReceiverSigRequired:    t.receiverSigRequired,
		AutoRenewPeriodSeconds: int64(t.autoRenewPeriod / time.Second),
	})
}

func decodeAccountCreate(data []byte) (Operation, error) {
	var body wire.AccountCreateBody
	if err := wire.Unmarshal(data, &body); err != nil {
		return nil, err
	}
	key, err := keys.PublicKeyFromBytes(body.Key)
	if err != nil {
		return nil, err
	}
	t := NewAccountCreate()
	t.key = key
	t.initialBalance = body.InitialBalance
	t.receiverSigRequired = body.ReceiverSigRequired
	t.autoRenewPeriod = time.Duration(body.AutoRenewPeriodSeconds) * time.Second
	return t, nil
}
