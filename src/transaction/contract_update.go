package transaction

import (
	"time"

	"github.com/mosaicnetworks/hashgraph-sdk/src/crypto/keys"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
)

// ContractUpdate changes the properties of a contract instance. Properties
// left unset keep their current value.
type ContractUpdate struct {
	Template
	contractID      ledger.ContractID
	adminKey        keys.PublicKey
	expirationTime  time.Time
	proxyAccountID  ledger.AccountID
	autoRenewPeriod time.Duration
	contractMemo    string
}

// NewContractUpdate creates an empty ContractUpdate.
func NewContractUpdate() *ContractUpdate {
	t := new(ContractUpdate)
	t.init(t)
	return t
}

// Kind implements Operation.
func (t *ContractUpdate) Kind() wire.TransactionKind {
	return wire.KindContractUpdate
}

// SetContractID sets the contract to update.
func (t *ContractUpdate) SetContractID(id ledger.ContractID) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	t.contractID = id
	return nil
}

// SetAdminKey sets the new admin key of the contract.
func (t *ContractUpdate) SetAdminKey(key keys.PublicKey) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	t.adminKey = key
	return nil
}

// SetExpirationTime extends the life of the contract.
func (t *ContractUpdate) SetExpirationTime(exp time.Time) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	t.expirationTime = exp
	return nil
}

// SetProxyAccountID sets the account the contract stakes to.
func (t *ContractUpdate) SetProxyAccountID(id ledger.AccountID) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	t.proxyAccountID = id
	return nil
}

// SetAutoRenewPeriod sets the auto renew period of the contract.
func (t *ContractUpdate) SetAutoRenewPeriod(d time.Duration) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	t.autoRenewPeriod = d
	return nil
}

// SetContractMemo sets the memo of the contract, not to be confused with the
// memo of the transaction.
func (t *ContractUpdate) SetContractMemo(memo string) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	if len(memo) > MaxMemoLength {
		return ErrMemoTooLong
	}
	t.contractMemo = memo
	return nil
}

// ContractID returns the contract to update.
func (t *ContractUpdate) ContractID() ledger.ContractID {
	return t.contractID
}

func (t *ContractUpdate) validate() error {
	if t.contractID.IsZero() {
		return &ValidationError{Kind: "ContractUpdate", Reason: "contract is not set"}
	}
	return nil
}

func (t *ContractUpdate) encode() ([]byte, error) {
	body := wire.ContractUpdateBody{
		ContractID:            t.contractID,
		ProxyAccountID:        t.proxyAccountID,
		AutoRenewPeriodSecond: int64(t.autoRenewPeriod / time.Second),
		Memo:                  t.contractMemo,
	}
	if t.adminKey != nil {
		body.AdminKey = t.adminKey.Bytes()
	}
	if !t.expirationTime.IsZero() {
		body.ExpirationTime = ledger.NewTimestamp(t.expirationTime)
	}
	return wire.Marshal(&body)
}

func decodeContractUpdate(data []byte) (Operation, error) {
	var body wire.ContractUpdateBody
	if err := wire.Unmarshal(data, &body); err != nil {
		return nil, err
	}
	t := NewContractUpdate()
	t.contractID = body.ContractID
	t.proxyAccountID = body.ProxyAccountID
	t.autoRenewPeriod = time.Duration(body.AutoRenewPeriodSecond) * time.Second
	t.contractMemo = body.Memo
	if body.ExpirationTime != (ledger.Timestamp{}) {
		t.expirationTime = body.ExpirationTime.Time()
	}
	if len(body.AdminKey) > 0 {
		key, err := keys.PublicKeyFromBytes(body.AdminKey)
		if err != nil {
			return nil, err
		}
		t.adminKey = key
	}
	return t, nil
}
