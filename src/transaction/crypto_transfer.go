package transaction

import (
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
)

// CryptoTransfer moves hbars between accounts. The amounts must sum to zero.
// It is also the payment attached to paid queries.
type CryptoTransfer struct {
	Template
	transfers []wire.AccountAmount
}

// NewCryptoTransfer creates an empty CryptoTransfer.
func NewCryptoTransfer() *CryptoTransfer {
	t := new(CryptoTransfer)
	t.init(t)
	return t
}

// Kind implements Operation.
func (t *CryptoTransfer) Kind() wire.TransactionKind {
	return wire.KindCryptoTransfer
}

// AddTransfer adds amount to the balance of account. Negative amounts are
// debits.
func (t *CryptoTransfer) AddTransfer(account ledger.AccountID, amount ledger.Amount) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	t.transfers = append(t.transfers, wire.AccountAmount{AccountID: account, Amount: amount})
	return nil
}

// AddSender debits account with amount.
func (t *CryptoTransfer) AddSender(account ledger.AccountID, amount ledger.Amount) error {
	return t.AddTransfer(account, amount.Negated())
}

// AddRecipient credits account with amount.
func (t *CryptoTransfer) AddRecipient(account ledger.AccountID, amount ledger.Amount) error {
	return t.AddTransfer(account, amount)
}

// Transfers returns the transfers.
func (t *CryptoTransfer) Transfers() []wire.AccountAmount {
	return append([]wire.AccountAmount(nil), t.transfers...)
}

func (t *CryptoTransfer) validate() error {
	var sum ledger.Amount
	for _, aa := range t.transfers {
		sum += aa.Amount
	}
	if sum != 0 {
		return &ValidationError{Kind: "CryptoTransfer", Reason: "transfers do not sum to zero"}
	}
	return nil
}

func (t *CryptoTransfer) encode() ([]byte, error) {
	return wire.Marshal(&wire.CryptoTransferBody{Transfers: t.transfers})
}

func decodeCryptoTransfer(data []byte) (Operation, error) {
	var body wire.CryptoTransferBody
	if err := wire.Unmarshal(data, &body); err != nil {
		return nil, err
	}
	t := NewCryptoTransfer()
	t.transfers = body.Transfers
	return t, nil
}
