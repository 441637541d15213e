package transaction

import (
	"github.com/mosaicnetworks/hashgraph-sdk/src/crypto/keys"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
)

// Token name and symbol limits.
const (
	MaxTokenNameLength   = 100
	MaxTokenSymbolLength = 100
)

// TokenCreate creates a fungible token. The initial supply is credited to the
// treasury account. The receipt carries the id of the new token.
type TokenCreate struct {
	Template
	name          string
	symbol        string
	decimals      uint32
	initialSupply uint64
	treasury      ledger.AccountID
	adminKey      keys.PublicKey
	freezeDefault bool
}

// NewTokenCreate creates an empty TokenCreate.
func NewTokenCreate() *TokenCreate {
	t := new(TokenCreate)
	t.init(t)
	return t
}

// Kind implements Operation.
func (t *TokenCreate) Kind() wire.TransactionKind {
	return wire.KindTokenCreate
}

// SetName sets the name of the token.
func (t *TokenCreate) SetName(name string) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	t.name = name
	return nil
}

// SetSymbol sets the symbol of the token.
func (t *TokenCreate) SetSymbol(symbol string) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	t.symbol = symbol
	return nil
}

// SetDecimals sets the number of decimal places of the token.
func (t *TokenCreate) SetDecimals(decimals uint32) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	t.decimals = decimals
	return nil
}

// SetInitialSupply sets the supply credited to the treasury.
func (t *TokenCreate) SetInitialSupply(supply uint64) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	t.initialSupply = supply
	return nil
}

// SetTreasury sets the account receiving the initial supply.
func (t *TokenCreate) SetTreasury(account ledger.AccountID) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	t.treasury = account
	return nil
}

// SetAdminKey sets the key allowed to update and delete the token.
func (t *TokenCreate) SetAdminKey(key keys.PublicKey) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	t.adminKey = key
	return nil
}

// SetFreezeDefault sets whether accounts are frozen for the token until
// unfrozen explicitly.
func (t *TokenCreate) SetFreezeDefault(freeze bool) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	t.freezeDefault = freeze
	return nil
}

// Name returns the name of the token.
func (t *TokenCreate) Name() string {
	return t.name
}

// Symbol returns the symbol of the token.
func (t *TokenCreate) Symbol() string {
	return t.symbol
}

func (t *TokenCreate) validate() error {
	switch {
	case t.name == "":
		return &ValidationError{Kind: "TokenCreate", Reason: "name is not set"}
	case len(t.name) > MaxTokenNameLength:
		return &ValidationError{Kind: "TokenCreate", Reason: "name is too long"}
	case t.symbol == "":
		return &ValidationError{Kind: "TokenCreate", Reason: "symbol is not set"}
	case len(t.symbol) > MaxTokenSymbolLength:
		return &ValidationError{Kind: "TokenCreate", Reason: "symbol is too long"}
	case t.treasury.IsZero():
		return &ValidationError{Kind: "TokenCreate", Reason: "treasury is not set"}
	}
	return nil
}

func (t *TokenCreate) encode() ([]byte, error) {
	body := wire.TokenCreateBody{
		Name:          t.name,
		Symbol:        t.symbol,
		Decimals:      t.decimals,
		InitialSupply: t.initialSupply,
		Treasury:      t.treasury,
		FreezeDefault: t.freezeDefault,
	}
	if t.adminKey != nil {
		body.AdminKey = t.adminKey.Bytes()
	}
	return wire.Marshal(&body)
}

func decodeTokenCreate(data []byte) (Operation, error) {
	var body wire.TokenCreateBody
	if err := wire.Unmarshal(data, &body); err != nil {
		return nil, err
	}
	t := NewTokenCreate()
	t.name = body.Name
	t.symbol = body.Symbol
	t.decimals = body.Decimals
	t.initialSupply = body.InitialSupply
	t.treasury = body.Treasury
	t.freezeDefault = body.FreezeDefault
	if len(body.AdminKey) > 0 {
		key, err := keys.PublicKeyFromBytes(body.AdminKey)
		if err != nil {
			return nil, err
		}
		t.adminKey = key
	}
	return t, nil
}
