package transaction

import (
	"context"
	"time"

	"github.com/mosaicnetworks/hashgraph-sdk/src/client"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/peers"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
)

// Defaults and limits of a Template.
const (
	DefaultValidDuration = 120 * time.Second
	DefaultMaxFee        = ledger.Hbar
	MaxMemoLength        = 100
)

// Operation is an operation kind: the body of a transaction beyond the
// properties shared by all kinds.
type Operation interface {
	Kind() wire.TransactionKind

	template() *Template

	// validate checks the body before it is frozen.
	validate() error

	// encode returns the kind specific payload of the body.
	encode() ([]byte, error)
}

// Template holds the properties shared by every operation kind. It is
// embedded by the kinds and is not used on its own.
type Template struct {
	op Operation

	transactionID  ledger.TransactionID
	nodeAccountIDs []ledger.AccountID
	maxFee         ledger.Amount
	feeSet         bool
	validDuration  time.Duration
	memo           string

	frozen *Transaction
}

// init binds the template to the kind embedding it.
func (t *Template) init(op Operation) {
	t.op = op
	t.validDuration = DefaultValidDuration
}

func (t *Template) template() *Template {
	return t
}

func (t *Template) checkMutable() error {
	if t.frozen != nil {
		return ErrAlreadyFrozen
	}
	return nil
}

// IsFrozen reports whether the template was consumed by Freeze.
func (t *Template) IsFrozen() bool {
	return t.frozen != nil
}

// SetTransactionID sets an explicit transaction id. Without one, Freeze
// generates an id for the operator of the client.
func (t *Template) SetTransactionID(id ledger.TransactionID) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	t.transactionID = id
	return nil
}

// TransactionID returns the explicit transaction id, possibly zero.
func (t *Template) TransactionID() ledger.TransactionID {
	return t.transactionID
}

// SetNodeAccountIDs sets the nodes the transaction is bound to. Without them,
// Freeze picks nodes from the client.
func (t *Template) SetNodeAccountIDs(ids ...ledger.AccountID) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	t.nodeAccountIDs = append([]ledger.AccountID(nil), ids...)
	return nil
}

// NodeAccountIDs returns the explicit nodes.
func (t *Template) NodeAccountIDs() []ledger.AccountID {
	return append([]ledger.AccountID(nil), t.nodeAccountIDs...)
}

// SetMaxTransactionFee sets the largest fee the payer accepts.
func (t *Template) SetMaxTransactionFee(fee ledger.Amount) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	if fee < 0 {
		return ledger.ErrNegativeAmount
	}
	t.maxFee = fee
	t.feeSet = true
	return nil
}

// MaxTransactionFee returns the explicit fee, or 0 when it is not set.
func (t *Template) MaxTransactionFee() ledger.Amount {
	return t.maxFee
}

// SetTransactionValidDuration sets how long after its valid start the
// transaction may reach consensus.
func (t *Template) SetTransactionValidDuration(d time.Duration) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	t.validDuration = d
	return nil
}

// TransactionValidDuration returns the valid duration.
func (t *Template) TransactionValidDuration() time.Duration {
	return t.validDuration
}

// SetTransactionMemo sets a note of at most MaxMemoLength bytes.
func (t *Template) SetTransactionMemo(memo string) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	if len(memo) > MaxMemoLength {
		return ErrMemoTooLong
	}
	t.memo = memo
	return nil
}

// TransactionMemo returns the memo.
func (t *Template) TransactionMemo() string {
	return t.memo
}

// Freeze binds the operation to its target nodes. c may be nil when both the
// nodes and the transaction id were set explicitly. Freezing a frozen
// template returns the same Transaction.
func (t *Template) Freeze(c *client.Client) (*Transaction, error) {
	if t.frozen != nil {
		return t.frozen, nil
	}
	if t.op == nil {
		return nil, ErrNoOperationData
	}

	if err := t.op.validate(); err != nil {
		return nil, err
	}
	data, err := t.op.encode()
	if err != nil {
		return nil, err
	}

	nodes, err := t.targetNodes(c)
	if err != nil {
		return nil, err
	}

	id := t.transactionID
	if id.IsZero() {
		if c == nil || c.Operator() == nil {
			return nil, ErrMissingPayerIdentity
		}
		id = ledger.GenerateTransactionID(c.Operator().AccountID)
	}

	fee := DefaultMaxFee
	switch {
	case t.feeSet:
		fee = t.maxFee
	case c != nil:
		fee = c.MaxTransactionFee()
	}

	body := wire.TransactionBody{
		TransactionID:        id,
		TransactionFee:       uint64(fee),
		ValidDurationSeconds: int64(t.validDuration / time.Second),
		Memo:                 t.memo,
		Kind:                 t.op.Kind(),
		Data:                 data,
	}

	tx, err := newTransaction(t.op, body, nodes)
	if err != nil {
		return nil, err
	}

	t.transactionID = id
	t.nodeAccountIDs = nodes
	t.maxFee = fee
	t.frozen = tx

	return tx, nil
}

func (t *Template) targetNodes(c *client.Client) ([]ledger.AccountID, error) {
	if len(t.nodeAccountIDs) > 0 {
		return append([]ledger.AccountID(nil), t.nodeAccountIDs...), nil
	}
	if c == nil {
		return nil, ErrMissingNodeOrDirectory
	}

	n := c.FanoutSize()
	if n == 0 {
		return nil, peers.ErrEmptyNetwork
	}

	// NextNode may hand out the same healthy node twice when most nodes are
	// unhealthy; draws are bounded and duplicates dropped.
	nodes := make([]ledger.AccountID, 0, n)
	seen := make(map[ledger.AccountID]bool, n)
	for i := 0; i < 3*n && len(nodes) < n; i++ {
		id, err := c.NextNode()
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			nodes = append(nodes, id)
		}
	}
	return nodes, nil
}

// Execute freezes the template, signs it with the operator of c and submits
// it.
func (t *Template) Execute(ctx context.Context, c *client.Client) (*Response, error) {
	tx, err := t.Freeze(c)
	if err != nil {
		return nil, err
	}
	if err := tx.SignWithOperator(c); err != nil {
		return nil, err
	}
	return tx.Execute(ctx, c)
}
