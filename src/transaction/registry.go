package transaction

import (
	"bytes"
	"fmt"
	"time"

	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
)

// decoder rebuilds an operation kind from the payload of a body.
type decoder func(data []byte) (Operation, error)

var registry = map[wire.TransactionKind]decoder{
	wire.KindCryptoTransfer: decodeCryptoTransfer,
	wire.KindAccountCreate:  decodeAccountCreate,
	wire.KindTokenCreate:    decodeTokenCreate,
	wire.KindTokenDelete:    decodeTokenDelete,
	wire.KindTokenUnfreeze:  decodeTokenUnfreeze,
	wire.KindLiveHashAdd:    decodeLiveHashAdd,
	wire.KindContractUpdate: decodeContractUpdate,
}

// FromBytes reads a transaction serialized by ToBytes. The result is frozen
// and can be signed and executed.
func FromBytes(data []byte) (*Transaction, error) {
	var list wire.TransactionList
	if err := wire.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
	}
	if len(list.Transactions) == 0 {
		return nil, fmt.Errorf("%w: empty transaction list", ErrMalformedTransaction)
	}

	bindings := make([]binding, len(list.Transactions))
	var first *wire.TransactionBody

	for i, t := range list.Transactions {
		body, err := t.Body()
		if err != nil {
			return nil, fmt.Errorf("%w: body %d: %v", ErrMalformedTransaction, i, err)
		}
		if first == nil {
			first = body
		} else if body.TransactionID != first.TransactionID {
			return nil, fmt.Errorf("%w: body %d has transaction id %s, expected %s",
				ErrMalformedTransaction, i, body.TransactionID, first.TransactionID)
		} else if !sameOperation(body, first) {
			return nil, fmt.Errorf("%w: body %d differs from body 0 beyond the node account",
				ErrMalformedTransaction, i)
		}

		bindings[i] = binding{
			node: body.NodeAccountID,
			body: t.BodyBytes,
			sigs: append([]wire.SignaturePair(nil), t.SigMap...),
		}
	}

	decode, ok := registry[first.Kind]
	if !ok {
		return nil, ErrNoOperationData
	}
	op, err := decode(first.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s data: %v", ErrMalformedTransaction, first.Kind, err)
	}

	tx := &Transaction{
		id:       first.TransactionID,
		body:     *first,
		op:       op,
		bindings: bindings,
	}

	tmpl := op.template()
	tmpl.transactionID = first.TransactionID
	tmpl.nodeAccountIDs = tx.NodeAccountIDs()
	tmpl.maxFee = ledger.Amount(first.TransactionFee)
	tmpl.feeSet = true
	tmpl.validDuration = time.Duration(first.ValidDurationSeconds) * time.Second
	tmpl.memo = first.Memo
	tmpl.frozen = tx

	return tx, nil
}

// sameOperation reports whether two bodies are identical except for the node
// they are bound to.
func sameOperation(a, b *wire.TransactionBody) bool {
	return a.TransactionID == b.TransactionID &&
		a.TransactionFee == b.TransactionFee &&
		a.ValidDurationSeconds == b.ValidDurationSeconds &&
		a.Memo == b.Memo &&
		a.Kind == b.Kind &&
		bytes.Equal(a.Data, b.Data)
}
