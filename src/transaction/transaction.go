package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/mosaicnetworks/hashgraph-sdk/src/client"
	"github.com/mosaicnetworks/hashgraph-sdk/src/common"
	"github.com/mosaicnetworks/hashgraph-sdk/src/crypto"
	"github.com/mosaicnetworks/hashgraph-sdk/src/crypto/keys"
	"github.com/mosaicnetworks/hashgraph-sdk/src/execution"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/net"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
)

// binding is the body of the transaction for one node, with the signatures
// collected over it.
type binding struct {
	node ledger.AccountID
	body []byte
	sigs []wire.SignaturePair
}

func (b *binding) toWire() *wire.Transaction {
	return &wire.Transaction{
		BodyBytes: b.body,
		SigMap:    append([]wire.SignaturePair(nil), b.sigs...),
	}
}

// Transaction is a frozen operation bound to one or more nodes. Its body
// cannot change, only signatures can be added.
type Transaction struct {
	id       ledger.TransactionID
	body     wire.TransactionBody
	op       Operation
	bindings []binding
	cursor   int
}

// newTransaction encodes one copy of body per node. The copies only differ in
// NodeAccountID.
func newTransaction(op Operation, body wire.TransactionBody, nodes []ledger.AccountID) (*Transaction, error) {
	tx := &Transaction{
		id:       body.TransactionID,
		body:     body,
		op:       op,
		bindings: make([]binding, 0, len(nodes)),
	}

	for _, node := range nodes {
		body.NodeAccountID = node
		bodyBytes, err := wire.Marshal(&body)
		if err != nil {
			return nil, err
		}
		tx.bindings = append(tx.bindings, binding{
			node: node,
			body: bodyBytes,
		})
	}

	return tx, nil
}

func (tx *Transaction) checkFrozen() error {
	if tx == nil || len(tx.bindings) == 0 {
		return ErrNotFrozen
	}
	return nil
}

// Sign adds the signature of pub, produced by signer, to every binding.
// Signing twice with the same key is a no-op. When signer fails no binding
// keeps a signature from this call.
func (tx *Transaction) Sign(pub keys.PublicKey, signer keys.TransactionSigner) error {
	if err := tx.checkFrozen(); err != nil {
		return err
	}

	for _, pair := range tx.bindings[0].sigs {
		if keys.HasPrefix(pub, pair.PubKeyPrefix) {
			return nil
		}
	}

	sigs := make([][]byte, len(tx.bindings))
	for i, b := range tx.bindings {
		sig, err := signer(b.body)
		if err != nil {
			return fmt.Errorf("signing for node %s: %w", b.node, err)
		}
		sigs[i] = sig
	}

	prefix := pub.Bytes()
	for i := range tx.bindings {
		tx.bindings[i].sigs = append(tx.bindings[i].sigs, wire.SignaturePair{
			PubKeyPrefix: prefix,
			Signature:    sigs[i],
		})
	}

	return nil
}

// SignWith signs with a private key held in memory.
func (tx *Transaction) SignWith(key keys.PrivateKey) error {
	return tx.Sign(key.PublicKey(), keys.Signer(key))
}

// SignWithOperator signs with the operator of c.
func (tx *Transaction) SignWithOperator(c *client.Client) error {
	if c == nil || c.Operator() == nil {
		return ErrMissingOperator
	}
	op := c.Operator()
	return tx.Sign(op.PublicKey, op.Signer)
}

// TransactionID returns the id shared by every binding.
func (tx *Transaction) TransactionID() ledger.TransactionID {
	return tx.id
}

// NodeAccountIDs returns the bound nodes, in order.
func (tx *Transaction) NodeAccountIDs() []ledger.AccountID {
	ids := make([]ledger.AccountID, len(tx.bindings))
	for i, b := range tx.bindings {
		ids[i] = b.node
	}
	return ids
}

// Kind returns the operation kind.
func (tx *Transaction) Kind() wire.TransactionKind {
	return tx.body.Kind
}

// Memo returns the memo of the body.
func (tx *Transaction) Memo() string {
	return tx.body.Memo
}

// MaxTransactionFee returns the fee of the body.
func (tx *Transaction) MaxTransactionFee() ledger.Amount {
	return ledger.Amount(tx.body.TransactionFee)
}

// ValidDuration returns the valid duration of the body.
func (tx *Transaction) ValidDuration() time.Duration {
	return time.Duration(tx.body.ValidDurationSeconds) * time.Second
}

// Operation returns the operation kind, such as *CryptoTransfer. Its template
// is frozen.
func (tx *Transaction) Operation() Operation {
	return tx.op
}

// Signatures returns the signatures collected for each node.
func (tx *Transaction) Signatures() map[ledger.AccountID][]wire.SignaturePair {
	res := make(map[ledger.AccountID][]wire.SignaturePair, len(tx.bindings))
	for _, b := range tx.bindings {
		res[b.node] = append([]wire.SignaturePair(nil), b.sigs...)
	}
	return res
}

// WireTransaction returns the signed transaction bound to node, as sent to
// it.
func (tx *Transaction) WireTransaction(node ledger.AccountID) (*wire.Transaction, error) {
	if err := tx.checkFrozen(); err != nil {
		return nil, err
	}
	for i := range tx.bindings {
		if tx.bindings[i].node == node {
			return tx.bindings[i].toWire(), nil
		}
	}
	return nil, fmt.Errorf("transaction %s is not bound to node %s", tx.id, node)
}

// ToBytes serializes the transaction with every binding and signature.
func (tx *Transaction) ToBytes() ([]byte, error) {
	if err := tx.checkFrozen(); err != nil {
		return nil, err
	}

	list := wire.TransactionList{
		Transactions: make([]wire.Transaction, len(tx.bindings)),
	}
	for i := range tx.bindings {
		list.Transactions[i] = *tx.bindings[i].toWire()
	}

	return wire.Marshal(&list)
}

// Hash returns the SHA-384 hash of the signed transaction, which is how the
// network identifies it. It requires a single bound node.
func (tx *Transaction) Hash() ([]byte, error) {
	if err := tx.checkFrozen(); err != nil {
		return nil, err
	}
	if len(tx.bindings) != 1 {
		return nil, ErrMultipleNodes
	}
	if len(tx.bindings[0].sigs) == 0 {
		return nil, ErrNotSigned
	}
	return hashWire(tx.bindings[0].toWire())
}

// HashPerNode returns the hash of the signed transaction for each bound node.
func (tx *Transaction) HashPerNode() (map[ledger.AccountID][]byte, error) {
	if err := tx.checkFrozen(); err != nil {
		return nil, err
	}
	if len(tx.bindings[0].sigs) == 0 {
		return nil, ErrNotSigned
	}

	res := make(map[ledger.AccountID][]byte, len(tx.bindings))
	for i := range tx.bindings {
		h, err := hashWire(tx.bindings[i].toWire())
		if err != nil {
			return nil, err
		}
		res[tx.bindings[i].node] = h
	}
	return res, nil
}

func hashWire(t *wire.Transaction) ([]byte, error) {
	b, err := wire.Marshal(t)
	if err != nil {
		return nil, err
	}
	return crypto.SHA384(b), nil
}

type jsonSignature struct {
	PublicKey []byte `codec:"pub_key_prefix"`
	Signature []byte `codec:"signature"`
}

type jsonBinding struct {
	Node       string               `codec:"node"`
	Body       wire.TransactionBody `codec:"body"`
	Signatures []jsonSignature      `codec:"signatures"`
}

type jsonTransaction struct {
	TransactionID string        `codec:"transaction_id"`
	Kind          string        `codec:"kind"`
	Bindings      []jsonBinding `codec:"bindings"`
}

// String returns an indented JSON dump of the transaction.
func (tx *Transaction) String() string {
	if tx.checkFrozen() != nil {
		return "{}"
	}

	dump := jsonTransaction{
		TransactionID: tx.id.String(),
		Kind:          tx.body.Kind.String(),
	}
	for _, b := range tx.bindings {
		jb := jsonBinding{Node: b.node.String(), Body: tx.body}
		jb.Body.NodeAccountID = b.node
		for _, s := range b.sigs {
			jb.Signatures = append(jb.Signatures, jsonSignature{PublicKey: s.PubKeyPrefix, Signature: s.Signature})
		}
		dump.Bindings = append(dump.Bindings, jb)
	}

	out, err := wire.MarshalJSON(&dump)
	if err != nil {
		return fmt.Sprintf("transaction %s: %v", tx.id, err)
	}
	return string(out)
}

// Execute submits the transaction through c, signing it with the operator
// first when c has one.
func (tx *Transaction) Execute(ctx context.Context, c *client.Client) (*Response, error) {
	if err := tx.checkFrozen(); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrMissingNodeOrDirectory
	}
	return execution.Execute[*wire.Transaction, *wire.TransactionResponse, *Response](ctx, c, tx)
}

// ExecuteAsync runs Execute on the worker pool of c.
func (tx *Transaction) ExecuteAsync(c *client.Client) *common.Promise[*Response] {
	p := common.NewPromise[*Response]()

	err := c.Pool().Submit(func(ctx context.Context) {
		p.Resolve(tx.Execute(ctx, c))
	})
	if err != nil {
		p.Resolve(nil, err)
	}

	return p
}

// OnExecute implements execution.Executable.
func (tx *Transaction) OnExecute(ctx context.Context, env execution.Environment) error {
	if c, ok := env.(*client.Client); ok && c.Operator() != nil {
		return tx.SignWithOperator(c)
	}
	return nil
}

// NodeAccountID implements execution.Executable.
func (tx *Transaction) NodeAccountID() ledger.AccountID {
	return tx.bindings[tx.cursor].node
}

// MakeRequest implements execution.Executable.
func (tx *Transaction) MakeRequest() (*wire.Transaction, error) {
	return tx.bindings[tx.cursor].toWire(), nil
}

// Submit implements execution.Executable.
func (tx *Transaction) Submit(ctx context.Context, trans net.Transport, addr string, req *wire.Transaction) (*wire.TransactionResponse, error) {
	resp := new(wire.TransactionResponse)
	if err := trans.SubmitTransaction(ctx, addr, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Status implements execution.Executable.
func (tx *Transaction) Status(resp *wire.TransactionResponse) ledger.Status {
	return resp.Precheck
}

// MapResponse implements execution.Executable.
func (tx *Transaction) MapResponse(resp *wire.TransactionResponse, node ledger.AccountID, req *wire.Transaction) (*Response, error) {
	hash, err := hashWire(req)
	if err != nil {
		return nil, err
	}
	return &Response{
		TransactionID: tx.id,
		NodeID:        node,
		Hash:          hash,
	}, nil
}

// Advance implements execution.Executable.
func (tx *Transaction) Advance() {
	tx.cursor = (tx.cursor + 1) % len(tx.bindings)
}

// OperationName labels the metrics of the execution.
func (tx *Transaction) OperationName() string {
	return tx.body.Kind.String()
}
