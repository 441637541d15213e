package query

import (
	"context"
	"fmt"

	"github.com/mosaicnetworks/hashgraph-sdk/src/client"
	"github.com/mosaicnetworks/hashgraph-sdk/src/execution"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/net"
	"github.com/mosaicnetworks/hashgraph-sdk/src/peers"
	"github.com/mosaicnetworks/hashgraph-sdk/src/transaction"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
)

// payment is the signed payment attached to the requests sent to node.
type payment struct {
	node ledger.AccountID
	tx   *wire.Transaction
}

// Query holds what every query kind shares: its target nodes and its
// payment. It is embedded by the query kinds and not used on its own.
type Query struct {
	kind wire.QueryKind
	paid bool

	// encode returns the kind specific payload.
	encode func() ([]byte, error)

	// status overrides the precheck status of a response, as the receipt
	// query does to wait for consensus.
	status func(resp *wire.Response) ledger.Status

	nodeAccountIDs []ledger.AccountID
	payments       []payment

	queryPayment ledger.Amount
	paymentSet   bool
	maxPayment   ledger.Amount
	maxSet       bool

	cursor int
	next   ledger.AccountID
}

func (q *Query) init(kind wire.QueryKind, paid bool, encode func() ([]byte, error)) {
	q.kind = kind
	q.paid = paid
	q.encode = encode
}

// Kind returns the query kind.
func (q *Query) Kind() wire.QueryKind {
	return q.kind
}

// IsPaymentRequired reports whether nodes charge for answering the query.
func (q *Query) IsPaymentRequired() bool {
	return q.paid
}

// SetNodeAccountIDs restricts the query to the given nodes. Without them the
// client picks the nodes.
func (q *Query) SetNodeAccountIDs(ids ...ledger.AccountID) {
	q.nodeAccountIDs = append([]ledger.AccountID(nil), ids...)
}

// NodeAccountIDs returns the explicit nodes.
func (q *Query) NodeAccountIDs() []ledger.AccountID {
	return append([]ledger.AccountID(nil), q.nodeAccountIDs...)
}

// SetQueryPayment sets the amount paid to the node, skipping the cost probe.
func (q *Query) SetQueryPayment(amount ledger.Amount) error {
	if amount < 0 {
		return ledger.ErrNegativeAmount
	}
	q.queryPayment = amount
	q.paymentSet = true
	return nil
}

// SetMaxQueryPayment sets the largest quoted cost the query accepts,
// overriding the maximum of the client.
func (q *Query) SetMaxQueryPayment(max ledger.Amount) error {
	if max < 0 {
		return ledger.ErrNegativeAmount
	}
	q.maxPayment = max
	q.maxSet = true
	return nil
}

// SetPaymentTransactions supplies the payments instead of letting the query
// build them from the operator of the client. Each node bound by one of the
// transactions becomes a target of the query.
func (q *Query) SetPaymentTransactions(txs ...*transaction.Transaction) error {
	payments := make([]payment, 0, len(txs))
	for _, tx := range txs {
		for _, node := range tx.NodeAccountIDs() {
			w, err := tx.WireTransaction(node)
			if err != nil {
				return err
			}
			payments = append(payments, payment{node: node, tx: w})
		}
	}
	q.payments = payments
	return nil
}

// GetCost asks a node what answering the query costs.
func (q *Query) GetCost(ctx context.Context, c *client.Client) (ledger.Amount, error) {
	if c == nil {
		return 0, transaction.ErrMissingNodeOrDirectory
	}
	probe := &costProbe{q: q, c: c}
	return execution.Execute[*wire.Query, *wire.Response, ledger.Amount](ctx, c, probe)
}

// preparePayments builds one payment per target node unless the query is
// free or already has payments.
func (q *Query) preparePayments(ctx context.Context, c *client.Client) error {
	if !q.paid || len(q.payments) > 0 {
		return nil
	}

	operator := c.Operator()
	if operator == nil {
		return ErrMissingOperator
	}

	cost := q.queryPayment
	if !q.paymentSet {
		var err error
		cost, err = q.GetCost(ctx, c)
		if err != nil {
			return err
		}

		max := c.MaxQueryPayment()
		if q.maxSet {
			max = q.maxPayment
		}
		if cost > max {
			return &MaxQueryPaymentExceededError{Cost: cost, Max: max}
		}
	}

	nodes, err := q.targetNodes(c)
	if err != nil {
		return err
	}

	id := ledger.GenerateTransactionID(operator.AccountID)
	payments := make([]payment, 0, len(nodes))
	for _, node := range nodes {
		w, err := buildPayment(c, id, node, cost)
		if err != nil {
			return fmt.Errorf("payment for node %s: %w", node, err)
		}
		payments = append(payments, payment{node: node, tx: w})
	}

	q.payments = payments
	q.cursor = 0
	return nil
}

func (q *Query) targetNodes(c *client.Client) ([]ledger.AccountID, error) {
	if len(q.nodeAccountIDs) > 0 {
		return q.NodeAccountIDs(), nil
	}

	n := c.FanoutSize()
	if n == 0 {
		return nil, peers.ErrEmptyNetwork
	}

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

// buildPayment transfers cost from the operator to node, in a transaction
// bound to node only.
func buildPayment(c *client.Client, id ledger.TransactionID, node ledger.AccountID, cost ledger.Amount) (*wire.Transaction, error) {
	operator := c.Operator()

	tr := transaction.NewCryptoTransfer()
	if err := tr.AddSender(operator.AccountID, cost); err != nil {
		return nil, err
	}
	if err := tr.AddRecipient(node, cost); err != nil {
		return nil, err
	}
	if err := tr.SetTransactionID(id); err != nil {
		return nil, err
	}
	if err := tr.SetNodeAccountIDs(node); err != nil {
		return nil, err
	}
	if err := tr.SetMaxTransactionFee(ledger.Hbar); err != nil {
		return nil, err
	}

	tx, err := tr.Freeze(c)
	if err != nil {
		return nil, err
	}
	if err := tx.SignWithOperator(c); err != nil {
		return nil, err
	}
	return tx.WireTransaction(node)
}

// nodeAt returns the node targeted by the current attempt.
func (q *Query) nodeAt(c *client.Client) ledger.AccountID {
	switch {
	case len(q.payments) > 0:
		return q.payments[q.cursor%len(q.payments)].node
	case len(q.nodeAccountIDs) > 0:
		return q.nodeAccountIDs[q.cursor%len(q.nodeAccountIDs)]
	}
	if q.next.IsZero() {
		// an empty network leaves next zero, which fails to resolve
		q.next, _ = c.NextNode()
	}
	return q.next
}

func (q *Query) paymentAt() *wire.Transaction {
	if len(q.payments) == 0 {
		return nil
	}
	return q.payments[q.cursor%len(q.payments)].tx
}

func (q *Query) advance() {
	q.cursor++
	q.next = ledger.AccountID{}
}

func (q *Query) request(typ wire.ResponseType, pay *wire.Transaction) (*wire.Query, error) {
	data, err := q.encode()
	if err != nil {
		return nil, err
	}
	return &wire.Query{
		Header: wire.QueryHeader{
			ResponseType: typ,
			Payment:      pay,
		},
		Kind: q.kind,
		Data: data,
	}, nil
}

func submitQuery(ctx context.Context, trans net.Transport, addr string, req *wire.Query) (*wire.Response, error) {
	resp := new(wire.Response)
	if err := trans.Query(ctx, addr, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// execute runs q to completion and decodes the answer.
func execute[Out any](ctx context.Context, c *client.Client, q *Query, decode func(data []byte) (Out, error)) (Out, error) {
	if c == nil {
		var zero Out
		return zero, transaction.ErrMissingNodeOrDirectory
	}
	r := &runner[Out]{q: q, c: c, decode: decode}
	return execution.Execute[*wire.Query, *wire.Response, Out](ctx, c, r)
}

// runner adapts a Query to execution.Executable.
type runner[Out any] struct {
	q      *Query
	c      *client.Client
	decode func(data []byte) (Out, error)
}

func (r *runner[Out]) OnExecute(ctx context.Context, env execution.Environment) error {
	return r.q.preparePayments(ctx, r.c)
}

func (r *runner[Out]) NodeAccountID() ledger.AccountID {
	return r.q.nodeAt(r.c)
}

func (r *runner[Out]) MakeRequest() (*wire.Query, error) {
	return r.q.request(wire.AnswerOnly, r.q.paymentAt())
}

func (r *runner[Out]) Submit(ctx context.Context, trans net.Transport, addr string, req *wire.Query) (*wire.Response, error) {
	return submitQuery(ctx, trans, addr, req)
}

func (r *runner[Out]) Status(resp *wire.Response) ledger.Status {
	if r.q.status != nil {
		return r.q.status(resp)
	}
	return resp.Header.Precheck
}

func (r *runner[Out]) MapResponse(resp *wire.Response, node ledger.AccountID, req *wire.Query) (Out, error) {
	if resp.Kind != r.q.kind {
		var zero Out
		return zero, fmt.Errorf("node %s answered a %s query with %s", node, r.q.kind, resp.Kind)
	}
	return r.decode(resp.Data)
}

func (r *runner[Out]) Advance() {
	r.q.advance()
}

func (r *runner[Out]) OperationName() string {
	return r.q.kind.String()
}
