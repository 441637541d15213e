package transaction

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/mosaicnetworks/hashgraph-sdk/src/client"
	"github.com/mosaicnetworks/hashgraph-sdk/src/execution"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/net"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
)

// Response is returned when a node accepted a transaction. Acceptance only
// means the transaction passed precheck; its outcome is in the receipt.
type Response struct {
	TransactionID ledger.TransactionID
	NodeID        ledger.AccountID
	Hash          []byte
}

func (r *Response) String() string {
	return fmt.Sprintf("%s accepted by %s, hash %s", r.TransactionID, r.NodeID, hex.EncodeToString(r.Hash))
}

// GetReceipt waits for the transaction to reach consensus and returns its
// receipt. It fails with a *ReceiptStatusError when the status is not
// SUCCESS.
func (r *Response) GetReceipt(ctx context.Context, c *client.Client) (*wire.Receipt, error) {
	return GetReceipt(ctx, c, r.TransactionID, r.NodeID)
}

// GetReceipt asks node for the receipt of a transaction, retrying while the
// receipt status is UNKNOWN. A zero node lets the client pick nodes.
func GetReceipt(ctx context.Context, c *client.Client, id ledger.TransactionID, node ledger.AccountID) (*wire.Receipt, error) {
	if c == nil {
		return nil, ErrMissingNodeOrDirectory
	}
	q := &receiptQuery{
		id:   id,
		node: node,
		c:    c,
	}
	return execution.Execute[*wire.Query, *wire.Response, *wire.Receipt](ctx, c, q)
}

// receiptQuery is a free query reporting an UNKNOWN receipt as the UNKNOWN
// precheck status, which the default retry policy retries.
type receiptQuery struct {
	id   ledger.TransactionID
	node ledger.AccountID
	c    *client.Client
	next ledger.AccountID
}

func (q *receiptQuery) OnExecute(ctx context.Context, env execution.Environment) error {
	return nil
}

func (q *receiptQuery) NodeAccountID() ledger.AccountID {
	if !q.node.IsZero() {
		return q.node
	}
	if q.next.IsZero() {
		q.next, _ = q.c.NextNode()
	}
	return q.next
}

func (q *receiptQuery) MakeRequest() (*wire.Query, error) {
	data, err := wire.Marshal(&wire.TransactionReceiptQuery{TransactionID: q.id})
	if err != nil {
		return nil, err
	}
	return &wire.Query{
		Header: wire.QueryHeader{ResponseType: wire.AnswerOnly},
		Kind:   wire.QueryTransactionReceipt,
		Data:   data,
	}, nil
}

func (q *receiptQuery) Submit(ctx context.Context, trans net.Transport, addr string, req *wire.Query) (*wire.Response, error) {
	resp := new(wire.Response)
	if err := trans.Query(ctx, addr, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (q *receiptQuery) Status(resp *wire.Response) ledger.Status {
	return wire.ReceiptPrecheck(resp)
}

func (q *receiptQuery) MapResponse(resp *wire.Response, node ledger.AccountID, req *wire.Query) (*wire.Receipt, error) {
	var answer wire.TransactionReceiptResponse
	if err := wire.Unmarshal(resp.Data, &answer); err != nil {
		return nil, fmt.Errorf("decoding receipt: %w", err)
	}
	if answer.Receipt.Status != ledger.StatusSuccess {
		return nil, &ReceiptStatusError{
			Status:        answer.Receipt.Status,
			TransactionID: q.id,
		}
	}
	return &answer.Receipt, nil
}

func (q *receiptQuery) Advance() {
	q.next = ledger.AccountID{}
}

func (q *receiptQuery) OperationName() string {
	return "TransactionReceipt"
}

func (q *receiptQuery) TransactionID() ledger.TransactionID {
	return q.id
}
