package query

import (
	"context"

	"github.com/mosaicnetworks/hashgraph-sdk/src/client"
	"github.com/mosaicnetworks/hashgraph-sdk/src/execution"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/metrics"
	"github.com/mosaicnetworks/hashgraph-sdk/src/net"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
	"github.com/sirupsen/logrus"
)

// costProbe asks for the cost of a query. Nodes require a payment to be
// attached even to COST_ANSWER requests but do not charge it, so the probe
// carries an unsigned empty transfer.
type costProbe struct {
	q      *Query
	c      *client.Client
	cursor int
	next   ledger.AccountID
}

// dummyPayment is a zero CryptoTransfer bound to node 0.0.0, with the zero
// transaction id and no signature.
func dummyPayment() (*wire.Transaction, error) {
	data, err := wire.Marshal(&wire.CryptoTransferBody{})
	if err != nil {
		return nil, err
	}
	body, err := wire.Marshal(&wire.TransactionBody{
		Kind: wire.KindCryptoTransfer,
		Data: data,
	})
	if err != nil {
		return nil, err
	}
	return &wire.Transaction{BodyBytes: body}, nil
}

func (p *costProbe) OnExecute(ctx context.Context, env execution.Environment) error {
	return nil
}

func (p *costProbe) NodeAccountID() ledger.AccountID {
	if n := len(p.q.nodeAccountIDs); n > 0 {
		return p.q.nodeAccountIDs[p.cursor%n]
	}
	if p.next.IsZero() {
		p.next, _ = p.c.NextNode()
	}
	return p.next
}

func (p *costProbe) MakeRequest() (*wire.Query, error) {
	pay, err := dummyPayment()
	if err != nil {
		return nil, err
	}
	return p.q.request(wire.CostAnswer, pay)
}

func (p *costProbe) Submit(ctx context.Context, trans net.Transport, addr string, req *wire.Query) (*wire.Response, error) {
	return submitQuery(ctx, trans, addr, req)
}

func (p *costProbe) Status(resp *wire.Response) ledger.Status {
	return resp.Header.Precheck
}

func (p *costProbe) MapResponse(resp *wire.Response, node ledger.AccountID, req *wire.Query) (ledger.Amount, error) {
	cost := ledger.Amount(resp.Header.Cost)
	metrics.QueryCost.WithLabelValues(p.q.kind.String()).Observe(float64(cost))

	p.c.Logger().WithFields(logrus.Fields{
		"query": p.q.kind.String(),
		"node":  node.String(),
		"cost":  cost.String(),
	}).Debug("Query cost")

	return cost, nil
}

func (p *costProbe) Advance() {
	p.cursor++
	p.next = ledger.AccountID{}
}

func (p *costProbe) OperationName() string {
	return p.q.kind.String() + "Cost"
}
