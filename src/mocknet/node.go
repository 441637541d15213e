package mocknet

import (
	"sync"

	"github.com/mosaicnetworks/hashgraph-sdk/src/crypto"
	"github.com/mosaicnetworks/hashgraph-sdk/src/crypto/keys"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/metrics"
	"github.com/mosaicnetworks/hashgraph-sdk/src/net"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
	"github.com/sirupsen/logrus"
)

// DefaultQueryCost is what a node charges for a paid query unless configured
// otherwise.
const DefaultQueryCost = ledger.Amount(100)

// maxMemoLength mirrors the limit enforced by real nodes.
const maxMemoLength = 100

var paidQueries = map[wire.QueryKind]bool{
	wire.QueryTransactionRecord: true,
	wire.QueryLiveHash:          true,
	wire.QueryContractRecords:   true,
	wire.QueryTokenInfo:         true,
}

// Node simulates a network node. It answers the transactions and queries
// received by its transport and applies accepted transactions to a shared
// Ledger.
type Node struct {
	id     ledger.AccountID
	trans  net.Transport
	netCh  <-chan net.RPC
	ledger *Ledger
	logger *logrus.Entry

	mu       sync.Mutex
	script   []ledger.Status
	costs    map[wire.QueryKind]ledger.Amount
	received int

	wg         sync.WaitGroup
	shutdownCh chan struct{}
	closeOnce  sync.Once
}

// NewNode creates a Node for account id, serving the RPCs of trans.
func NewNode(id ledger.AccountID, trans net.Transport, l *Ledger, logger *logrus.Entry) *Node {
	return &Node{
		id:         id,
		trans:      trans,
		netCh:      trans.Consumer(),
		ledger:     l,
		logger:     logger.WithField("node", id.String()),
		costs:      make(map[wire.QueryKind]ledger.Amount),
		shutdownCh: make(chan struct{}),
	}
}

// ID returns the account of the node.
func (n *Node) ID() ledger.AccountID {
	return n.id
}

// Addr returns the address clients reach the node at.
func (n *Node) Addr() string {
	return n.trans.AdvertiseAddr()
}

// Script queues precheck statuses returned, in order, to the next requests
// instead of processing them.
func (n *Node) Script(statuses ...ledger.Status) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.script = append(n.script, statuses...)
}

// SetQueryCost sets the cost quoted for a query kind.
func (n *Node) SetQueryCost(kind wire.QueryKind, cost ledger.Amount) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.costs[kind] = cost
}

// Received returns the number of requests the node received.
func (n *Node) Received() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.received
}

func (n *Node) cost(kind wire.QueryKind) ledger.Amount {
	n.mu.Lock()
	defer n.mu.Unlock()
	if c, ok := n.costs[kind]; ok {
		return c
	}
	if paidQueries[kind] {
		return DefaultQueryCost
	}
	return 0
}

// scripted pops the next scripted status.
func (n *Node) scripted() (ledger.Status, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.received++
	if len(n.script) == 0 {
		return ledger.StatusOK, false
	}
	s := n.script[0]
	n.script = n.script[1:]
	return s, true
}

// RunAsync starts the node in a goroutine.
func (n *Node) RunAsync() {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.Run()
	}()
}

// Run processes RPCs until Shutdown.
func (n *Node) Run() {
	// a TCP transport needs its accept loop, an inmem one returns at once
	go n.trans.Listen()

	for {
		select {
		case rpc := <-n.netCh:
			n.processRPC(rpc)
		case <-n.shutdownCh:
			return
		}
	}
}

// Shutdown stops the node and closes its transport.
func (n *Node) Shutdown() {
	n.closeOnce.Do(func() {
		n.logger.Debug("Shutdown")
		close(n.shutdownCh)
		n.wg.Wait()
		n.trans.Close()
	})
}

func (n *Node) processRPC(rpc net.RPC) {
	switch cmd := rpc.Command.(type) {
	case *wire.Transaction:
		status := n.processTransaction(cmd)
		n.logRequest(rpc, "transaction", status)
		rpc.Respond(&wire.TransactionResponse{Precheck: status}, nil)
	case *wire.Query:
		resp := n.processQuery(cmd)
		n.logRequest(rpc, cmd.Kind.String(), resp.Header.Precheck)
		rpc.Respond(resp, nil)
	default:
		n.logger.WithField("command", cmd).Error("Unexpected RPC command")
		rpc.Respond(nil, errUnexpectedCommand)
	}
}

func (n *Node) logRequest(rpc net.RPC, what string, status ledger.Status) {
	metrics.MocknetRequestsTotal.WithLabelValues(n.id.String(), status.String()).Inc()
	n.logger.WithFields(logrus.Fields{
		"rpc":      rpc.ID,
		"request":  what,
		"precheck": status.String(),
	}).Debug("Processed request")
}

func (n *Node) processTransaction(tx *wire.Transaction) ledger.Status {
	if s, ok := n.scripted(); ok {
		return s
	}

	body, status := n.precheck(tx)
	if status != ledger.StatusOK {
		return status
	}
	if len(body.Memo) > maxMemoLength {
		return ledger.StatusMemoTooLong
	}

	hash, err := wire.Marshal(tx)
	if err != nil {
		return ledger.StatusInvalidTransaction
	}
	return n.ledger.Submit(body, crypto.SHA384(hash))
}

// precheck decodes a signed transaction and checks that it is bound to this
// node and that every signature verifies.
func (n *Node) precheck(tx *wire.Transaction) (*wire.TransactionBody, ledger.Status) {
	body, err := tx.Body()
	if err != nil {
		return nil, ledger.StatusInvalidTransaction
	}
	if body.NodeAccountID != n.id {
		return nil, ledger.StatusInvalidNodeAccount
	}
	if len(tx.SigMap) == 0 {
		return nil, ledger.StatusInvalidSignature
	}
	for _, pair := range tx.SigMap {
		pub, err := keys.PublicKeyFromBytes(pair.PubKeyPrefix)
		if err != nil || !pub.Verify(tx.BodyBytes, pair.Signature) {
			return nil, ledger.StatusInvalidSignature
		}
	}
	return body, ledger.StatusOK
}

func (n *Node) processQuery(q *wire.Query) *wire.Response {
	resp := &wire.Response{
		Header: wire.ResponseHeader{ResponseType: q.Header.ResponseType},
		Kind:   q.Kind,
	}

	if s, ok := n.scripted(); ok {
		resp.Header.Precheck = s
		return resp
	}

	cost := n.cost(q.Kind)

	if q.Header.ResponseType == wire.CostAnswer {
		resp.Header.Precheck = ledger.StatusOK
		resp.Header.Cost = uint64(cost)
		return resp
	}

	if paidQueries[q.Kind] {
		if s := n.checkPayment(q.Header.Payment, cost); s != ledger.StatusOK {
			resp.Header.Precheck = s
			return resp
		}
	}

	answer, status := n.answer(q)
	resp.Header.Precheck = status
	if status != ledger.StatusOK {
		return resp
	}

	data, err := wire.Marshal(answer)
	if err != nil {
		n.logger.WithField("error", err).Error("Encoding answer")
		resp.Header.Precheck = ledger.StatusUnknown
		return resp
	}
	resp.Data = data
	return resp
}

// checkPayment verifies that payment pays at least cost to this node and
// charges it.
func (n *Node) checkPayment(payment *wire.Transaction, cost ledger.Amount) ledger.Status {
	if payment == nil {
		return ledger.StatusInsufficientQueryPayment
	}

	body, status := n.precheck(payment)
	if status != ledger.StatusOK {
		return status
	}
	if body.Kind != wire.KindCryptoTransfer {
		return ledger.StatusInsufficientQueryPayment
	}

	var transfer wire.CryptoTransferBody
	if err := wire.Unmarshal(body.Data, &transfer); err != nil {
		return ledger.StatusInvalidTransaction
	}

	var paid ledger.Amount
	for _, aa := range transfer.Transfers {
		if aa.AccountID == n.id {
			paid += aa.Amount
		}
	}
	if paid < cost {
		return ledger.StatusInsufficientQueryPayment
	}

	if s := n.ledger.Charge(transfer.Transfers); s != ledger.StatusSuccess {
		return s
	}
	return ledger.StatusOK
}

func (n *Node) answer(q *wire.Query) (interface{}, ledger.Status) {
	switch q.Kind {
	case wire.QueryAccountBalance:
		var args wire.AccountBalanceQuery
		if err := wire.Unmarshal(q.Data, &args); err != nil {
			return nil, ledger.StatusInvalidTransaction
		}
		balance, ok := n.ledger.Balance(args.AccountID)
		if !ok {
			return nil, ledger.StatusInvalidAccountID
		}
		return &wire.AccountBalanceResponse{AccountID: args.AccountID, Balance: balance}, ledger.StatusOK

	case wire.QueryTransactionReceipt:
		var args wire.TransactionReceiptQuery
		if err := wire.Unmarshal(q.Data, &args); err != nil {
			return nil, ledger.StatusInvalidTransaction
		}
		receipt, ok := n.ledger.Receipt(args.TransactionID)
		if !ok {
			return nil, ledger.StatusReceiptNotFound
		}
		return &wire.TransactionReceiptResponse{Receipt: receipt}, ledger.StatusOK

	case wire.QueryTransactionRecord:
		var args wire.TransactionRecordQuery
		if err := wire.Unmarshal(q.Data, &args); err != nil {
			return nil, ledger.StatusInvalidTransaction
		}
		record, ok := n.ledger.Record(args.TransactionID)
		if !ok {
			return nil, ledger.StatusRecordNotFound
		}
		return &wire.TransactionRecordResponse{Record: record}, ledger.StatusOK

	case wire.QueryLiveHash:
		var args wire.LiveHashQuery
		if err := wire.Unmarshal(q.Data, &args); err != nil {
			return nil, ledger.StatusInvalidTransaction
		}
		lh, ok := n.ledger.LiveHash(args.AccountID, args.Hash)
		if !ok {
			return nil, ledger.StatusInvalidLiveHash
		}
		return &wire.LiveHashResponse{LiveHash: lh}, ledger.StatusOK

	case wire.QueryContractRecords:
		var args wire.ContractRecordsQuery
		if err := wire.Unmarshal(q.Data, &args); err != nil {
			return nil, ledger.StatusInvalidTransaction
		}
		records, ok := n.ledger.ContractRecords(args.ContractID)
		if !ok {
			return nil, ledger.StatusInvalidContractID
		}
		return &wire.ContractRecordsResponse{ContractID: args.ContractID, Records: records}, ledger.StatusOK

	case wire.QueryTokenInfo:
		var args wire.TokenInfoQuery
		if err := wire.Unmarshal(q.Data, &args); err != nil {
			return nil, ledger.StatusInvalidTransaction
		}
		info, ok := n.ledger.TokenInfo(args.TokenID)
		if !ok {
			return nil, ledger.StatusInvalidTokenID
		}
		return &wire.TokenInfoResponse{TokenInfo: info}, ledger.StatusOK
	}

	return nil, ledger.StatusNotSupported
}
