package mocknet

import (
	"errors"
	"fmt"
	"time"

	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/net"
	"github.com/sirupsen/logrus"
)

var errUnexpectedCommand = errors.New("unexpected command")

// Default parameters of a Network.
const (
	DefaultNodes      = 3
	DefaultMaxPool    = 2
	DefaultTCPTimeout = 10 * time.Second
)

// Config describes a simulated network.
type Config struct {
	// Nodes is the number of nodes, with accounts 0.0.3, 0.0.4...
	Nodes int

	// BindAddrs switches the network to TCP, one listening address per
	// node. Port 0 picks a free port. When empty the nodes use inmem
	// transports.
	BindAddrs []string

	// ConsensusDelay is how long receipts stay UNKNOWN.
	ConsensusDelay time.Duration

	Logger *logrus.Entry
}

// Network is a set of simulated nodes sharing one Ledger.
type Network struct {
	nodes  []*Node
	ledger *Ledger
	inmem  map[string]*net.InmemTransport
	tcp    bool
	logger *logrus.Entry
}

// NewNetwork creates the nodes of conf and starts them.
func NewNetwork(conf Config) (*Network, error) {
	if conf.Nodes <= 0 {
		conf.Nodes = len(conf.BindAddrs)
	}
	if conf.Nodes <= 0 {
		conf.Nodes = DefaultNodes
	}
	if len(conf.BindAddrs) > 0 && len(conf.BindAddrs) != conf.Nodes {
		return nil, fmt.Errorf("%d bind addresses for %d nodes", len(conf.BindAddrs), conf.Nodes)
	}

	logger := conf.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
	logger = logger.WithField("prefix", "mocknet")

	n := &Network{
		ledger: NewLedger(conf.ConsensusDelay),
		inmem:  make(map[string]*net.InmemTransport),
		tcp:    len(conf.BindAddrs) > 0,
		logger: logger,
	}

	for i := 0; i < conf.Nodes; i++ {
		id := ledger.NewAccountID(uint64(3 + i))

		var trans net.Transport
		if n.tcp {
			t, err := net.NewTCPTransport(conf.BindAddrs[i], "", DefaultMaxPool, DefaultTCPTimeout,
				logger.WithFields(logrus.Fields{"node": id.String(), "component": "transport"}))
			if err != nil {
				n.Close()
				return nil, fmt.Errorf("node %s: %w", id, err)
			}
			trans = t
		} else {
			addr, t := net.NewInmemTransport("")
			n.inmem[addr] = t
			trans = t
		}

		// nodes receive query payments
		n.ledger.Fund(id, 0)

		node := NewNode(id, trans, n.ledger, logger)
		node.RunAsync()
		n.nodes = append(n.nodes, node)
	}

	logger.WithFields(logrus.Fields{
		"nodes": conf.Nodes,
		"tcp":   n.tcp,
	}).Info("Network started")

	return n, nil
}

// Addresses returns the address -> node account mapping clients connect
// with.
func (n *Network) Addresses() map[string]ledger.AccountID {
	res := make(map[string]ledger.AccountID, len(n.nodes))
	for _, node := range n.nodes {
		res[node.Addr()] = node.ID()
	}
	return res
}

// Nodes returns the nodes, in account order.
func (n *Network) Nodes() []*Node {
	return append([]*Node(nil), n.nodes...)
}

// Node returns the node of an account.
func (n *Network) Node(id ledger.AccountID) (*Node, bool) {
	for _, node := range n.nodes {
		if node.ID() == id {
			return node, true
		}
	}
	return nil, false
}

// Ledger returns the state shared by the nodes.
func (n *Network) Ledger() *Ledger {
	return n.ledger
}

// ClientTransport returns a transport reaching every node: an inmem
// transport connected to the inmem nodes, or a TCP client transport.
func (n *Network) ClientTransport() net.Transport {
	if n.tcp {
		return net.NewTCPClientTransport(DefaultMaxPool, DefaultTCPTimeout, n.logger.WithField("component", "client-transport"))
	}
	_, trans := net.NewInmemTransport("")
	for addr, t := range n.inmem {
		trans.Connect(addr, t)
	}
	return trans
}

// Close shuts every node down.
func (n *Network) Close() error {
	for _, node := range n.nodes {
		node.Shutdown()
	}
	return nil
}
