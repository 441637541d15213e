// Package mocknet simulates a network of nodes for tests and local
// development.
//
// A Network starts K nodes on inmem or TCP transports. Every node checks the
// transactions it receives the way a real node prechecks them (bound node,
// signatures, duplicates) and applies the accepted ones to a shared Ledger,
// from which queries are answered. Statuses such as BUSY can be scripted per
// node to exercise the retry behaviour of clients.
//
//	network, _ := mocknet.NewNetwork(mocknet.Config{Nodes: 3})
//	defer network.Close()
//	network.Ledger().Fund(operator, 100*ledger.Hbar)
//
//	c := client.New(network.Addresses(), network.ClientTransport(), logger)
package mocknet
