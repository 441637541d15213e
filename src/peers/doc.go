// Package peers defines the network nodes an SDK client talks to and
// implements the node directory used to pick them.
//
// A node is identified by the ledger account that receives the fees paid to
// it, and is reached at a network address. A PeerSet is an immutable
// collection of nodes. A Directory wraps a PeerSet with the state needed to
// select nodes: a shuffled, infinitely cycling order, and a short-lived record
// of the nodes that recently failed.
//
// A node set can be read from a JSON file of the form:
//
//	[
//	  {"NetAddr": "127.0.0.1:50211", "AccountID": "0.0.3"},
//	  {"NetAddr": "127.0.0.1:50212", "AccountID": "0.0.4"}
//	]
package peers
