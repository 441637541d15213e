// Package net implements the transports used to exchange requests with
// network nodes.
//
// A client sends two kinds of RPC: SubmitTransaction, carrying a signed
// wire.Transaction and answered by a wire.TransactionResponse, and Query,
// carrying a wire.Query and answered by a wire.Response. Every call takes a
// context.Context whose deadline bounds the round trip.
//
// The node side of the same Transport exposes incoming requests on the
// Consumer channel, which is how the local network simulator of the mocknet
// package serves them. There are two implementations:
//
// - Inmem: in-memory transport used for tests and simulations
//
// - TCP: communicating over plain TCP, with requests framed by a type byte
// and encoded with the wire codec
//
// TCP
//
// A client that only sends requests uses NewTCPClientTransport, which never
// listens. A node binds a listening socket with NewTCPTransport:
//
// - bindAddr: the IP:PORT of the TCP socket to bind to.
//
// - advertise: (optional) the address advertised to others. If bindAddr is a
// local address not reachable by clients, set it to the reachable public
// address.
package net
