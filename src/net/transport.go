package net

import (
	"context"

	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
)

//go:generate mockgen -source=transport.go -destination=mock_transport.go -package=net

// Transport provides an interface for network transports to allow a client
// to exchange requests with network nodes.
type Transport interface {

	// Starts the transport listening
	Listen()

	// Consumer returns a channel that can be used to
	// consume and respond to RPC requests.
	Consumer() <-chan RPC

	// LocalAddr is used to return our local address
	LocalAddr() string

	// AdvertiseAddr is used to return our advertise address where clients
	// can reach us
	AdvertiseAddr() string

	// SubmitTransaction and Query send the corresponding RPC to the target
	// node. The context deadline bounds the whole round trip.

	SubmitTransaction(ctx context.Context, target string, args *wire.Transaction, resp *wire.TransactionResponse) error

	Query(ctx context.Context, target string, args *wire.Query, resp *wire.Response) error

	// Close permanently closes a transport, stopping
	// any associated goroutines and freeing other resources.
	Close() error
}
