package net

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
)

// DefaultInmemTimeout bounds in-memory round trips whose context carries no
// deadline.
const DefaultInmemTimeout = 500 * time.Millisecond

// NewInmemAddr returns a new in-memory addr with a randomly generated UUID as
// the ID.
func NewInmemAddr() string {
	return uuid.New().String()
}

// InmemTransport Implements the Transport interface, to allow the SDK to be
// tested in-memory without going over a network.
type InmemTransport struct {
	sync.RWMutex
	consumerCh chan RPC
	localAddr  string
	peers      map[string]*InmemTransport
	timeout    time.Duration
	shutdownCh chan struct{}
	shutdown   bool
}

// NewInmemTransport is used to initialize a new transport
// and generates a random local address if none is specified
func NewInmemTransport(addr string) (string, *InmemTransport) {
	if addr == "" {
		addr = NewInmemAddr()
	}
	trans := &InmemTransport{
		consumerCh: make(chan RPC, 16),
		localAddr:  addr,
		peers:      make(map[string]*InmemTransport),
		timeout:    DefaultInmemTimeout,
		shutdownCh: make(chan struct{}),
	}
	return addr, trans
}

// Consumer implements the Transport interface.
func (i *InmemTransport) Consumer() <-chan RPC {
	return i.consumerCh
}

// LocalAddr implements the Transport interface.
func (i *InmemTransport) LocalAddr() string {
	return i.localAddr
}

// AdvertiseAddr implements the Transport interface.
func (i *InmemTransport) AdvertiseAddr() string {
	return i.localAddr
}

// SubmitTransaction implements the Transport interface.
func (i *InmemTransport) SubmitTransaction(ctx context.Context, target string, args *wire.Transaction, resp *wire.TransactionResponse) error {
	rpcResp, err := i.makeRPC(ctx, target, args)
	if err != nil {
		return err
	}

	// Copy the result back
	return copyTransactionResponse(rpcResp.Response, resp)
}

// Query implements the Transport interface.
func (i *InmemTransport) Query(ctx context.Context, target string, args *wire.Query, resp *wire.Response) error {
	rpcResp, err := i.makeRPC(ctx, target, args)
	if err != nil {
		return err
	}

	// Copy the result back
	return copyQueryResponse(rpcResp.Response, resp)
}

func (i *InmemTransport) makeRPC(ctx context.Context, target string, args interface{}) (rpcResp RPCResponse, err error) {
	i.RLock()
	peer, ok := i.peers[target]
	i.RUnlock()

	if !ok {
		err = fmt.Errorf("%w: %v", ErrPeerUnreachable, target)
		return
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	// Send the RPC over
	respCh := make(chan RPCResponse, 1)
	rpc := RPC{
		ID:       uuid.New().String(),
		Command:  args,
		RespChan: respCh,
	}

	select {
	case peer.consumerCh <- rpc:
	case <-peer.shutdownCh:
		err = ErrTransportShutdown
		return
	case <-ctx.Done():
		err = ctx.Err()
		return
	}

	// Wait for a response
	select {
	case rpcResp = <-respCh:
		if rpcResp.Error != nil {
			err = rpcResp.Error
		}
	case <-ctx.Done():
		err = ctx.Err()
	}
	return
}

// Connect is used to connect this transport to another transport for
// a given peer name. This allows for local routing.
func (i *InmemTransport) Connect(peer string, t Transport) {
	trans := t.(*InmemTransport)
	i.Lock()
	defer i.Unlock()
	i.peers[peer] = trans
}

// Disconnect is used to remove the ability to route to a given peer.
func (i *InmemTransport) Disconnect(peer string) {
	i.Lock()
	defer i.Unlock()
	delete(i.peers, peer)
}

// DisconnectAll is used to remove all routes to peers.
func (i *InmemTransport) DisconnectAll() {
	i.Lock()
	defer i.Unlock()
	i.peers = make(map[string]*InmemTransport)
}

// Close is used to permanently disable the transport
func (i *InmemTransport) Close() error {
	i.DisconnectAll()

	i.Lock()
	defer i.Unlock()
	if !i.shutdown {
		close(i.shutdownCh)
		i.shutdown = true
	}
	return nil
}

// Listen is an empty function as there is no need to defer
// initialisation of the InMem service
func (i *InmemTransport) Listen() {
}
