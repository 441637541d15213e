package net

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
	"github.com/sirupsen/logrus"
	"github.com/ugorji/go/codec"
)

const (
	bufSize = 64 * 1024
)

/*
NetworkTransport provides a network based transport that can be used to
communicate with nodes on remote machines. It requires an underlying stream
layer to provide a stream abstraction, which can be simple TCP, TLS, etc.

Each RPC request is framed by sending a byte that indicates the message type,
followed by the encoded request. The response is an error string followed by
the response object. Both use the wire codec.
*/
type NetworkTransport struct {
	logger *logrus.Entry

	connPool     map[string][]*netConn
	connPoolLock sync.Mutex
	maxPool      int

	consumeCh chan RPC

	shutdown     bool
	shutdownCh   chan struct{}
	shutdownLock sync.Mutex

	stream StreamLayer

	timeout time.Duration
}

type netConn struct {
	target string
	conn   net.Conn
	r      *bufio.Reader
	w      *bufio.Writer
	dec    *codec.Decoder
	enc    *codec.Encoder
}

// Release closes the underlying connection
func (n *netConn) Release() error {
	return n.conn.Close()
}

// NewNetworkTransport creates a new network transport with the given stream
// layer. The maxPool controls how many connections we will pool (per target).
// The timeout is used to apply I/O deadlines when the caller's context has no
// earlier one.
func NewNetworkTransport(
	stream StreamLayer,
	maxPool int,
	timeout time.Duration,
	logger *logrus.Entry,
) *NetworkTransport {

	if logger == nil {
		log := logrus.New()
		log.Level = logrus.DebugLevel
		logger = logrus.NewEntry(log)
	}

	trans := &NetworkTransport{
		connPool:   make(map[string][]*netConn),
		consumeCh:  make(chan RPC),
		logger:     logger,
		maxPool:    maxPool,
		shutdownCh: make(chan struct{}),
		stream:     stream,
		timeout:    timeout,
	}

	return trans
}

// Close is used to stop the network transport. Pooled connections are
// released.
func (n *NetworkTransport) Close() error {
	n.shutdownLock.Lock()
	defer n.shutdownLock.Unlock()

	if !n.shutdown {
		close(n.shutdownCh)
		n.stream.Close()
		n.shutdown = true

		n.connPoolLock.Lock()
		for target, conns := range n.connPool {
			for _, c := range conns {
				c.Release()
			}
			delete(n.connPool, target)
		}
		n.connPoolLock.Unlock()
	}
	return nil
}

// Consumer implements the Transport interface.
func (n *NetworkTransport) Consumer() <-chan RPC {
	return n.consumeCh
}

// LocalAddr implements the Transport interface.
func (n *NetworkTransport) LocalAddr() string {
	addr := n.stream.Addr()

	if addr != nil {
		return addr.String()
	}

	return ""
}

// AdvertiseAddr implements the Transport interface.
func (n *NetworkTransport) AdvertiseAddr() string {
	return n.stream.AdvertiseAddr()
}

// IsShutdown is used to check if the transport is shutdown.
func (n *NetworkTransport) IsShutdown() bool {
	select {
	case <-n.shutdownCh:
		return true
	default:
		return false
	}
}

// getPooledConn is used to grab a pooled connection.
func (n *NetworkTransport) getPooledConn(target string) *netConn {
	n.connPoolLock.Lock()
	defer n.connPoolLock.Unlock()

	conns, ok := n.connPool[target]
	if !ok || len(conns) == 0 {
		return nil
	}

	var conn *netConn
	num := len(conns)
	conn, conns[num-1] = conns[num-1], nil
	n.connPool[target] = conns[:num-1]
	return conn
}

// getConn is used to get a connection from the pool.
func (n *NetworkTransport) getConn(target string, timeout time.Duration) (*netConn, error) {
	// Check for a pooled conn
	if conn := n.getPooledConn(target); conn != nil {
		return conn, nil
	}

	// Dial a new connection
	conn, err := n.stream.Dial(target, timeout)
	if err != nil {
		return nil, err
	}

	// Wrap the conn
	netConn := &netConn{
		target: target,
		conn:   conn,
		r:      bufio.NewReaderSize(conn, bufSize),
		w:      bufio.NewWriterSize(conn, bufSize),
	}
	// Setup encoder/decoders
	netConn.dec = codec.NewDecoder(netConn.r, wire.Handle())
	netConn.enc = codec.NewEncoder(netConn.w, wire.Handle())

	// Done
	return netConn, nil
}

// returnConn returns a connection back to the pool.
func (n *NetworkTransport) returnConn(conn *netConn) {
	n.connPoolLock.Lock()
	defer n.connPoolLock.Unlock()

	key := conn.target
	conns := n.connPool[key]

	if !n.IsShutdown() && len(conns) < n.maxPool {
		n.connPool[key] = append(conns, conn)
	} else {
		conn.Release()
	}
}

// SubmitTransaction implements the Transport interface.
func (n *NetworkTransport) SubmitTransaction(ctx context.Context, target string, args *wire.Transaction, resp *wire.TransactionResponse) error {
	return n.genericRPC(ctx, target, rpcSubmitTransaction, args, resp)
}

// Query implements the Transport interface.
func (n *NetworkTransport) Query(ctx context.Context, target string, args *wire.Query, resp *wire.Response) error {
	return n.genericRPC(ctx, target, rpcQuery, args, resp)
}

// deadline returns the earliest of the context deadline and the transport
// timeout.
func (n *NetworkTransport) deadline(ctx context.Context) (time.Time, bool) {
	d, ok := ctx.Deadline()
	if n.timeout > 0 {
		t := time.Now().Add(n.timeout)
		if !ok || t.Before(d) {
			return t, true
		}
	}
	return d, ok
}

// genericRPC handles a simple request/response RPC.
func (n *NetworkTransport) genericRPC(ctx context.Context, target string, rpcType uint8, args interface{}, resp interface{}) error {
	if err := contextErr(ctx); err != nil {
		return err
	}

	deadline, hasDeadline := n.deadline(ctx)

	dialTimeout := n.timeout
	if hasDeadline {
		dialTimeout = time.Until(deadline)
	}

	// Get a conn
	conn, err := n.getConn(target, dialTimeout)
	if err != nil {
		if cerr := contextErr(ctx); cerr != nil {
			return cerr
		}
		return err
	}

	// Set a deadline
	if hasDeadline {
		conn.conn.SetDeadline(deadline)
	} else {
		conn.conn.SetDeadline(time.Time{})
	}

	// Unblock pending I/O if the context is cancelled
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.conn.SetDeadline(time.Now())
		case <-stop:
		}
	}()

	// Send the RPC
	if err = sendRPC(conn, rpcType, args); err != nil {
		if cerr := contextErr(ctx); cerr != nil {
			return cerr
		}
		return err
	}

	// Decode the response
	canReturn, err := decodeResponse(conn, resp)
	cerr := contextErr(ctx)
	if canReturn && cerr == nil {
		n.returnConn(conn)
	} else if canReturn {
		conn.Release()
	}

	if err != nil && cerr != nil {
		return cerr
	}
	return err
}

// contextErr is ctx.Err, also reporting an expired deadline whose timer has
// not fired yet.
func contextErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d, ok := ctx.Deadline(); ok && !time.Now().Before(d) {
		return context.DeadlineExceeded
	}
	return nil
}

// sendRPC is used to encode and send the RPC.
func sendRPC(conn *netConn, rpcType uint8, args interface{}) error {
	// Write the request type
	if err := conn.w.WriteByte(rpcType); err != nil {
		conn.Release()
		return err
	}

	// Send the request
	if err := conn.enc.Encode(args); err != nil {
		conn.Release()
		return err
	}

	// Flush
	if err := conn.w.Flush(); err != nil {
		conn.Release()
		return err
	}
	return nil
}

// decodeResponse is used to decode an RPC response and reports whether
// the connection can be reused.
func decodeResponse(conn *netConn, resp interface{}) (bool, error) {
	// Decode the error if any
	var rpcError string
	if err := conn.dec.Decode(&rpcError); err != nil {
		conn.Release()
		return false, err
	}

	// Decode the response
	if err := conn.dec.Decode(resp); err != nil {
		conn.Release()
		return false, err
	}

	// Format an error if any
	if rpcError != "" {
		return true, errors.New(rpcError)
	}
	return true, nil
}

// Listen opens the stream and handles incoming connections.
func (n *NetworkTransport) Listen() {
	for {
		// Accept incoming connections
		conn, err := n.stream.Accept()
		if err != nil {
			if n.IsShutdown() {
				return
			}
			n.logger.WithField("error", err).Error("Failed to accept connection")
			continue
		}
		n.logger.WithFields(logrus.Fields{
			"node": conn.LocalAddr(),
			"from": conn.RemoteAddr(),
		}).Debug("accepted connection")

		// Handle the connection in dedicated routine
		go n.handleConn(conn)
	}
}

// handleConn is used to handle an inbound connection for its lifespan.
func (n *NetworkTransport) handleConn(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReaderSize(conn, bufSize)
	w := bufio.NewWriterSize(conn, bufSize)
	dec := codec.NewDecoder(r, wire.Handle())
	enc := codec.NewEncoder(w, wire.Handle())

	for {
		if err := n.handleCommand(r, dec, enc); err != nil {
			switch {
			case err == ErrTransportShutdown:
				n.logger.WithField("error", err).Warn("Failed to decode incoming command")
			case err == io.EOF, errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
			default:
				n.logger.WithField("error", err).Error("Failed to decode incoming command")
			}
			return
		}
		if err := w.Flush(); err != nil {
			n.logger.WithField("error", err).Error("Failed to flush response")
			return
		}
	}
}

// handleCommand is used to decode and dispatch a single command.
func (n *NetworkTransport) handleCommand(r *bufio.Reader, dec *codec.Decoder, enc *codec.Encoder) error {
	// Get the rpc type
	rpcType, err := r.ReadByte()
	if err != nil {
		return err
	}

	// Create the RPC object
	respCh := make(chan RPCResponse, 1)
	rpc := RPC{
		ID:       uuid.New().String(),
		RespChan: respCh,
	}

	// Decode the command
	switch rpcType {
	case rpcSubmitTransaction:
		var req wire.Transaction
		if err := dec.Decode(&req); err != nil {
			return err
		}
		rpc.Command = &req
	case rpcQuery:
		var req wire.Query
		if err := dec.Decode(&req); err != nil {
			return err
		}
		rpc.Command = &req
	default:
		return fmt.Errorf("unknown rpc type %d", rpcType)
	}

	// Dispatch the RPC
	select {
	case n.consumeCh <- rpc:
	case <-n.shutdownCh:
		return ErrTransportShutdown
	}

	// Wait for response
	select {
	case resp := <-respCh:
		// Send the error first
		respErr := ""
		if resp.Error != nil {
			respErr = resp.Error.Error()
		}
		if err := enc.Encode(respErr); err != nil {
			return err
		}

		// Send the response
		if err := enc.Encode(resp.Response); err != nil {
			return err
		}
	case <-n.shutdownCh:
		return ErrTransportShutdown
	}

	return nil
}
