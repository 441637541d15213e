package net

import (
	"errors"
	"fmt"

	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
)

// Types of RPC, as written in the first byte of a framed request.
const (
	rpcSubmitTransaction uint8 = iota
	rpcQuery
)

var (
	// ErrTransportShutdown is returned when operations on a transport are
	// invoked after it's been terminated.
	ErrTransportShutdown = errors.New("transport shutdown")

	// ErrPeerUnreachable is returned when no connection can be established
	// with the target.
	ErrPeerUnreachable = errors.New("peer unreachable")
)

// copyTransactionResponse copies a node's answer into the caller's value.
func copyTransactionResponse(from interface{}, resp *wire.TransactionResponse) error {
	out, ok := from.(*wire.TransactionResponse)
	if !ok || out == nil {
		return fmt.Errorf("unexpected response type %T", from)
	}
	*resp = *out
	return nil
}

func copyQueryResponse(from interface{}, resp *wire.Response) error {
	out, ok := from.(*wire.Response)
	if !ok || out == nil {
		return fmt.Errorf("unexpected response type %T", from)
	}
	*resp = *out
	return nil
}
