package client

import (
	"errors"

	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
)

var (
	// ErrMissingOperator is returned when an operation needs the operator to
	// pay or sign and none is set.
	ErrMissingOperator = errors.New("client has no operator")

	// ErrClientClosed is returned when work is submitted to a closed client.
	ErrClientClosed = errors.New("client closed")

	// ErrCloseTimeout is returned by Close when asynchronous work is still
	// running after the close timeout.
	ErrCloseTimeout = errors.New("timed out waiting for pending executions")

	// ErrNegativeAmount is returned when setting a negative fee or payment.
	ErrNegativeAmount = ledger.ErrNegativeAmount
)
