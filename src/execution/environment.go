package execution

import (
	"context"
	"time"

	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/net"
	"github.com/sirupsen/logrus"
)

// Environment is what an execution needs from the client running it.
type Environment interface {
	Transport() net.Transport

	// AddressOf resolves a node account to the address of the node.
	AddressOf(node ledger.AccountID) (string, error)

	RequestTimeout() time.Duration
	RetryPolicy() RetryPolicy
	Logger() *logrus.Entry

	// Wait blocks until the rate limiter allows another attempt.
	Wait(ctx context.Context) error

	// MarkUnhealthy reports a transport-level failure of a node so that node
	// selection passes over it for a while.
	MarkUnhealthy(node ledger.AccountID)
}

// Executable is an operation the engine can run. Req is the request sent to
// a node, Resp its answer, and Out the result handed to the caller.
type Executable[Req, Resp, Out any] interface {
	// OnExecute runs once before the first attempt. It may run other
	// executions, as queries do to learn their cost.
	OnExecute(ctx context.Context, env Environment) error

	// NodeAccountID is the node targeted by the next attempt.
	NodeAccountID() ledger.AccountID

	// MakeRequest builds the request bound to the targeted node.
	MakeRequest() (Req, error)

	Submit(ctx context.Context, trans net.Transport, addr string, req Req) (Resp, error)

	// Status extracts the precheck status of a response.
	Status(resp Resp) ledger.Status

	MapResponse(resp Resp, node ledger.AccountID, req Req) (Out, error)

	// Advance moves to the next node and request variant.
	Advance()
}

// named is implemented by operations that want their own metrics label.
type named interface {
	OperationName() string
}

// identified is implemented by operations carrying a transaction id, which is
// then reported in precheck errors.
type identified interface {
	TransactionID() ledger.TransactionID
}
