package execution

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/mosaicnetworks/hashgraph-sdk/src/common"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/net"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type testEnv struct {
	trans     net.Transport
	addrs     map[ledger.AccountID]string
	policy    RetryPolicy
	timeout   time.Duration
	logger    *logrus.Entry
	unhealthy []ledger.AccountID
	sleeps    []time.Duration
}

func newTestEnv(t *testing.T, trans net.Transport, n int) *testEnv {
	env := &testEnv{
		trans:   trans,
		addrs:   make(map[ledger.AccountID]string),
		timeout: time.Second,
		logger:  common.NewTestEntry(t, common.TestLogLevel),
	}
	for i := 0; i < n; i++ {
		env.addrs[ledger.NewAccountID(uint64(3+i))] = fmt.Sprintf("node%d", 3+i)
	}
	env.policy = DefaultRetryPolicy()
	env.policy.Sleep = func(ctx context.Context, d time.Duration) error {
		env.sleeps = append(env.sleeps, d)
		return nil
	}
	return env
}

func (e *testEnv) Transport() net.Transport      { return e.trans }
func (e *testEnv) RequestTimeout() time.Duration { return e.timeout }
func (e *testEnv) RetryPolicy() RetryPolicy      { return e.policy }
func (e *testEnv) Logger() *logrus.Entry         { return e.logger }
func (e *testEnv) Wait(ctx context.Context) error {
	return ctx.Err()
}
func (e *testEnv) MarkUnhealthy(node ledger.AccountID) {
	e.unhealthy = append(e.unhealthy, node)
}
func (e *testEnv) AddressOf(node ledger.AccountID) (string, error) {
	addr, ok := e.addrs[node]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownNode, node)
	}
	return addr, nil
}

// testOp is a query-like operation cycling over a fixed list of nodes.
type testOp struct {
	nodes      []ledger.AccountID
	cursor     int
	onExecErr  error
	requestErr error
	targeted   []ledger.AccountID
}

func newTestOp(nodes ...uint64) *testOp {
	op := &testOp{}
	for _, n := range nodes {
		op.nodes = append(op.nodes, ledger.NewAccountID(n))
	}
	return op
}

func (o *testOp) OnExecute(ctx context.Context, env Environment) error {
	return o.onExecErr
}

func (o *testOp) NodeAccountID() ledger.AccountID {
	return o.nodes[o.cursor]
}

func (o *testOp) MakeRequest() (*wire.Query, error) {
	if o.requestErr != nil {
		return nil, o.requestErr
	}
	o.targeted = append(o.targeted, o.nodes[o.cursor])
	return &wire.Query{Kind: wire.QueryAccountBalance}, nil
}

func (o *testOp) Submit(ctx context.Context, trans net.Transport, addr string, req *wire.Query) (*wire.Response, error) {
	resp := new(wire.Response)
	if err := trans.Query(ctx, addr, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (o *testOp) Status(resp *wire.Response) ledger.Status {
	return resp.Header.Precheck
}

func (o *testOp) MapResponse(resp *wire.Response, node ledger.AccountID, req *wire.Query) (ledger.AccountID, error) {
	return node, nil
}

func (o *testOp) Advance() {
	o.cursor = (o.cursor + 1) % len(o.nodes)
}

func (o *testOp) OperationName() string {
	return "TestOp"
}

func answer(status ledger.Status) func(context.Context, string, *wire.Query, *wire.Response) error {
	return func(_ context.Context, _ string, _ *wire.Query, resp *wire.Response) error {
		resp.Header.Precheck = status
		return nil
	}
}

func TestExecuteRetriesOnDistinctNodes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trans := net.NewMockTransport(ctrl)
	env := newTestEnv(t, trans, 4)
	op := newTestOp(3, 4, 5, 6)

	// K = 3 retryable answers then success
	gomock.InOrder(
		trans.EXPECT().Query(gomock.Any(), "node3", gomock.Any(), gomock.Any()).DoAndReturn(answer(ledger.StatusBusy)),
		trans.EXPECT().Query(gomock.Any(), "node4", gomock.Any(), gomock.Any()).DoAndReturn(answer(ledger.StatusPlatformNotActive)),
		trans.EXPECT().Query(gomock.Any(), "node5", gomock.Any(), gomock.Any()).DoAndReturn(answer(ledger.StatusUnknown)),
		trans.EXPECT().Query(gomock.Any(), "node6", gomock.Any(), gomock.Any()).DoAndReturn(answer(ledger.StatusOK)),
	)

	node, err := Execute[*wire.Query, *wire.Response, ledger.AccountID](context.Background(), env, op)
	require.NoError(t, err)
	assert.Equal(t, ledger.NewAccountID(6), node)
	assert.Equal(t, op.nodes, op.targeted)
	// fresh nodes are tried without waiting
	assert.Empty(t, env.sleeps)
	assert.Equal(t, 3, op.cursor)
}

func TestExecuteFatalStops(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trans := net.NewMockTransport(ctrl)
	env := newTestEnv(t, trans, 3)
	op := newTestOp(3, 4, 5)

	trans.EXPECT().Query(gomock.Any(), "node3", gomock.Any(), gomock.Any()).
		DoAndReturn(answer(ledger.StatusInvalidSignature)).Times(1)

	_, err := Execute[*wire.Query, *wire.Response, ledger.AccountID](context.Background(), env, op)
	require.Error(t, err)

	var precheck *PrecheckError
	require.True(t, errors.As(err, &precheck))
	assert.Equal(t, ledger.StatusInvalidSignature, precheck.Status)
	assert.Equal(t, ledger.NewAccountID(3), precheck.NodeID)
	assert.Equal(t, "precheck failed on node 0.0.3 with status INVALID_SIGNATURE", err.Error())
	assert.Len(t, op.targeted, 1)
}

func TestExecuteAttemptTimeoutRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trans := net.NewMockTransport(ctrl)
	env := newTestEnv(t, trans, 2)
	env.timeout = 20 * time.Millisecond
	op := newTestOp(3, 4)

	gomock.InOrder(
		trans.EXPECT().Query(gomock.Any(), "node3", gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, _ string, _ *wire.Query, _ *wire.Response) error {
				<-ctx.Done()
				return ctx.Err()
			}),
		trans.EXPECT().Query(gomock.Any(), "node4", gomock.Any(), gomock.Any()).DoAndReturn(answer(ledger.StatusOK)),
	)

	node, err := Execute[*wire.Query, *wire.Response, ledger.AccountID](context.Background(), env, op)
	require.NoError(t, err)
	assert.Equal(t, ledger.NewAccountID(4), node)
	assert.Equal(t, []ledger.AccountID{ledger.NewAccountID(3)}, env.unhealthy)
}

func TestExecuteParentCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trans := net.NewMockTransport(ctrl)
	env := newTestEnv(t, trans, 2)
	op := newTestOp(3, 4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	trans.EXPECT().Query(gomock.Any(), "node3", gomock.Any(), gomock.Any()).DoAndReturn(
		func(actx context.Context, _ string, _ *wire.Query, _ *wire.Response) error {
			cancel()
			<-actx.Done()
			return actx.Err()
		}).Times(1)

	_, err := Execute[*wire.Query, *wire.Response, ledger.AccountID](ctx, env, op)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, env.unhealthy)
}

func TestExecuteExhaustion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trans := net.NewMockTransport(ctrl)
	env := newTestEnv(t, trans, 2)
	env.policy.MaxAttempts = 4
	op := newTestOp(3, 4)

	trans.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(answer(ledger.StatusBusy)).Times(4)

	_, err := Execute[*wire.Query, *wire.Response, ledger.AccountID](context.Background(), env, op)

	var maxErr *MaxAttemptsError
	require.True(t, errors.As(err, &maxErr))
	assert.Equal(t, 4, maxErr.Attempts)

	var precheck *PrecheckError
	require.True(t, errors.As(err, &precheck))
	assert.Equal(t, ledger.StatusBusy, precheck.Status)
	assert.Equal(t, ledger.NewAccountID(4), precheck.NodeID)

	// attempts 3 and 4 hit nodes already seen once
	assert.Equal(t, []time.Duration{DefaultMinBackoff, DefaultMinBackoff}, env.sleeps)
}

func TestExecuteBackoffSameNode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trans := net.NewMockTransport(ctrl)
	env := newTestEnv(t, trans, 1)
	op := newTestOp(3)

	gomock.InOrder(
		trans.EXPECT().Query(gomock.Any(), "node3", gomock.Any(), gomock.Any()).DoAndReturn(answer(ledger.StatusBusy)),
		trans.EXPECT().Query(gomock.Any(), "node3", gomock.Any(), gomock.Any()).DoAndReturn(answer(ledger.StatusBusy)),
		trans.EXPECT().Query(gomock.Any(), "node3", gomock.Any(), gomock.Any()).DoAndReturn(answer(ledger.StatusBusy)),
		trans.EXPECT().Query(gomock.Any(), "node3", gomock.Any(), gomock.Any()).DoAndReturn(answer(ledger.StatusOK)),
	)

	_, err := Execute[*wire.Query, *wire.Response, ledger.AccountID](context.Background(), env, op)
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{
		DefaultMinBackoff,
		2 * DefaultMinBackoff,
		4 * DefaultMinBackoff,
	}, env.sleeps)
}

func TestExecuteOnExecuteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trans := net.NewMockTransport(ctrl)
	env := newTestEnv(t, trans, 1)
	op := newTestOp(3)
	op.onExecErr = errors.New("no payment")

	_, err := Execute[*wire.Query, *wire.Response, ledger.AccountID](context.Background(), env, op)
	assert.Equal(t, op.onExecErr, err)
}

func TestExecuteUnknownNode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trans := net.NewMockTransport(ctrl)
	env := newTestEnv(t, trans, 1)
	op := newTestOp(99)

	_, err := Execute[*wire.Query, *wire.Response, ledger.AccountID](context.Background(), env, op)
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestExecuteRequestError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trans := net.NewMockTransport(ctrl)
	env := newTestEnv(t, trans, 1)
	op := newTestOp(3)
	op.requestErr = errors.New("cannot build")

	_, err := Execute[*wire.Query, *wire.Response, ledger.AccountID](context.Background(), env, op)
	assert.Equal(t, op.requestErr, err)
}

func TestBackoff(t *testing.T) {
	p := DefaultRetryPolicy()

	expected := []time.Duration{
		250 * time.Millisecond,
		500 * time.Millisecond,
		time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		8 * time.Second,
	}
	for i, e := range expected {
		if got := p.Backoff(i + 1); got != e {
			t.Fatalf("Backoff(%d) should be %v, not %v", i+1, e, got)
		}
	}
}

func TestRetryable(t *testing.T) {
	p := DefaultRetryPolicy()
	assert.True(t, p.IsRetryable(ledger.StatusBusy))
	assert.False(t, p.IsRetryable(ledger.StatusInvalidSignature))

	p.Retryable = []ledger.Status{ledger.StatusInsufficientTxFee}
	assert.True(t, p.IsRetryable(ledger.StatusInsufficientTxFee))
	assert.False(t, p.IsRetryable(ledger.StatusBusy))
}
