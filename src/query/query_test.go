package query

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/mosaicnetworks/hashgraph-sdk/src/client"
	"github.com/mosaicnetworks/hashgraph-sdk/src/common"
	"github.com/mosaicnetworks/hashgraph-sdk/src/crypto/keys"
	"github.com/mosaicnetworks/hashgraph-sdk/src/execution"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/net"
	"github.com/mosaicnetworks/hashgraph-sdk/src/transaction"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var operatorID = ledger.NewAccountID(1001)

func nodeAddr(id ledger.AccountID) string {
	return fmt.Sprintf("node-%s", id)
}

func newTestClient(t *testing.T, trans net.Transport, n int, withOperator bool) *client.Client {
	network := make(map[string]ledger.AccountID)
	for i := 0; i < n; i++ {
		id := ledger.NewAccountID(uint64(3 + i))
		network[nodeAddr(id)] = id
	}

	c := client.New(network, trans, common.NewTestEntry(t, common.TestLogLevel))
	c.SetRequestTimeout(time.Second)
	c.SetRetryPolicy(execution.RetryPolicy{
		Sleep: func(ctx context.Context, d time.Duration) error { return nil },
	})
	if withOperator {
		key, err := keys.GenerateEd25519Key()
		require.NoError(t, err)
		c.SetOperator(operatorID, key)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func newMockTransport(t *testing.T) *net.MockTransport {
	ctrl := gomock.NewController(t)
	trans := net.NewMockTransport(ctrl)
	trans.EXPECT().Close().Return(nil).AnyTimes()
	return trans
}

func answer(t *testing.T, resp *wire.Response, kind wire.QueryKind, status ledger.Status, v interface{}) {
	resp.Header.Precheck = status
	resp.Header.ResponseType = wire.AnswerOnly
	resp.Kind = kind
	if v != nil {
		data, err := wire.Marshal(v)
		require.NoError(t, err)
		resp.Data = data
	}
}

func quote(resp *wire.Response, kind wire.QueryKind, cost ledger.Amount) {
	resp.Header.Precheck = ledger.StatusOK
	resp.Header.ResponseType = wire.CostAnswer
	resp.Header.Cost = uint64(cost)
	resp.Kind = kind
}

func TestFreeQuery(t *testing.T) {
	trans := newMockTransport(t)
	c := newTestClient(t, trans, 3, false)
	alice := ledger.NewAccountID(1002)

	trans.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, target string, args *wire.Query, resp *wire.Response) error {
			assert.Equal(t, wire.AnswerOnly, args.Header.ResponseType)
			assert.Nil(t, args.Header.Payment)

			var q wire.AccountBalanceQuery
			require.NoError(t, wire.Unmarshal(args.Data, &q))
			assert.Equal(t, alice, q.AccountID)

			answer(t, resp, wire.QueryAccountBalance, ledger.StatusOK, &wire.AccountBalanceResponse{
				AccountID: alice,
				Balance:   42 * ledger.Hbar,
			})
			return nil
		})

	q := NewAccountBalanceQuery().SetAccountID(alice)
	assert.False(t, q.IsPaymentRequired())

	balance, err := q.Execute(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, 42*ledger.Hbar, balance)
}

func TestCostExceedsMaxBeforeAnswer(t *testing.T) {
	trans := newMockTransport(t)
	c := newTestClient(t, trans, 3, true)

	trans.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, target string, args *wire.Query, resp *wire.Response) error {
			if args.Header.ResponseType != wire.CostAnswer {
				t.Fatalf("ANSWER_ONLY request sent with a cost above the maximum")
			}

			require.NotNil(t, args.Header.Payment)
			assert.Empty(t, args.Header.Payment.SigMap)
			body, err := args.Header.Payment.Body()
			require.NoError(t, err)
			assert.True(t, body.NodeAccountID.IsZero())
			assert.True(t, body.TransactionID.IsZero())

			quote(resp, wire.QueryTransactionRecord, 2*ledger.Hbar)
			return nil
		}).Times(1)

	_, err := GetRecord(context.Background(), c, ledger.GenerateTransactionID(operatorID))

	var exceeded *MaxQueryPaymentExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, 2*ledger.Hbar, exceeded.Cost)
	assert.Equal(t, ledger.Hbar, exceeded.Max)
}

func TestQueryMaxOverridesClient(t *testing.T) {
	trans := newMockTransport(t)
	c := newTestClient(t, trans, 1, true)

	trans.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, target string, args *wire.Query, resp *wire.Response) error {
			require.Equal(t, wire.CostAnswer, args.Header.ResponseType)
			quote(resp, wire.QueryTokenInfo, 50)
			return nil
		})

	q := NewTokenInfoQuery().SetTokenID(ledger.NewTokenID(7))
	require.NoError(t, q.SetMaxQueryPayment(10))

	_, err := q.Execute(context.Background(), c)
	var exceeded *MaxQueryPaymentExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, ledger.Amount(10), exceeded.Max)
}

func TestPaymentsRotateWithNodes(t *testing.T) {
	trans := newMockTransport(t)
	c := newTestClient(t, trans, 3, true)
	node3, node4 := ledger.NewAccountID(3), ledger.NewAccountID(4)

	cost := ledger.Amount(100)
	txID := ledger.GenerateTransactionID(operatorID)
	var paymentIDs []ledger.TransactionID

	gomock.InOrder(
		trans.EXPECT().Query(gomock.Any(), nodeAddr(node3), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, target string, args *wire.Query, resp *wire.Response) error {
				require.Equal(t, wire.CostAnswer, args.Header.ResponseType)
				quote(resp, wire.QueryTransactionRecord, cost)
				return nil
			}),
		trans.EXPECT().Query(gomock.Any(), nodeAddr(node3), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, target string, args *wire.Query, resp *wire.Response) error {
				paymentIDs = append(paymentIDs, checkPayment(t, args, node3, cost))
				answer(t, resp, wire.QueryTransactionRecord, ledger.StatusBusy, nil)
				return nil
			}),
		trans.EXPECT().Query(gomock.Any(), nodeAddr(node4), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, target string, args *wire.Query, resp *wire.Response) error {
				paymentIDs = append(paymentIDs, checkPayment(t, args, node4, cost))
				answer(t, resp, wire.QueryTransactionRecord, ledger.StatusOK, &wire.TransactionRecordResponse{
					Record: wire.Record{
						Receipt:       wire.Receipt{Status: ledger.StatusSuccess},
						TransactionID: txID,
						Memo:          "rent",
					},
				})
				return nil
			}),
	)

	q := NewTransactionRecordQuery().SetTransactionID(txID)
	q.SetNodeAccountIDs(node3, node4)

	record, err := q.Execute(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "rent", record.Memo)
	assert.Equal(t, txID, record.TransactionID)

	require.Len(t, paymentIDs, 2)
	assert.Equal(t, paymentIDs[0], paymentIDs[1])
}

// checkPayment verifies that the payment of a request pays cost to node and
// is bound to node, and returns its transaction id.
func checkPayment(t *testing.T, args *wire.Query, node ledger.AccountID, cost ledger.Amount) ledger.TransactionID {
	require.Equal(t, wire.AnswerOnly, args.Header.ResponseType)
	require.NotNil(t, args.Header.Payment)
	assert.Len(t, args.Header.Payment.SigMap, 1)

	body, err := args.Header.Payment.Body()
	require.NoError(t, err)
	assert.Equal(t, node, body.NodeAccountID)
	assert.Equal(t, operatorID, body.TransactionID.AccountID)
	assert.Equal(t, uint64(ledger.Hbar), body.TransactionFee)
	require.Equal(t, wire.KindCryptoTransfer, body.Kind)

	var transfer wire.CryptoTransferBody
	require.NoError(t, wire.Unmarshal(body.Data, &transfer))
	assert.ElementsMatch(t, []wire.AccountAmount{
		{AccountID: operatorID, Amount: -cost},
		{AccountID: node, Amount: cost},
	}, transfer.Transfers)

	return body.TransactionID
}

func TestPaidQueryWithoutOperator(t *testing.T) {
	trans := newMockTransport(t)
	c := newTestClient(t, trans, 3, false)

	_, err := NewLiveHashQuery().
		SetAccountID(operatorID).
		SetHash(make([]byte, 48)).
		Execute(context.Background(), c)
	assert.ErrorIs(t, err, ErrMissingOperator)
}

func TestExplicitQueryPaymentSkipsProbe(t *testing.T) {
	trans := newMockTransport(t)
	c := newTestClient(t, trans, 3, true)
	contract := ledger.NewContractID(9)

	trans.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, target string, args *wire.Query, resp *wire.Response) error {
			require.Equal(t, wire.AnswerOnly, args.Header.ResponseType)
			require.NotNil(t, args.Header.Payment)
			answer(t, resp, wire.QueryContractRecords, ledger.StatusOK, &wire.ContractRecordsResponse{
				ContractID: contract,
				Records:    []wire.Record{{Memo: "a"}, {Memo: "b"}},
			})
			return nil
		})

	q := NewContractRecordsQuery().SetContractID(contract)
	require.NoError(t, q.SetQueryPayment(5*ledger.Hbar))

	records, err := q.Execute(context.Background(), c)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestSuppliedPayments(t *testing.T) {
	trans := newMockTransport(t)
	// no operator: the supplied payments are used as they are
	c := newTestClient(t, trans, 3, false)
	node5 := ledger.NewAccountID(5)

	key, err := keys.GenerateEd25519Key()
	require.NoError(t, err)

	tr := transaction.NewCryptoTransfer()
	require.NoError(t, tr.AddSender(operatorID, 10))
	require.NoError(t, tr.AddRecipient(node5, 10))
	require.NoError(t, tr.SetTransactionID(ledger.GenerateTransactionID(operatorID)))
	require.NoError(t, tr.SetNodeAccountIDs(node5))
	pay, err := tr.Freeze(nil)
	require.NoError(t, err)
	require.NoError(t, pay.SignWith(key))

	trans.EXPECT().Query(gomock.Any(), nodeAddr(node5), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, target string, args *wire.Query, resp *wire.Response) error {
			require.NotNil(t, args.Header.Payment)
			answer(t, resp, wire.QueryTokenInfo, ledger.StatusOK, &wire.TokenInfoResponse{
				TokenInfo: wire.TokenInfo{Name: "Mosaic", Symbol: "MOS"},
			})
			return nil
		})

	q := NewTokenInfoQuery().SetTokenID(ledger.NewTokenID(7))
	require.NoError(t, q.SetPaymentTransactions(pay))

	info, err := q.Execute(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "MOS", info.Symbol)
}

func TestReceiptQueryWaitsForConsensus(t *testing.T) {
	trans := newMockTransport(t)
	c := newTestClient(t, trans, 1, false)
	txID := ledger.GenerateTransactionID(operatorID)

	statuses := []ledger.Status{ledger.StatusUnknown, ledger.StatusUnknown, ledger.StatusInvalidSignature}
	trans.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, target string, args *wire.Query, resp *wire.Response) error {
			status := statuses[0]
			statuses = statuses[1:]
			answer(t, resp, wire.QueryTransactionReceipt, ledger.StatusOK, &wire.TransactionReceiptResponse{
				Receipt: wire.Receipt{Status: status},
			})
			return nil
		}).Times(3)

	receipt, err := NewTransactionReceiptQuery().SetTransactionID(txID).Execute(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusInvalidSignature, receipt.Status)
}

func TestGetCost(t *testing.T) {
	trans := newMockTransport(t)
	c := newTestClient(t, trans, 2, false)

	trans.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, target string, args *wire.Query, resp *wire.Response) error {
			require.Equal(t, wire.CostAnswer, args.Header.ResponseType)
			quote(resp, wire.QueryLiveHash, 1234)
			return nil
		})

	cost, err := NewLiveHashQuery().SetAccountID(operatorID).GetCost(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, ledger.Amount(1234), cost)
}

func TestNegativeAmounts(t *testing.T) {
	q := NewTokenInfoQuery()
	assert.ErrorIs(t, q.SetQueryPayment(-1), ledger.ErrNegativeAmount)
	assert.ErrorIs(t, q.SetMaxQueryPayment(-1), ledger.ErrNegativeAmount)
}

func TestUnexpectedResponseKind(t *testing.T) {
	trans := newMockTransport(t)
	c := newTestClient(t, trans, 1, false)

	trans.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, target string, args *wire.Query, resp *wire.Response) error {
			answer(t, resp, wire.QueryTokenInfo, ledger.StatusOK, &wire.TokenInfoResponse{})
			return nil
		})

	_, err := NewAccountBalanceQuery().SetAccountID(operatorID).Execute(context.Background(), c)
	assert.Error(t, err)
}
