package mocknet

import (
	"context"
	"testing"
	"time"

	"github.com/mosaicnetworks/hashgraph-sdk/src/client"
	"github.com/mosaicnetworks/hashgraph-sdk/src/common"
	"github.com/mosaicnetworks/hashgraph-sdk/src/crypto/keys"
	"github.com/mosaicnetworks/hashgraph-sdk/src/execution"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/query"
	"github.com/mosaicnetworks/hashgraph-sdk/src/transaction"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	operatorID = ledger.NewAccountID(1001)
	aliceID    = ledger.NewAccountID(1002)
)

func newTestNetwork(t *testing.T, conf Config) (*Network, *client.Client) {
	conf.Logger = common.NewTestEntry(t, common.TestLogLevel)
	network, err := NewNetwork(conf)
	require.NoError(t, err)

	network.Ledger().Fund(operatorID, 100*ledger.Hbar)
	network.Ledger().Fund(aliceID, 0)

	c := client.New(network.Addresses(), network.ClientTransport(), conf.Logger)
	c.SetRequestTimeout(time.Second)
	c.SetRetryPolicy(execution.RetryPolicy{
		MinBackoff: time.Millisecond,
		MaxBackoff: 5 * time.Millisecond,
	})

	key, err := keys.GenerateEd25519Key()
	require.NoError(t, err)
	c.SetOperator(operatorID, key)

	t.Cleanup(func() {
		c.Close()
		network.Close()
	})
	return network, c
}

func transfer(t *testing.T, amount ledger.Amount) *transaction.CryptoTransfer {
	tr := transaction.NewCryptoTransfer()
	require.NoError(t, tr.AddSender(operatorID, amount))
	require.NoError(t, tr.AddRecipient(aliceID, amount))
	return tr
}

func TestTransferEndToEnd(t *testing.T) {
	network, c := newTestNetwork(t, Config{Nodes: 3})
	ctx := context.Background()

	resp, err := transfer(t, 10*ledger.Hbar).Execute(ctx, c)
	require.NoError(t, err)

	receipt, err := resp.GetReceipt(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusSuccess, receipt.Status)

	balance, err := query.NewAccountBalanceQuery().SetAccountID(aliceID).Execute(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, 10*ledger.Hbar, balance)

	record, err := query.GetRecord(ctx, c, resp.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, resp.TransactionID, record.TransactionID)
	assert.Equal(t, resp.Hash, record.TransactionHash)
	assert.Len(t, record.Transfers, 2)

	// the record cost DefaultQueryCost, paid to the answering node
	operatorBalance, _ := network.Ledger().Balance(operatorID)
	assert.Equal(t, 90*ledger.Hbar-DefaultQueryCost, operatorBalance)
}

func TestDuplicateTransaction(t *testing.T) {
	_, c := newTestNetwork(t, Config{Nodes: 1})
	ctx := context.Background()

	tx, err := transfer(t, 1).Freeze(c)
	require.NoError(t, err)
	require.NoError(t, tx.SignWithOperator(c))

	_, err = tx.Execute(ctx, c)
	require.NoError(t, err)

	_, err = tx.Execute(ctx, c)
	var perr *execution.PrecheckError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ledger.StatusDuplicateTransaction, perr.Status)
}

func TestUnsignedTransactionRejected(t *testing.T) {
	network, _ := newTestNetwork(t, Config{Nodes: 1})

	tr := transfer(t, 1)
	require.NoError(t, tr.SetTransactionID(ledger.GenerateTransactionID(operatorID)))
	require.NoError(t, tr.SetNodeAccountIDs(network.Nodes()[0].ID()))
	tx, err := tr.Freeze(nil)
	require.NoError(t, err)

	// a client without operator does not sign
	bare := client.New(network.Addresses(), network.ClientTransport(), common.NewTestEntry(t, common.TestLogLevel))
	defer bare.Close()

	_, err = tx.Execute(context.Background(), bare)
	var perr *execution.PrecheckError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ledger.StatusInvalidSignature, perr.Status)
}

func TestWrongNodeRejected(t *testing.T) {
	network, c := newTestNetwork(t, Config{Nodes: 2})
	n3 := network.Nodes()[0]
	n4 := network.Nodes()[1]

	tx, err := transfer(t, 1).Freeze(c)
	require.NoError(t, err)
	require.NoError(t, tx.SignWithOperator(c))

	// a body bound to one node sent to the other
	w, err := tx.WireTransaction(tx.NodeAccountIDs()[0])
	require.NoError(t, err)
	target := n3
	if tx.NodeAccountIDs()[0] == n3.ID() {
		target = n4
	}

	var resp wire.TransactionResponse
	require.NoError(t, c.Transport().SubmitTransaction(context.Background(), target.Addr(), w, &resp))
	assert.Equal(t, ledger.StatusInvalidNodeAccount, resp.Precheck)
}

func TestScriptedBusyRetriesNextNode(t *testing.T) {
	network, c := newTestNetwork(t, Config{Nodes: 3})
	for _, n := range network.Nodes() {
		n.Script(ledger.StatusBusy)
	}

	tr := transfer(t, 1)
	ids := make([]ledger.AccountID, 0, 3)
	for _, n := range network.Nodes() {
		ids = append(ids, n.ID())
	}
	require.NoError(t, tr.SetNodeAccountIDs(ids...))

	resp, err := tr.Execute(context.Background(), c)
	require.NoError(t, err)

	// three BUSY answers, then the first node again
	assert.Equal(t, ids[0], resp.NodeID)
	for _, n := range network.Nodes() {
		assert.GreaterOrEqual(t, n.Received(), 1)
	}
}

func TestReceiptWaitsForConsensus(t *testing.T) {
	_, c := newTestNetwork(t, Config{Nodes: 1, ConsensusDelay: 5 * time.Millisecond})
	ctx := context.Background()

	resp, err := transfer(t, 1).Execute(ctx, c)
	require.NoError(t, err)

	receipt, err := resp.GetReceipt(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusSuccess, receipt.Status)
}

func TestFailedReceipt(t *testing.T) {
	_, c := newTestNetwork(t, Config{Nodes: 1})
	ctx := context.Background()

	// more than the operator holds
	resp, err := transfer(t, 1000*ledger.Hbar).Execute(ctx, c)
	require.NoError(t, err)

	_, err = resp.GetReceipt(ctx, c)
	var rerr *transaction.ReceiptStatusError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, ledger.StatusInsufficientPayerBalance, rerr.Status)
}

func TestTokenLifecycle(t *testing.T) {
	_, c := newTestNetwork(t, Config{Nodes: 3})
	ctx := context.Background()

	create := transaction.NewTokenCreate()
	require.NoError(t, create.SetName("Mosaic"))
	require.NoError(t, create.SetSymbol("MOS"))
	require.NoError(t, create.SetInitialSupply(1000))
	require.NoError(t, create.SetTreasury(operatorID))

	resp, err := create.Execute(ctx, c)
	require.NoError(t, err)
	receipt, err := resp.GetReceipt(ctx, c)
	require.NoError(t, err)
	require.NotNil(t, receipt.TokenID)
	tokenID := *receipt.TokenID

	info, err := query.NewTokenInfoQuery().SetTokenID(tokenID).Execute(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, "MOS", info.Symbol)
	assert.Equal(t, uint64(1000), info.TotalSupply)

	unfreeze := transaction.NewTokenUnfreeze()
	require.NoError(t, unfreeze.SetTokenID(tokenID))
	require.NoError(t, unfreeze.SetAccountID(aliceID))
	resp, err = unfreeze.Execute(ctx, c)
	require.NoError(t, err)
	_, err = resp.GetReceipt(ctx, c)
	require.NoError(t, err)

	del := transaction.NewTokenDelete()
	require.NoError(t, del.SetTokenID(tokenID))
	resp, err = del.Execute(ctx, c)
	require.NoError(t, err)
	_, err = resp.GetReceipt(ctx, c)
	require.NoError(t, err)

	info, err = query.NewTokenInfoQuery().SetTokenID(tokenID).Execute(ctx, c)
	require.NoError(t, err)
	assert.True(t, info.Deleted)
}

func TestAccountCreate(t *testing.T) {
	network, c := newTestNetwork(t, Config{Nodes: 3})
	ctx := context.Background()

	key, err := keys.GenerateSecp256k1Key()
	require.NoError(t, err)

	create := transaction.NewAccountCreate()
	require.NoError(t, create.SetKey(key.PublicKey()))
	require.NoError(t, create.SetInitialBalance(5*ledger.Hbar))

	resp, err := create.Execute(ctx, c)
	require.NoError(t, err)
	receipt, err := resp.GetReceipt(ctx, c)
	require.NoError(t, err)
	require.NotNil(t, receipt.AccountID)

	balance, ok := network.Ledger().Balance(*receipt.AccountID)
	require.True(t, ok)
	assert.Equal(t, 5*ledger.Hbar, balance)
}

func TestLiveHashAndContract(t *testing.T) {
	network, c := newTestNetwork(t, Config{Nodes: 3})
	ctx := context.Background()

	key, err := keys.GenerateEd25519Key()
	require.NoError(t, err)
	hash := make([]byte, transaction.LiveHashLength)
	hash[0] = 0xab

	add := transaction.NewLiveHashAdd()
	require.NoError(t, add.SetAccountID(aliceID))
	require.NoError(t, add.SetHash(hash))
	require.NoError(t, add.AddKey(key.PublicKey()))
	require.NoError(t, add.SetDuration(time.Hour))
	resp, err := add.Execute(ctx, c)
	require.NoError(t, err)
	_, err = resp.GetReceipt(ctx, c)
	require.NoError(t, err)

	lh, err := query.NewLiveHashQuery().SetAccountID(aliceID).SetHash(hash).Execute(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, hash, lh.Hash)
	assert.Equal(t, int64(3600), lh.DurationSeconds)

	contract := ledger.NewContractID(2000)
	network.Ledger().AddContract(contract)

	update := transaction.NewContractUpdate()
	require.NoError(t, update.SetContractID(contract))
	require.NoError(t, update.SetContractMemo("v2"))
	resp, err = update.Execute(ctx, c)
	require.NoError(t, err)
	_, err = resp.GetReceipt(ctx, c)
	require.NoError(t, err)

	records, err := query.NewContractRecordsQuery().SetContractID(contract).Execute(ctx, c)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, resp.TransactionID, records[0].TransactionID)
}

func TestQueryCostTooHigh(t *testing.T) {
	network, c := newTestNetwork(t, Config{Nodes: 3})
	for _, n := range network.Nodes() {
		n.SetQueryCost(wire.QueryTransactionRecord, 2*ledger.Hbar)
	}

	_, err := query.GetRecord(context.Background(), c, ledger.GenerateTransactionID(operatorID))
	var exceeded *query.MaxQueryPaymentExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, 2*ledger.Hbar, exceeded.Cost)
}

func TestUnderpaidQuery(t *testing.T) {
	network, c := newTestNetwork(t, Config{Nodes: 1})

	resp, err := transfer(t, 1).Execute(context.Background(), c)
	require.NoError(t, err)
	_, err = resp.GetReceipt(context.Background(), c)
	require.NoError(t, err)

	network.Nodes()[0].SetQueryCost(wire.QueryTransactionRecord, 500)

	q := query.NewTransactionRecordQuery().SetTransactionID(resp.TransactionID)
	require.NoError(t, q.SetQueryPayment(10))

	_, err = q.Execute(context.Background(), c)
	var perr *execution.PrecheckError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ledger.StatusInsufficientQueryPayment, perr.Status)
}

func TestTCPNetwork(t *testing.T) {
	_, c := newTestNetwork(t, Config{
		BindAddrs: []string{"127.0.0.1:0", "127.0.0.1:0"},
	})
	ctx := context.Background()

	resp, err := transfer(t, 3*ledger.Hbar).Execute(ctx, c)
	require.NoError(t, err)
	_, err = resp.GetReceipt(ctx, c)
	require.NoError(t, err)

	balance, err := query.NewAccountBalanceQuery().SetAccountID(aliceID).Execute(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, 3*ledger.Hbar, balance)
}

func TestBadConfig(t *testing.T) {
	_, err := NewNetwork(Config{Nodes: 3, BindAddrs: []string{"127.0.0.1:0"}})
	assert.Error(t, err)
}
