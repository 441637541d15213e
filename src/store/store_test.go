package store

import (
	"testing"

	"github.com/mosaicnetworks/hashgraph-sdk/src/common"
	"github.com/mosaicnetworks/hashgraph-sdk/src/crypto/keys"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	payer = ledger.NewAccountID(1001)
	alice = ledger.NewAccountID(1002)
)

func frozenTransfer(t *testing.T, payer ledger.AccountID) *transaction.Transaction {
	tr := transaction.NewCryptoTransfer()
	require.NoError(t, tr.AddSender(payer, 10*ledger.Hbar))
	require.NoError(t, tr.AddRecipient(alice, 10*ledger.Hbar))
	require.NoError(t, tr.SetTransactionID(ledger.GenerateTransactionID(payer)))
	require.NoError(t, tr.SetNodeAccountIDs(ledger.NewAccountID(3), ledger.NewAccountID(4)))
	tx, err := tr.Freeze(nil)
	require.NoError(t, err)
	return tx
}

func signed(t *testing.T, tx *transaction.Transaction) *transaction.Transaction {
	key, err := keys.GenerateEd25519Key()
	require.NoError(t, err)
	require.NoError(t, tx.SignWith(key))
	return tx
}

func assertSameTransaction(t *testing.T, expected, actual *transaction.Transaction) {
	t.Helper()
	exp, err := expected.ToBytes()
	require.NoError(t, err)
	act, err := actual.ToBytes()
	require.NoError(t, err)
	assert.Equal(t, exp, act)
}

func newBadger(t *testing.T) Store {
	s, err := NewBadgerStore(t.TempDir(), common.NewTestEntry(t, common.TestLogLevel))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func stores() map[string]func(*testing.T) Store {
	return map[string]func(*testing.T) Store{
		"inmem":  func(*testing.T) Store { return NewInmemStore() },
		"badger": newBadger,
	}
}

func TestPutGet(t *testing.T) {
	for name, newStore := range stores() {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			tx := signed(t, frozenTransfer(t, payer))

			require.NoError(t, s.Put(tx))

			got, err := s.Get(tx.TransactionID())
			require.NoError(t, err)
			assertSameTransaction(t, tx, got)
			assert.Len(t, got.Signatures()[ledger.NewAccountID(3)], 1)
		})
	}
}

func TestGetMissing(t *testing.T) {
	for name, newStore := range stores() {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)

			_, err := s.Get(ledger.GenerateTransactionID(payer))
			assert.True(t, IsStore(err, KeyNotFound), "expected KeyNotFound, got %v", err)

			err = s.Delete(ledger.GenerateTransactionID(payer))
			assert.True(t, IsStore(err, KeyNotFound), "expected KeyNotFound, got %v", err)
		})
	}
}

func TestPutReplaces(t *testing.T) {
	for name, newStore := range stores() {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			tx := frozenTransfer(t, payer)
			require.NoError(t, s.Put(tx))

			signed(t, tx)
			signed(t, tx)
			require.NoError(t, s.Put(tx))

			got, err := s.Get(tx.TransactionID())
			require.NoError(t, err)
			assert.Len(t, got.Signatures()[ledger.NewAccountID(4)], 2)

			all, err := s.List()
			require.NoError(t, err)
			assert.Len(t, all, 1)
		})
	}
}

func TestListAndDelete(t *testing.T) {
	for name, newStore := range stores() {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)

			txs := []*transaction.Transaction{
				frozenTransfer(t, ledger.NewAccountID(1001)),
				frozenTransfer(t, ledger.NewAccountID(1002)),
				frozenTransfer(t, ledger.NewAccountID(1003)),
			}
			for _, tx := range txs {
				require.NoError(t, s.Put(tx))
			}

			all, err := s.List()
			require.NoError(t, err)
			require.Len(t, all, 3)
			for i, tx := range all {
				assert.Equal(t, txs[i].TransactionID(), tx.TransactionID())
			}

			require.NoError(t, s.Delete(txs[1].TransactionID()))

			all, err = s.List()
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, txs[0].TransactionID(), all[0].TransactionID())
			assert.Equal(t, txs[2].TransactionID(), all[1].TransactionID())
		})
	}
}

func TestBadgerStoreReopen(t *testing.T) {
	dir := t.TempDir()
	logger := common.NewTestEntry(t, common.TestLogLevel)

	s, err := NewBadgerStore(dir, logger)
	require.NoError(t, err)
	tx := signed(t, frozenTransfer(t, payer))
	require.NoError(t, s.Put(tx))
	require.NoError(t, s.Close())

	s, err = NewBadgerStore(dir, logger)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, dir, s.Path())
	got, err := s.Get(tx.TransactionID())
	require.NoError(t, err)
	assertSameTransaction(t, tx, got)
}

func TestInmemStoreClosed(t *testing.T) {
	s := NewInmemStore()
	require.NoError(t, s.Close())

	err := s.Put(frozenTransfer(t, payer))
	assert.True(t, IsStore(err, Closed))
}
