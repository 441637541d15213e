package store

import (
	"github.com/dgraph-io/badger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/transaction"
	"github.com/sirupsen/logrus"
)

// BadgerStore is a Store backed by a badger database.
type BadgerStore struct {
	db     *badger.DB
	path   string
	logger *logrus.Entry
}

// NewBadgerStore opens the database in path, creating it if needed.
func NewBadgerStore(path string, logger *logrus.Entry) (*BadgerStore, error) {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
	logger = logger.WithField("prefix", "store")

	opts := badger.DefaultOptions(path).
		WithSyncWrites(false).
		WithTruncate(true).
		WithLogger(logger.WithField("ns", "badger"))

	handle, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	logger.WithField("path", path).Debug("Opened store")

	return &BadgerStore{
		db:     handle,
		path:   path,
		logger: logger,
	}, nil
}

// Path returns the directory of the database.
func (s *BadgerStore) Path() string {
	return s.path
}

// Put implements Store.
func (s *BadgerStore) Put(tx *transaction.Transaction) error {
	val, err := tx.ToBytes()
	if err != nil {
		return err
	}

	dbtx := s.db.NewTransaction(true)
	defer dbtx.Discard()

	if err := dbtx.Set(txKey(tx.TransactionID()), val); err != nil {
		return err
	}
	if err := dbtx.Commit(); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"transaction_id": tx.TransactionID().String(),
		"kind":           tx.Kind().String(),
	}).Debug("Put transaction")

	return nil
}

// Get implements Store.
func (s *BadgerStore) Get(id ledger.TransactionID) (*transaction.Transaction, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(txKey(id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, mapError(err, txData, id.String())
	}

	return transaction.FromBytes(data)
}

// List implements Store. Transactions are returned in key order.
func (s *BadgerStore) List() ([]*transaction.Transaction, error) {
	res := []*transaction.Transaction{}
	prefix := txPrefixKey()

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			data, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			tx, err := transaction.FromBytes(data)
			if err != nil {
				return err
			}
			res = append(res, tx)
		}
		return nil
	})

	return res, err
}

// Delete implements Store.
func (s *BadgerStore) Delete(id ledger.TransactionID) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		key := txKey(id)
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	return mapError(err, txData, id.String())
}

// Close implements Store.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func isDBKeyNotFound(err error) bool {
	return err.Error() == badger.ErrKeyNotFound.Error()
}

func mapError(err error, name, key string) error {
	if err != nil {
		if isDBKeyNotFound(err) {
			return NewStoreErr(name, KeyNotFound, key)
		}
	}
	return err
}
