package store

import (
	"sort"
	"sync"

	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/transaction"
)

// InmemStore is a Store that keeps serialized transactions in memory.
type InmemStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
	closed  bool
}

// NewInmemStore creates an empty InmemStore.
func NewInmemStore() *InmemStore {
	return &InmemStore{
		entries: make(map[string][]byte),
	}
}

// Put implements Store.
func (s *InmemStore) Put(tx *transaction.Transaction) error {
	data, err := tx.ToBytes()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return NewStoreErr(txData, Closed, tx.TransactionID().String())
	}
	s.entries[string(txKey(tx.TransactionID()))] = data
	return nil
}

// Get implements Store.
func (s *InmemStore) Get(id ledger.TransactionID) (*transaction.Transaction, error) {
	s.mu.RLock()
	data, ok := s.entries[string(txKey(id))]
	s.mu.RUnlock()

	if !ok {
		return nil, NewStoreErr(txData, KeyNotFound, id.String())
	}
	return transaction.FromBytes(data)
}

// List implements Store. Transactions are returned in key order.
func (s *InmemStore) List() ([]*transaction.Transaction, error) {
	s.mu.RLock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	data := make([][]byte, len(keys))
	for i, k := range keys {
		data[i] = s.entries[k]
	}
	s.mu.RUnlock()

	res := make([]*transaction.Transaction, 0, len(data))
	for _, d := range data {
		tx, err := transaction.FromBytes(d)
		if err != nil {
			return nil, err
		}
		res = append(res, tx)
	}
	return res, nil
}

// Delete implements Store.
func (s *InmemStore) Delete(id ledger.TransactionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := string(txKey(id))
	if _, ok := s.entries[key]; !ok {
		return NewStoreErr(txData, KeyNotFound, id.String())
	}
	delete(s.entries, key)
	return nil
}

// Close implements Store.
func (s *InmemStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
