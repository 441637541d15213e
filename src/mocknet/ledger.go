package mocknet

import (
	"encoding/hex"
	"sync"
	"time"

	"github.com/mosaicnetworks/hashgraph-sdk/src/crypto/keys"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
)

// firstEntityNum is the number of the first account, token or contract the
// ledger creates.
const firstEntityNum = 1000

type record struct {
	wire.Record
	readyAt time.Time
}

// Ledger is the state shared by the nodes of a simulated network: balances,
// tokens, live hashes and the records of the transactions that reached
// "consensus". Every node applies transactions to the same Ledger, which is
// safe for concurrent use.
type Ledger struct {
	mu sync.Mutex

	balances    map[ledger.AccountID]ledger.Amount
	tokens      map[ledger.TokenID]*wire.TokenInfo
	liveHashes  map[ledger.AccountID]map[string]wire.LiveHash
	contracts   map[ledger.ContractID][]ledger.TransactionID
	records     map[ledger.TransactionID]*record
	nextEntity  uint64
	consensusIn time.Duration
	now         func() time.Time
}

// NewLedger creates an empty Ledger. Receipts only leave the UNKNOWN status
// once consensusDelay has passed since the transaction was accepted.
func NewLedger(consensusDelay time.Duration) *Ledger {
	return &Ledger{
		balances:    make(map[ledger.AccountID]ledger.Amount),
		tokens:      make(map[ledger.TokenID]*wire.TokenInfo),
		liveHashes:  make(map[ledger.AccountID]map[string]wire.LiveHash),
		contracts:   make(map[ledger.ContractID][]ledger.TransactionID),
		records:     make(map[ledger.TransactionID]*record),
		nextEntity:  firstEntityNum,
		consensusIn: consensusDelay,
		now:         time.Now,
	}
}

// Fund sets the balance of an account, creating it if needed.
func (l *Ledger) Fund(id ledger.AccountID, amount ledger.Amount) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[id] = amount
}

// Balance returns the balance of an account.
func (l *Ledger) Balance(id ledger.AccountID) (ledger.Amount, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.balances[id]
	return b, ok
}

// AddContract registers a contract so that ContractUpdate transactions can
// target it.
func (l *Ledger) AddContract(id ledger.ContractID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.contracts[id]; !ok {
		l.contracts[id] = nil
	}
}

// Submit applies an accepted transaction. It returns the precheck status:
// DUPLICATE_TRANSACTION and PAYER_ACCOUNT_NOT_FOUND reject the transaction,
// otherwise the outcome is recorded in its receipt.
func (l *Ledger) Submit(body *wire.TransactionBody, hash []byte) ledger.Status {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := body.TransactionID
	if _, dup := l.records[id]; dup {
		return ledger.StatusDuplicateTransaction
	}
	if _, ok := l.balances[id.AccountID]; !ok {
		return ledger.StatusPayerAccountNotFound
	}

	receipt, transfers := l.apply(body)

	now := l.now()
	l.records[id] = &record{
		Record: wire.Record{
			Receipt:            receipt,
			TransactionHash:    hash,
			ConsensusTimestamp: ledger.NewTimestamp(now.Add(l.consensusIn)),
			TransactionID:      id,
			Memo:               body.Memo,
			TransactionFee:     body.TransactionFee,
			Transfers:          transfers,
		},
		readyAt: now.Add(l.consensusIn),
	}

	return ledger.StatusOK
}

// apply runs the effects of a transaction. It is called with mu held.
func (l *Ledger) apply(body *wire.TransactionBody) (wire.Receipt, []wire.AccountAmount) {
	fail := func(s ledger.Status) (wire.Receipt, []wire.AccountAmount) {
		return wire.Receipt{Status: s}, nil
	}

	switch body.Kind {
	case wire.KindCryptoTransfer:
		var op wire.CryptoTransferBody
		if err := wire.Unmarshal(body.Data, &op); err != nil {
			return fail(ledger.StatusInvalidTransaction)
		}
		if s := l.transfer(op.Transfers); s != ledger.StatusSuccess {
			return fail(s)
		}
		return wire.Receipt{Status: ledger.StatusSuccess}, op.Transfers

	case wire.KindAccountCreate:
		var op wire.AccountCreateBody
		if err := wire.Unmarshal(body.Data, &op); err != nil {
			return fail(ledger.StatusInvalidTransaction)
		}
		if _, err := keys.PublicKeyFromBytes(op.Key); err != nil {
			return fail(ledger.StatusInvalidTransaction)
		}
		payer := body.TransactionID.AccountID
		if l.balances[payer] < op.InitialBalance {
			return fail(ledger.StatusInsufficientPayerBalance)
		}
		id := ledger.NewAccountID(l.entityNum())
		l.balances[payer] -= op.InitialBalance
		l.balances[id] = op.InitialBalance
		return wire.Receipt{Status: ledger.StatusSuccess, AccountID: &id}, []wire.AccountAmount{
			{AccountID: payer, Amount: op.InitialBalance.Negated()},
			{AccountID: id, Amount: op.InitialBalance},
		}

	case wire.KindTokenCreate:
		var op wire.TokenCreateBody
		if err := wire.Unmarshal(body.Data, &op); err != nil {
			return fail(ledger.StatusInvalidTransaction)
		}
		if _, ok := l.balances[op.Treasury]; !ok {
			return fail(ledger.StatusInvalidAccountID)
		}
		id := ledger.NewTokenID(l.entityNum())
		l.tokens[id] = &wire.TokenInfo{
			TokenID:     id,
			Name:        op.Name,
			Symbol:      op.Symbol,
			Decimals:    op.Decimals,
			TotalSupply: op.InitialSupply,
			Treasury:    op.Treasury,
			AdminKey:    op.AdminKey,
		}
		return wire.Receipt{Status: ledger.StatusSuccess, TokenID: &id}, nil

	case wire.KindTokenDelete:
		var op wire.TokenDeleteBody
		if err := wire.Unmarshal(body.Data, &op); err != nil {
			return fail(ledger.StatusInvalidTransaction)
		}
		token, ok := l.tokens[op.TokenID]
		switch {
		case !ok:
			return fail(ledger.StatusInvalidTokenID)
		case token.Deleted:
			return fail(ledger.StatusTokenWasDeleted)
		}
		token.Deleted = true
		return wire.Receipt{Status: ledger.StatusSuccess, TokenID: &op.TokenID}, nil

	case wire.KindTokenUnfreeze:
		var op wire.TokenUnfreezeBody
		if err := wire.Unmarshal(body.Data, &op); err != nil {
			return fail(ledger.StatusInvalidTransaction)
		}
		token, ok := l.tokens[op.TokenID]
		switch {
		case !ok:
			return fail(ledger.StatusInvalidTokenID)
		case token.Deleted:
			return fail(ledger.StatusTokenWasDeleted)
		}
		if _, ok := l.balances[op.AccountID]; !ok {
			return fail(ledger.StatusInvalidAccountID)
		}
		return wire.Receipt{Status: ledger.StatusSuccess}, nil

	case wire.KindLiveHashAdd:
		var op wire.LiveHashAddBody
		if err := wire.Unmarshal(body.Data, &op); err != nil {
			return fail(ledger.StatusInvalidTransaction)
		}
		if len(op.LiveHash.Hash) != 48 {
			return fail(ledger.StatusInvalidLiveHash)
		}
		if _, ok := l.balances[op.LiveHash.AccountID]; !ok {
			return fail(ledger.StatusInvalidAccountID)
		}
		hashes := l.liveHashes[op.LiveHash.AccountID]
		if hashes == nil {
			hashes = make(map[string]wire.LiveHash)
			l.liveHashes[op.LiveHash.AccountID] = hashes
		}
		hashes[hex.EncodeToString(op.LiveHash.Hash)] = op.LiveHash
		return wire.Receipt{Status: ledger.StatusSuccess}, nil

	case wire.KindContractUpdate:
		var op wire.ContractUpdateBody
		if err := wire.Unmarshal(body.Data, &op); err != nil {
			return fail(ledger.StatusInvalidTransaction)
		}
		calls, ok := l.contracts[op.ContractID]
		if !ok {
			return fail(ledger.StatusInvalidContractID)
		}
		l.contracts[op.ContractID] = append(calls, body.TransactionID)
		return wire.Receipt{Status: ledger.StatusSuccess, ContractID: &op.ContractID}, nil
	}

	return fail(ledger.StatusNotSupported)
}

// transfer moves balances. It is called with mu held.
func (l *Ledger) transfer(transfers []wire.AccountAmount) ledger.Status {
	var sum ledger.Amount
	for _, aa := range transfers {
		sum += aa.Amount
		if _, ok := l.balances[aa.AccountID]; !ok {
			return ledger.StatusInvalidAccountID
		}
	}
	if sum != 0 {
		return ledger.StatusInvalidAccountAmounts
	}

	// net debits per account, as an account may appear twice
	delta := make(map[ledger.AccountID]ledger.Amount)
	for _, aa := range transfers {
		delta[aa.AccountID] += aa.Amount
	}
	for id, amount := range delta {
		if l.balances[id]+amount < 0 {
			return ledger.StatusInsufficientPayerBalance
		}
	}
	for id, amount := range delta {
		l.balances[id] += amount
	}
	return ledger.StatusSuccess
}

// Charge applies a query payment. Payments are not recorded and may reuse a
// transaction id, as the same payment is built for every queried node.
func (l *Ledger) Charge(transfers []wire.AccountAmount) ledger.Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.transfer(transfers)
}

func (l *Ledger) entityNum() uint64 {
	n := l.nextEntity
	l.nextEntity++
	return n
}

// Receipt returns the receipt of a transaction. It is UNKNOWN until the
// consensus delay has passed.
func (l *Ledger) Receipt(id ledger.TransactionID) (wire.Receipt, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	r, ok := l.records[id]
	if !ok {
		return wire.Receipt{}, false
	}
	if l.now().Before(r.readyAt) {
		return wire.Receipt{Status: ledger.StatusUnknown}, true
	}
	return r.Receipt, true
}

// Record returns the record of a transaction that reached consensus.
func (l *Ledger) Record(id ledger.TransactionID) (wire.Record, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	r, ok := l.records[id]
	if !ok || l.now().Before(r.readyAt) {
		return wire.Record{}, false
	}
	return r.Record, true
}

// LiveHash returns a live hash attached to an account.
func (l *Ledger) LiveHash(account ledger.AccountID, hash []byte) (wire.LiveHash, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	lh, ok := l.liveHashes[account][hex.EncodeToString(hash)]
	return lh, ok
}

// ContractRecords returns the records of the transactions that updated a
// contract.
func (l *Ledger) ContractRecords(id ledger.ContractID) ([]wire.Record, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	calls, ok := l.contracts[id]
	if !ok {
		return nil, false
	}
	records := make([]wire.Record, 0, len(calls))
	for _, txID := range calls {
		if r, ok := l.records[txID]; ok {
			records = append(records, r.Record)
		}
	}
	return records, true
}

// TokenInfo returns the properties of a token.
func (l *Ledger) TokenInfo(id ledger.TokenID) (wire.TokenInfo, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.tokens[id]
	if !ok {
		return wire.TokenInfo{}, false
	}
	return *t, true
}
