package transaction

import (
	"time"

	"github.com/mosaicnetworks/hashgraph-sdk/src/crypto/keys"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
)

// LiveHashLength is the length of a live hash, a SHA-384 digest.
const LiveHashLength = 48

// LiveHashAdd attaches a hash to an account, for instance the hash of a
// certificate, together with the keys allowed to delete it.
type LiveHashAdd struct {
	Template
	accountID ledger.AccountID
	hash      []byte
	keys      []keys.PublicKey
	duration  time.Duration
}

// NewLiveHashAdd creates an empty LiveHashAdd.
func NewLiveHashAdd() *LiveHashAdd {
	t := new(LiveHashAdd)
	t.init(t)
	return t
}

// Kind implements Operation.
func (t *LiveHashAdd) Kind() wire.TransactionKind {
	return wire.KindLiveHashAdd
}

// SetAccountID sets the account the hash is attached to.
func (t *LiveHashAdd) SetAccountID(id ledger.AccountID) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	t.accountID = id
	return nil
}

// SetHash sets the hash. It must be LiveHashLength bytes long.
func (t *LiveHashAdd) SetHash(hash []byte) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	if len(hash) != LiveHashLength {
		return &ValidationError{Kind: "LiveHashAdd", Reason: "hash must be 48 bytes"}
	}
	t.hash = append([]byte(nil), hash...)
	return nil
}

// AddKey adds a key allowed to delete the hash.
func (t *LiveHashAdd) AddKey(key keys.PublicKey) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	t.keys = append(t.keys, key)
	return nil
}

// SetDuration sets how long the hash stays attached.
func (t *LiveHashAdd) SetDuration(d time.Duration) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	t.duration = d
	return nil
}

// Hash returns the hash.
func (t *LiveHashAdd) Hash() []byte {
	return append([]byte(nil), t.hash...)
}

func (t *LiveHashAdd) validate() error {
	switch {
	case t.accountID.IsZero():
		return &ValidationError{Kind: "LiveHashAdd", Reason: "account is not set"}
	case len(t.hash) != LiveHashLength:
		return &ValidationError{Kind: "LiveHashAdd", Reason: "hash must be 48 bytes"}
	case len(t.keys) == 0:
		return &ValidationError{Kind: "LiveHashAdd", Reason: "at least one key is required"}
	}
	return nil
}

func (t *LiveHashAdd) encode() ([]byte, error) {
	lh := wire.LiveHash{
		AccountID:       t.accountID,
		Hash:            t.hash,
		DurationSeconds: int64(t.duration / time.Second),
	}
	for _, k := range t.keys {
		lh.Keys = append(lh.Keys, k.Bytes())
	}
	return wire.Marshal(&wire.LiveHashAddBody{LiveHash: lh})
}

func decodeLiveHashAdd(data []byte) (Operation, error) {
	var body wire.LiveHashAddBody
	if err := wire.Unmarshal(data, &body); err != nil {
		return nil, err
	}
	t := NewLiveHashAdd()
	t.accountID = body.LiveHash.AccountID
	t.hash = body.LiveHash.Hash
	t.duration = time.Duration(body.LiveHash.DurationSeconds) * time.Second
	for _, raw := range body.LiveHash.Keys {
		k, err := keys.PublicKeyFromBytes(raw)
		if err != nil {
			return nil, err
		}
		t.keys = append(t.keys, k)
	}
	return t, nil
}
