package ledger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidEntityID is returned when a string cannot be parsed as a
// shard.realm.num identifier.
var ErrInvalidEntityID = errors.New("invalid entity id")

// entityID is the shard.realm.num triplet shared by every ledger entity.
type entityID struct {
	Shard uint64 `codec:"shard"`
	Realm uint64 `codec:"realm"`
	Num   uint64 `codec:"num"`
}

func (e entityID) String() string {
	return fmt.Sprintf("%d.%d.%d", e.Shard, e.Realm, e.Num)
}

func parseEntityID(s string) (entityID, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return entityID{}, fmt.Errorf("%w: %q", ErrInvalidEntityID, s)
	}

	var vals [3]uint64
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return entityID{}, fmt.Errorf("%w: %q", ErrInvalidEntityID, s)
		}
		vals[i] = v
	}

	return entityID{Shard: vals[0], Realm: vals[1], Num: vals[2]}, nil
}

// AccountID identifies an account, including the accounts of network nodes.
type AccountID entityID

// NewAccountID returns the AccountID 0.0.num.
func NewAccountID(num uint64) AccountID {
	return AccountID{Num: num}
}

// AccountIDFromString parses "shard.realm.num".
func AccountIDFromString(s string) (AccountID, error) {
	e, err := parseEntityID(s)
	return AccountID(e), err
}

// String returns "shard.realm.num".
func (a AccountID) String() string {
	return entityID(a).String()
}

// IsZero reports whether a is 0.0.0.
func (a AccountID) IsZero() bool {
	return a == AccountID{}
}

// TokenID identifies a token.
type TokenID entityID

// TokenIDFromString parses "shard.realm.num".
func TokenIDFromString(s string) (TokenID, error) {
	e, err := parseEntityID(s)
	return TokenID(e), err
}

func (t TokenID) String() string {
	return entityID(t).String()
}

// ContractID identifies a smart contract instance.
type ContractID entityID

// ContractIDFromString parses "shard.realm.num".
func ContractIDFromString(s string) (ContractID, error) {
	e, err := parseEntityID(s)
	return ContractID(e), err
}

func (c ContractID) String() string {
	return entityID(c).String()
}

// NewTokenID creates a TokenID in shard 0, realm 0.
func NewTokenID(num uint64) TokenID {
	return TokenID{Num: num}
}

// IsZero reports whether t is 0.0.0.
func (t TokenID) IsZero() bool {
	return t == TokenID{}
}

// NewContractID creates a ContractID in shard 0, realm 0.
func NewContractID(num uint64) ContractID {
	return ContractID{Num: num}
}

// IsZero reports whether c is 0.0.0.
func (c ContractID) IsZero() bool {
	return c == ContractID{}
}
