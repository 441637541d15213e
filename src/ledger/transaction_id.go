package ledger

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTransactionID is returned when a string is not of the form
// "{account}@{seconds}.{nanos}".
var ErrInvalidTransactionID = errors.New("invalid transaction id")

// The valid start of a generated TransactionID is backdated by a random offset
// in [minValidStartOffset, maxValidStartOffset) so that it falls inside the
// window accepted by the receiving node even with some clock skew.
const (
	minValidStartOffset = 8 * time.Second
	maxValidStartOffset = 13 * time.Second
)

// Timestamp is a point in time on the ledger, expressed as seconds and
// nanoseconds since the unix epoch.
type Timestamp struct {
	Seconds int64 `codec:"seconds"`
	Nanos   int32 `codec:"nanos"`
}

// NewTimestamp converts a time.Time into a Timestamp.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{
		Seconds: t.Unix(),
		Nanos:   int32(t.Nanosecond()),
	}
}

// Time converts the Timestamp back into a time.Time.
func (ts Timestamp) Time() time.Time {
	return time.Unix(ts.Seconds, int64(ts.Nanos))
}

func (ts Timestamp) String() string {
	return fmt.Sprintf("%d.%d", ts.Seconds, ts.Nanos)
}

// TransactionID uniquely identifies a transaction by the account paying for it
// and the time from which it is valid. Two TransactionIDs with equal fields
// denote the same logical transaction.
type TransactionID struct {
	AccountID  AccountID `codec:"account"`
	ValidStart Timestamp `codec:"valid_start"`
}

var (
	clock  = time.Now
	jitter = func(n int64) int64 { return rand.Int63n(n) }
)

// GenerateTransactionID creates a TransactionID for the payer whose valid
// start is the current time minus a random offset between 8 and 13 seconds.
func GenerateTransactionID(payer AccountID) TransactionID {
	offset := minValidStartOffset +
		time.Duration(jitter(int64(maxValidStartOffset-minValidStartOffset)))

	return TransactionID{
		AccountID:  payer,
		ValidStart: NewTimestamp(clock().Add(-offset)),
	}
}

// NewTransactionID builds a TransactionID with an explicit valid start.
func NewTransactionID(payer AccountID, validStart time.Time) TransactionID {
	return TransactionID{
		AccountID:  payer,
		ValidStart: NewTimestamp(validStart),
	}
}

// TransactionIDFromString parses the output of TransactionID.String.
func TransactionIDFromString(s string) (TransactionID, error) {
	at := strings.Split(s, "@")
	if len(at) != 2 {
		return TransactionID{}, fmt.Errorf("%w: %q", ErrInvalidTransactionID, s)
	}

	account, err := AccountIDFromString(at[0])
	if err != nil {
		return TransactionID{}, fmt.Errorf("%w: %v", ErrInvalidTransactionID, err)
	}

	ts := strings.Split(at[1], ".")
	if len(ts) != 2 {
		return TransactionID{}, fmt.Errorf("%w: %q", ErrInvalidTransactionID, s)
	}

	seconds, err := strconv.ParseInt(ts[0], 10, 64)
	if err != nil {
		return TransactionID{}, fmt.Errorf("%w: %q", ErrInvalidTransactionID, s)
	}

	nanos, err := strconv.ParseInt(ts[1], 10, 32)
	if err != nil || nanos < 0 || nanos >= int64(time.Second) {
		return TransactionID{}, fmt.Errorf("%w: %q", ErrInvalidTransactionID, s)
	}

	return TransactionID{
		AccountID:  account,
		ValidStart: Timestamp{Seconds: seconds, Nanos: int32(nanos)},
	}, nil
}

// String returns "{account}@{seconds}.{nanos}".
func (id TransactionID) String() string {
	return fmt.Sprintf("%s@%s", id.AccountID, id.ValidStart)
}

// IsZero reports whether id is the empty TransactionID 0.0.0@0.0.
func (id TransactionID) IsZero() bool {
	return id == TransactionID{}
}
