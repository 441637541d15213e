package ledger

import (
	"errors"
	"math"
	"strconv"
)

// ErrNegativeAmount is returned by setters that only accept positive amounts.
var ErrNegativeAmount = errors.New("amount must not be negative")

// Amount is a quantity of hbar expressed in tinybars.
type Amount int64

// Denominations.
const (
	Tinybar Amount = 1
	Hbar    Amount = 100_000_000
)

// HbarFrom converts a number of hbars into an Amount, rounding to the nearest
// tinybar.
func HbarFrom(hbars float64) Amount {
	return Amount(math.Round(hbars * float64(Hbar)))
}

// Tinybars returns the amount as a raw number of tinybars.
func (a Amount) Tinybars() int64 {
	return int64(a)
}

// AsHbar returns the amount in hbars.
func (a Amount) AsHbar() float64 {
	return float64(a) / float64(Hbar)
}

// Negated returns -a.
func (a Amount) Negated() Amount {
	return -a
}

func (a Amount) String() string {
	return strconv.FormatFloat(a.AsHbar(), 'f', -1, 64) + " ℏ"
}
