// Package ledger defines the value types shared by every part of the SDK:
// entity identifiers (accounts, tokens, contracts), transaction identifiers,
// hbar amounts and the status codes returned by network nodes.
//
// All the types in this package are immutable values. They are comparable and
// can be used as map keys.
package ledger
