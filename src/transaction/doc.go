// Package transaction builds, freezes, signs and submits transactions.
//
// Every operation kind (CryptoTransfer, AccountCreate...) embeds a Template
// holding the properties shared by all transactions: transaction id, target
// nodes, fee, valid duration and memo. The template is mutable until Freeze
// turns it into a Transaction, which binds one copy of the body to each
// target node. From then on the body cannot change and the template rejects
// every mutation with ErrAlreadyFrozen.
//
// A Transaction collects signatures, is serialized with ToBytes for offline
// signing and read back with FromBytes, and is submitted with Execute. The
// execution rotates over the bound nodes until one of them accepts it.
package transaction
