// Package store keeps frozen transactions between the moment they are built
// and the moment they are submitted.
//
// A transaction can be frozen and signed on one machine, stored, signed again
// by other key holders and finally executed. Entries are the ToBytes
// serialization of the transaction, keyed by its transaction id.
//
// BadgerStore persists entries in a badger database. InmemStore keeps them in
// memory and is used by tests and one-off commands.
package store
