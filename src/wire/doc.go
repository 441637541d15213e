// Package wire defines the messages exchanged between the SDK and network
// nodes, and the codec used to turn them into bytes.
//
// Messages are encoded with msgpack in canonical mode: encoding the same value
// twice produces the same bytes. Transaction bodies are signed in their
// encoded form and nodes verify signatures over the exact bytes they receive.
//
// A transaction travels as a body blob plus a list of signature pairs:
//
//	Transaction{BodyBytes, SigMap}
//
// where BodyBytes is the encoding of a TransactionBody. The body carries a
// TransactionKind discriminant and the kind-specific payload, itself encoded
// with the same codec.
package wire
