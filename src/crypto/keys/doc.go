// Package keys implements the public key cryptography used to sign
// transactions and query payments.
//
// Two kinds of keys are supported: Ed25519, which is the default for ledger
// accounts, and ECDSA over the secp256k1 curve, the curve used by Bitcoin and
// Ethereum. Both implement PrivateKey and PublicKey, so the rest of the SDK
// never needs to know which algorithm an operator uses.
//
// Keys have a text form "<algorithm>:<hex>", for example
//
//	ed25519:9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60
//	secp256k1:3f1c...
//
// A bare hex string is read as an Ed25519 key.
package keys
