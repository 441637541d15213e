// Package config defines the configuration of a client.
//
// The same Config object serves programs embedding the SDK and the hashgraph
// command line tool. It can be built in code, starting from NewDefaultConfig,
// or loaded from a file with Load. The data directory, defined by
// Config.DataDir, holds a few additional files:
//
//  priv_key  // a plain text file containing the operator's private key (cf. hashgraph keygen).
//  badger_db // the database of frozen transactions waiting for signatures.
//
// A configuration file in YAML looks like:
//
//  network:
//    - address: 127.0.0.1:50211
//      account: 0.0.3
//    - address: 127.0.0.1:50212
//      account: 0.0.4
//  operator:
//    account: 0.0.2
//    private-key: ed25519:302e0201...
//  max-attempts: 5
//  retryable-statuses: [BUSY, UNKNOWN]
package config
