// Package query reads the state of the network.
//
// Free queries, such as AccountBalanceQuery, are sent as they are. Paid
// queries first negotiate their payment: unless an amount was set with
// SetQueryPayment, the query asks a node for its cost with a COST_ANSWER
// probe, checks it against the maximum the caller accepts, and builds one
// signed CryptoTransfer per target node paying that node. The payments and
// the target nodes then rotate in lock-step across attempts.
package query
