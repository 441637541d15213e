// Package service serves a simulated network over HTTP.
//
// Routes:
//
//	/metrics            prometheus collectors of the SDK
//	/stats              requests received by every node
//	/balance/<account>  balance of an account, e.g. /balance/0.0.1001
//	/receipt/<txid>     receipt of a transaction
package service
