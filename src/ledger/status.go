package ledger

import "fmt"

// Status is the code returned by a node, either synchronously as the
// precheck result of a request or later as the consensus outcome recorded in
// a receipt.
type Status int32

// Status codes.
const (
	StatusOK Status = iota
	StatusInvalidTransaction
	StatusPayerAccountNotFound
	StatusInvalidNodeAccount
	StatusTransactionExpired
	StatusInvalidTransactionStart
	StatusInvalidTransactionDuration
	StatusInvalidSignature
	StatusMemoTooLong
	StatusInsufficientTxFee
	StatusInsufficientPayerBalance
	StatusDuplicateTransaction
	StatusBusy
	StatusNotSupported
	StatusInvalidAccountID
	StatusInsufficientQueryPayment
	StatusPlatformTransactionNotCreated
	StatusPlatformNotActive
	StatusUnknown
	StatusSuccess
	StatusReceiptNotFound
	StatusRecordNotFound
	StatusInvalidTokenID
	StatusTokenWasDeleted
	StatusInvalidContractID
	StatusInvalidLiveHash
	StatusTransferAccountSameAsDeleteAccount
	StatusInvalidAccountAmounts
)

var statusNames = map[Status]string{
	StatusOK:                                 "OK",
	StatusInvalidTransaction:                 "INVALID_TRANSACTION",
	StatusPayerAccountNotFound:               "PAYER_ACCOUNT_NOT_FOUND",
	StatusInvalidNodeAccount:                 "INVALID_NODE_ACCOUNT",
	StatusTransactionExpired:                 "TRANSACTION_EXPIRED",
	StatusInvalidTransactionStart:            "INVALID_TRANSACTION_START",
	StatusInvalidTransactionDuration:         "INVALID_TRANSACTION_DURATION",
	StatusInvalidSignature:                   "INVALID_SIGNATURE",
	StatusMemoTooLong:                        "MEMO_TOO_LONG",
	StatusInsufficientTxFee:                  "INSUFFICIENT_TX_FEE",
	StatusInsufficientPayerBalance:           "INSUFFICIENT_PAYER_BALANCE",
	StatusDuplicateTransaction:               "DUPLICATE_TRANSACTION",
	StatusBusy:                               "BUSY",
	StatusNotSupported:                       "NOT_SUPPORTED",
	StatusInvalidAccountID:                   "INVALID_ACCOUNT_ID",
	StatusInsufficientQueryPayment:           "INSUFFICIENT_QUERY_PAYMENT",
	StatusPlatformTransactionNotCreated:      "PLATFORM_TRANSACTION_NOT_CREATED",
	StatusPlatformNotActive:                  "PLATFORM_NOT_ACTIVE",
	StatusUnknown:                            "UNKNOWN",
	StatusSuccess:                            "SUCCESS",
	StatusReceiptNotFound:                    "RECEIPT_NOT_FOUND",
	StatusRecordNotFound:                     "RECORD_NOT_FOUND",
	StatusInvalidTokenID:                     "INVALID_TOKEN_ID",
	StatusTokenWasDeleted:                    "TOKEN_WAS_DELETED",
	StatusInvalidContractID:                  "INVALID_CONTRACT_ID",
	StatusInvalidLiveHash:                    "INVALID_LIVE_HASH",
	StatusTransferAccountSameAsDeleteAccount: "TRANSFER_ACCOUNT_SAME_AS_DELETE_ACCOUNT",
	StatusInvalidAccountAmounts:              "INVALID_ACCOUNT_AMOUNTS",
}

var statusByName map[string]Status

func init() {
	statusByName = make(map[string]Status, len(statusNames))
	for s, n := range statusNames {
		statusByName[n] = s
	}
}

// DefaultRetryableStatuses are the precheck codes that signal a transient
// unavailability of the node rather than a problem with the request.
var DefaultRetryableStatuses = []Status{
	StatusBusy,
	StatusPlatformTransactionNotCreated,
	StatusPlatformNotActive,
	StatusUnknown,
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("STATUS(%d)", int32(s))
}

// StatusFromString returns the Status with the given name, as printed by
// Status.String.
func StatusFromString(name string) (Status, error) {
	s, ok := statusByName[name]
	if !ok {
		return 0, fmt.Errorf("unknown status %q", name)
	}
	return s, nil
}
