package wire

import (
	"fmt"

	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
)

// ResponseType selects what a node returns for a query.
type ResponseType uint8

// Response types.
const (
	// AnswerOnly asks for the answer. The query must carry a payment if
	// the query kind is not free.
	AnswerOnly ResponseType = iota
	// CostAnswer only asks for the cost of answering the query.
	CostAnswer
)

func (r ResponseType) String() string {
	switch r {
	case AnswerOnly:
		return "ANSWER_ONLY"
	case CostAnswer:
		return "COST_ANSWER"
	default:
		return fmt.Sprintf("ResponseType(%d)", uint8(r))
	}
}

// QueryKind discriminates the payload of a Query and its Response.
type QueryKind uint16

// Query kinds.
const (
	QueryNone QueryKind = iota
	QueryAccountBalance
	QueryTransactionReceipt
	QueryTransactionRecord
	QueryLiveHash
	QueryContractRecords
	QueryTokenInfo
)

func (k QueryKind) String() string {
	switch k {
	case QueryNone:
		return "None"
	case QueryAccountBalance:
		return "AccountBalance"
	case QueryTransactionReceipt:
		return "TransactionReceipt"
	case QueryTransactionRecord:
		return "TransactionRecord"
	case QueryLiveHash:
		return "LiveHash"
	case QueryContractRecords:
		return "ContractRecords"
	case QueryTokenInfo:
		return "TokenInfo"
	default:
		return fmt.Sprintf("QueryKind(%d)", uint16(k))
	}
}

// QueryHeader is common to all queries.
type QueryHeader struct {
	ResponseType ResponseType `codec:"response_type"`
	Payment      *Transaction `codec:"payment"`
}

// Query is a request for information. Data is the encoded kind-specific
// payload.
type Query struct {
	Header QueryHeader `codec:"header"`
	Kind   QueryKind   `codec:"kind"`
	Data   []byte      `codec:"data"`
}

// ResponseHeader is common to all responses.
type ResponseHeader struct {
	Precheck     ledger.Status `codec:"precheck"`
	ResponseType ResponseType  `codec:"response_type"`
	Cost         uint64        `codec:"cost"`
}

// Response answers a Query.
type Response struct {
	Header ResponseHeader `codec:"header"`
	Kind   QueryKind      `codec:"kind"`
	Data   []byte         `codec:"data"`
}

// AccountBalanceQuery asks for the balance of an account.
type AccountBalanceQuery struct {
	AccountID ledger.AccountID `codec:"account_id"`
}

// AccountBalanceResponse answers an AccountBalanceQuery.
type AccountBalanceResponse struct {
	AccountID ledger.AccountID `codec:"account_id"`
	Balance   ledger.Amount    `codec:"balance"`
}

// TransactionReceiptQuery asks for the receipt of a transaction.
type TransactionReceiptQuery struct {
	TransactionID ledger.TransactionID `codec:"transaction_id"`
}

// Receipt summarizes the consensus outcome of a transaction.
type Receipt struct {
	Status     ledger.Status      `codec:"status"`
	AccountID  *ledger.AccountID  `codec:"account_id"`
	TokenID    *ledger.TokenID    `codec:"token_id"`
	ContractID *ledger.ContractID `codec:"contract_id"`
}

// TransactionReceiptResponse answers a TransactionReceiptQuery.
type TransactionReceiptResponse struct {
	Receipt Receipt `codec:"receipt"`
}

// ReceiptPrecheck returns the status a receipt answer is retried on: the
// precheck, or UNKNOWN while the receipt has not reached consensus. Data that
// cannot be decoded gives OK, leaving the error to the decoding of the answer.
func ReceiptPrecheck(resp *Response) ledger.Status {
	if resp.Header.Precheck != ledger.StatusOK {
		return resp.Header.Precheck
	}
	var answer TransactionReceiptResponse
	if err := Unmarshal(resp.Data, &answer); err == nil && answer.Receipt.Status == ledger.StatusUnknown {
		return ledger.StatusUnknown
	}
	return ledger.StatusOK
}

// TransactionRecordQuery asks for the full record of a transaction.
type TransactionRecordQuery struct {
	TransactionID ledger.TransactionID `codec:"transaction_id"`
}

// Record is the full outcome of a transaction.
type Record struct {
	Receipt            Receipt              `codec:"receipt"`
	TransactionHash    []byte               `codec:"transaction_hash"`
	ConsensusTimestamp ledger.Timestamp     `codec:"consensus_timestamp"`
	TransactionID      ledger.TransactionID `codec:"transaction_id"`
	Memo               string               `codec:"memo"`
	TransactionFee     uint64               `codec:"transaction_fee"`
	Transfers          []AccountAmount      `codec:"transfers"`
}

// TransactionRecordResponse answers a TransactionRecordQuery.
type TransactionRecordResponse struct {
	Record Record `codec:"record"`
}

// LiveHashQuery asks for a LiveHash attached to an account.
type LiveHashQuery struct {
	AccountID ledger.AccountID `codec:"account_id"`
	Hash      []byte           `codec:"hash"`
}

// LiveHashResponse answers a LiveHashQuery.
type LiveHashResponse struct {
	LiveHash LiveHash `codec:"live_hash"`
}

// ContractRecordsQuery asks for the records of the transactions that called
// a contract.
type ContractRecordsQuery struct {
	ContractID ledger.ContractID `codec:"contract_id"`
}

// ContractRecordsResponse answers a ContractRecordsQuery.
type ContractRecordsResponse struct {
	ContractID ledger.ContractID `codec:"contract_id"`
	Records    []Record          `codec:"records"`
}

// TokenInfoQuery asks for the properties of a token.
type TokenInfoQuery struct {
	TokenID ledger.TokenID `codec:"token_id"`
}

// TokenInfo describes a token.
type TokenInfo struct {
	TokenID     ledger.TokenID   `codec:"token_id"`
	Name        string           `codec:"name"`
	Symbol      string           `codec:"symbol"`
	Decimals    uint32           `codec:"decimals"`
	TotalSupply uint64           `codec:"total_supply"`
	Treasury    ledger.AccountID `codec:"treasury"`
	AdminKey    []byte           `codec:"admin_key"`
	Deleted     bool             `codec:"deleted"`
}

// TokenInfoResponse answers a TokenInfoQuery.
type TokenInfoResponse struct {
	TokenInfo TokenInfo `codec:"token_info"`
}
