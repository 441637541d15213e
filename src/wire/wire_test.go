package wire

import (
	"bytes"
	"testing"

	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBody() TransactionBody {
	return TransactionBody{
		TransactionID: ledger.TransactionID{
			AccountID:  ledger.NewAccountID(2),
			ValidStart: ledger.Timestamp{Seconds: 1600000000, Nanos: 7},
		},
		NodeAccountID:        ledger.NewAccountID(3),
		TransactionFee:       uint64(ledger.Hbar),
		ValidDurationSeconds: 120,
		Memo:                 "memo",
		Kind:                 KindCryptoTransfer,
		Data:                 []byte{1, 2, 3},
	}
}

func TestMarshalDeterministic(t *testing.T) {
	body := testBody()

	b1, err := Marshal(&body)
	require.NoError(t, err)
	b2, err := Marshal(&body)
	require.NoError(t, err)

	if !bytes.Equal(b1, b2) {
		t.Fatalf("encoding the same body twice should produce the same bytes")
	}

	var out TransactionBody
	require.NoError(t, Unmarshal(b1, &out))
	assert.Equal(t, body, out)
}

func TestBodyDiffersOnlyInNode(t *testing.T) {
	body := testBody()
	b1, err := Marshal(&body)
	require.NoError(t, err)

	body.NodeAccountID = ledger.NewAccountID(4)
	b2, err := Marshal(&body)
	require.NoError(t, err)

	require.Equal(t, len(b1), len(b2))

	diff := 0
	for i := range b1 {
		if b1[i] != b2[i] {
			diff++
		}
	}
	if diff != 1 {
		t.Fatalf("expected exactly one differing byte, got %d", diff)
	}
}

func TestTransactionBody(t *testing.T) {
	body := testBody()
	bodyBytes, err := Marshal(&body)
	require.NoError(t, err)

	tx := Transaction{
		BodyBytes: bodyBytes,
		SigMap: []SignaturePair{
			{PubKeyPrefix: []byte{0xaa}, Signature: []byte{0xbb}},
		},
	}

	decoded, err := tx.Body()
	require.NoError(t, err)
	assert.Equal(t, body, *decoded)

	_, err = (&Transaction{BodyBytes: []byte{0xc1}}).Body()
	assert.Error(t, err)
}

func TestQueryRoundTrip(t *testing.T) {
	data, err := Marshal(&AccountBalanceQuery{AccountID: ledger.NewAccountID(1001)})
	require.NoError(t, err)

	q := Query{
		Header: QueryHeader{ResponseType: CostAnswer},
		Kind:   QueryAccountBalance,
		Data:   data,
	}

	b, err := Marshal(&q)
	require.NoError(t, err)

	var out Query
	require.NoError(t, Unmarshal(b, &out))
	assert.Equal(t, CostAnswer, out.Header.ResponseType)
	assert.Nil(t, out.Header.Payment)
	assert.Equal(t, QueryAccountBalance, out.Kind)

	var payload AccountBalanceQuery
	require.NoError(t, Unmarshal(out.Data, &payload))
	assert.Equal(t, ledger.NewAccountID(1001), payload.AccountID)
}

func TestMarshalJSON(t *testing.T) {
	body := testBody()
	js, err := MarshalJSON(&body)
	require.NoError(t, err)
	assert.Contains(t, string(js), `"memo"`)
	assert.Contains(t, string(js), `"valid_duration"`)
	assert.Contains(t, string(js), "\n  ")

	// map keys are sorted
	js, err = MarshalJSON(map[string]int{"b": 1, "a": 2, "c": 3})
	require.NoError(t, err)
	a, b, c := bytes.Index(js, []byte(`"a"`)), bytes.Index(js, []byte(`"b"`)), bytes.Index(js, []byte(`"c"`))
	assert.True(t, a >= 0 && a < b && b < c, "keys out of order: %s", js)
}

func TestReceiptPrecheck(t *testing.T) {
	answer := func(s ledger.Status) []byte {
		data, err := Marshal(&TransactionReceiptResponse{Receipt: Receipt{Status: s}})
		require.NoError(t, err)
		return data
	}

	cases := []struct {
		name string
		resp Response
		want ledger.Status
	}{
		{"busy", Response{Header: ResponseHeader{Precheck: ledger.StatusBusy}}, ledger.StatusBusy},
		{"pending", Response{Data: answer(ledger.StatusUnknown)}, ledger.StatusUnknown},
		{"success", Response{Data: answer(ledger.StatusSuccess)}, ledger.StatusOK},
		{"failed", Response{Data: answer(ledger.StatusInsufficientPayerBalance)}, ledger.StatusOK},
		{"garbage", Response{Data: []byte{0xc1}}, ledger.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ReceiptPrecheck(&tc.resp))
		})
	}
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "CryptoTransfer", KindCryptoTransfer.String())
	assert.Equal(t, "TransactionKind(99)", TransactionKind(99).String())
	assert.Equal(t, "COST_ANSWER", CostAnswer.String())
	assert.Equal(t, "LiveHash", QueryLiveHash.String())
}
