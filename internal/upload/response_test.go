package upload

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Veraticus/statement-reader/internal/common"
	"github.com/Veraticus/statement-reader/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResponse(t *testing.T) {
	body := `{"transactions": [
		{"date": "2024-03-15", "transaction": "TRANSFER FROM A/C", "description": "CAROLYN", "amount": 100.00, "is_direct": true},
		{"date": "2024-03-16", "transaction": "TOYYIBPAY", "amount": -45.5, "is_direct": false},
		{"date": "2024-03-17", "transaction": "FEE", "description": null, "amount": 0, "is_direct": false, "category": "transfer_out"}
	]}`

	txns, err := DecodeResponse(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, txns, 3)

	assert.Equal(t, "2024-03-15", txns[0].Date)
	assert.Equal(t, "TRANSFER FROM A/C", txns[0].Name)
	assert.Equal(t, "CAROLYN", txns[0].Description)
	assert.True(t, txns[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.True(t, txns[0].IsDirect)

	assert.Empty(t, txns[1].Description)
	assert.Equal(t, "-45.5", txns[1].Amount.String())
	assert.Empty(t, txns[2].Description)
	assert.True(t, txns[2].Amount.IsZero())
}

func TestDecodeResponse_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{
			name: "not json",
			body: `<html>bad gateway</html>`,
		},
		{
			name:      "missing transactions",
			body:      `{"items": []}`,
			wantField: "transactions",
		},
		{
			name:      "null transactions",
			body:      `{"transactions": null}`,
			wantField: "transactions",
		},
		{
			name:      "missing amount",
			body:      `{"transactions": [{"date": "2024-01-01", "transaction": "X", "is_direct": true}]}`,
			wantField: "transactions[0].amount",
		},
		{
			name:      "empty transaction name",
			body:      `{"transactions": [{"date": "2024-01-01", "transaction": " ", "amount": 1, "is_direct": true}]}`,
			wantField: "transactions[0].transaction",
		},
		{
			name: "missing is_direct on second row",
			body: `{"transactions": [
				{"date": "2024-01-01", "transaction": "X", "amount": 1, "is_direct": true},
				{"date": "2024-01-02", "transaction": "Y", "amount": 2}
			]}`,
			wantField: "transactions[1].is_direct",
		},
		{
			name:      "missing date",
			body:      `{"transactions": [{"transaction": "X", "amount": 1, "is_direct": true}]}`,
			wantField: "transactions[0].date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeResponse(strings.NewReader(tt.body))
			require.Error(t, err)

			var valErr *common.ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tt.wantField, valErr.Field)
		})
	}
}

func TestDecodeResponse_Empty(t *testing.T) {
	txns, err := DecodeResponse(strings.NewReader(`{"transactions": []}`))
	require.NoError(t, err)
	assert.NotNil(t, txns)
	assert.Empty(t, txns)
}

func TestEncodeResponse(t *testing.T) {
	in := []model.Transaction{
		{Date: "2024-03-15", Name: "CAROLYN", Amount: decimal.RequireFromString("100.25"), IsDirect: true},
		{Date: "2024-03-16", Name: "GRAB", Description: "ride", Amount: decimal.RequireFromString("-12.5")},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeResponse(&buf, in))
	assert.Contains(t, buf.String(), `"amount": 100.25`)
	assert.Contains(t, buf.String(), `"transaction": "GRAB"`)

	out, err := DecodeResponse(&buf)
	require.NoError(t, err)
	require.Len(t, out, 2)
	for i := range in {
		assert.Equal(t, in[i].Date, out[i].Date)
		assert.Equal(t, in[i].Name, out[i].Name)
		assert.Equal(t, in[i].Description, out[i].Description)
		assert.Equal(t, in[i].IsDirect, out[i].IsDirect)
		assert.True(t, in[i].Amount.Equal(out[i].Amount))
	}
}

func TestErrorDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string detail", `{"detail": "Unsupported file"}`, "Unsupported file"},
		{"validation list", `{"detail": [{"loc": ["body", "file"], "msg": "field required"}, {"msg": "bad type"}]}`, "field required; bad type"},
		{"no detail", `{"error": "boom"}`, ""},
		{"not json", `Internal Server Error`, ""},
		{"object detail", `{"detail": {"code": 1}}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorDetail([]byte(tt.body)))
		})
	}
}
