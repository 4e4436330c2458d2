package upload

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/statement-reader/internal/common"
	"github.com/Veraticus/statement-reader/internal/model"
	"github.com/shopspring/decimal"
)

// wireTransaction mirrors the service payload with every field optional so
// missing values can be reported instead of silently zeroed.
type wireTransaction struct {
	Date        *string          `json:"date"`
	Transaction *string          `json:"transaction"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	IsDirect    *bool            `json:"is_direct"`
}

type wireResponse struct {
	Transactions *[]wireTransaction `json:"transactions"`
}

// savedTransaction is the on-disk shape written by EncodeResponse; amounts are
// plain JSON numbers like the service returns.
type savedTransaction struct {
	Date        string      `json:"date"`
	Transaction string      `json:"transaction"`
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	IsDirect    bool        `json:"is_direct"`
}

type savedResponse struct {
	Transactions []savedTransaction `json:"transactions"`
}

// DecodeResponse reads and validates a {"transactions": [...]} payload.
func DecodeResponse(r io.Reader) ([]model.Transaction, error) {
	var resp wireResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, &common.ValidationError{Message: fmt.Sprintf("malformed response: %v", err)}
	}
	if resp.Transactions == nil {
		return nil, common.NewValidationError("transactions", "is missing from the response")
	}

	txns := make([]model.Transaction, 0, len(*resp.Transactions))
	for i, w := range *resp.Transactions {
		t, err := w.toModel(i)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}

	return txns, nil
}

func (w wireTransaction) toModel(index int) (model.Transaction, error) {
	field := func(name string) string {
		return fmt.Sprintf("transactions[%d].%s", index, name)
	}

	if w.Date == nil {
		return model.Transaction{}, common.NewValidationError(field("date"), "is required")
	}
	if w.Transaction == nil || strings.TrimSpace(*w.Transaction) == "" {
		return model.Transaction{}, common.NewValidationError(field("transaction"), "must be a non-empty string")
	}
	if w.Amount == nil {
		return model.Transaction{}, common.NewValidationError(field("amount"), "is required")
	}
	if w.IsDirect == nil {
		return model.Transaction{}, common.NewValidationError(field("is_direct"), "is required")
	}

	t := model.Transaction{
		Date:     *w.Date,
		Name:     *w.Transaction,
		Amount:   *w.Amount,
		IsDirect: *w.IsDirect,
	}
	if w.Description != nil {
		t.Description = *w.Description
	}
	return t, nil
}

// EncodeResponse writes transactions in the service's response shape.
func EncodeResponse(w io.Writer, txns []model.Transaction) error {
	out := savedResponse{Transactions: make([]savedTransaction, 0, len(txns))}
	for _, t := range txns {
		out.Transactions = append(out.Transactions, savedTransaction{
			Date:        t.Date,
			Transaction: t.Name,
			Amount:      json.Number(t.Amount.String()),
			Description: t.Description,
			IsDirect:    t.IsDirect,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// errorDetail extracts a message from an error body. The service sends
// {"detail": "..."} for handled failures and a list of {"msg": ...} objects
// for request validation failures.
func errorDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(payload.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}
