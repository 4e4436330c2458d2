// Package model defines the transaction types returned by the extraction service.
package model

import (
	"github.com/shopspring/decimal"
)

// Category labels derived from the IsDirect flag.
const (
	CategoryDirect    = "DIRECT"
	CategoryToyyibPay = "TOYYIBPAY"
)

// Direction classifies a transaction by the sign of its amount.
type Direction int

const (
	// DirectionZero is an amount of exactly zero.
	DirectionZero Direction = iota
	// DirectionCredit is money in (amount > 0).
	DirectionCredit
	// DirectionDebit is money out (amount < 0).
	DirectionDebit
)

// String returns the lower-case name of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionCredit:
		return "credit"
	case DirectionDebit:
		return "debit"
	default:
		return "zero"
	}
}

// Transaction represents a single statement line as extracted from a PDF.
// Values are treated as immutable once decoded.
type Transaction struct {
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`        // Display-formatted, never parsed for filtering
	Name        string          `json:"transaction"` // Counterparty label
	Description string          `json:"description"`
	IsDirect    bool            `json:"is_direct"`
}

// Category returns the display label for the transaction's channel.
func (t Transaction) Category() string {
	if t.IsDirect {
		return CategoryDirect
	}
	return CategoryToyyibPay
}

// Direction returns whether the transaction is a credit, debit or zero amount.
func (t Transaction) Direction() Direction {
	switch t.Amount.Sign() {
	case 1:
		return DirectionCredit
	case -1:
		return DirectionDebit
	default:
		return DirectionZero
	}
}

// IsCredit reports whether money came in.
func (t Transaction) IsCredit() bool {
	return t.Direction() == DirectionCredit
}

// IsDebit reports whether money went out.
func (t Transaction) IsDebit() bool {
	return t.Direction() == DirectionDebit
}

// Split partitions transactions into credits and debits, preserving order.
// Zero-amount transactions are returned separately.
func Split(txns []Transaction) (credits, debits, zero []Transaction) {
	for _, t := range txns {
		switch t.Direction() {
		case DirectionCredit:
			credits = append(credits, t)
		case DirectionDebit:
			debits = append(debits, t)
		default:
			zero = append(zero, t)
		}
	}
	return credits, debits, zero
}
