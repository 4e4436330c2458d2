package viewmodel

import (
	"github.com/Veraticus/statement-reader/internal/model"
	"github.com/shopspring/decimal"
)

// Stats represents the summary bar figures for a whole statement.
type Stats struct {
	TotalCredits decimal.Decimal
	TotalDebits  decimal.Decimal // Sum of negative amounts, so never positive
	Count        int
	CreditCount  int
	DebitCount   int
	ZeroCount    int
}

// ComputeStats sums credits and debits over the unfiltered list.
func ComputeStats(txns []model.Transaction) Stats {
	stats := Stats{
		Count:        len(txns),
		TotalCredits: decimal.Zero,
		TotalDebits:  decimal.Zero,
	}

	for _, t := range txns {
		switch t.Direction() {
		case model.DirectionCredit:
			stats.TotalCredits = stats.TotalCredits.Add(t.Amount)
			stats.CreditCount++
		case model.DirectionDebit:
			stats.TotalDebits = stats.TotalDebits.Add(t.Amount)
			stats.DebitCount++
		default:
			stats.ZeroCount++
		}
	}

	return stats
}
