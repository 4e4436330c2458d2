package viewmodel

import (
	"testing"

	"github.com/Veraticus/statement-reader/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name        string
		txns        []model.Transaction
		wantCount   int
		wantCredits string
		wantDebits  string
		wantZero    int
	}{
		{
			name:        "empty statement",
			txns:        nil,
			wantCount:   0,
			wantCredits: "0",
			wantDebits:  "0",
		},
		{
			name: "mixed statement",
			txns: []model.Transaction{
				txn("2024-01-01", "A", "100.10", true),
				txn("2024-01-02", "B", "-50.05", false),
				txn("2024-01-03", "C", "0.20", true),
				txn("2024-01-04", "D", "-0.05", true),
			},
			wantCount:   4,
			wantCredits: "100.3",
			wantDebits:  "-50.1",
		},
		{
			name: "zero amounts counted but not summed",
			txns: []model.Transaction{
				txn("2024-01-01", "A", "0", true),
				txn("2024-01-02", "B", "10", true),
			},
			wantCount:   2,
			wantCredits: "10",
			wantDebits:  "0",
			wantZero:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := ComputeStats(tt.txns)
			assert.Equal(t, tt.wantCount, stats.Count)
			assert.Equal(t, tt.wantCredits, stats.TotalCredits.String())
			assert.Equal(t, tt.wantDebits, stats.TotalDebits.String())
			assert.Equal(t, tt.wantZero, stats.ZeroCount)
		})
	}
}
