package viewmodel

import (
	"testing"

	"github.com/Veraticus/statement-reader/internal/model"
	"github.com/stretchr/testify/assert"
)

func sampleStatement() []model.Transaction {
	return []model.Transaction{
		txn("2024-03-25", "CAROLYN BESSETE", "100", true),
		txn("2024-03-15", "JOHN DOE", "-450", true),
		txn("2024-03-21", "TOYYIBPAY SDN. BHD.", "380", false),
		txn("2024-03-22", "GRAB", "-12.50", false),
	}
}

func TestTransactionView_Defaults(t *testing.T) {
	v := NewTransactionView(sampleStatement())

	assert.Equal(t, DefaultCriteria(), v.Criteria())
	assert.Equal(t, DefaultSortSpec(), v.SortSpec(SideCredits))
	assert.Equal(t, DefaultSortSpec(), v.SortSpec(SideDebits))
	assert.Equal(t, []string{"TOYYIBPAY SDN. BHD.", "CAROLYN BESSETE"}, names(v.Credits()))
	assert.Equal(t, []string{"JOHN DOE", "GRAB"}, names(v.Debits()))
}

func TestTransactionView_IndependentSorts(t *testing.T) {
	v := NewTransactionView(sampleStatement())

	v.ToggleSort(SideCredits, SortByAmount)
	v.ToggleSort(SideCredits, SortByAmount)

	assert.Equal(t, SortSpec{SortByAmount, SortDescending}, v.SortSpec(SideCredits))
	assert.Equal(t, DefaultSortSpec(), v.SortSpec(SideDebits))
	assert.Equal(t, []string{"TOYYIBPAY SDN. BHD.", "CAROLYN BESSETE"}, names(v.Rows(SideCredits)))
	assert.Equal(t, []string{"JOHN DOE", "GRAB"}, names(v.Rows(SideDebits)))
}

func TestTransactionView_Memoized(t *testing.T) {
	v := NewTransactionView(sampleStatement())

	_ = v.Credits()
	_ = v.Debits()
	base := v.Recomputations()

	_ = v.Credits()
	_ = v.Debits()
	_ = v.Visible()
	assert.Equal(t, base, v.Recomputations(), "unchanged inputs must not recompute")

	v.ToggleSort(SideDebits, SortByAmount)
	_ = v.Credits()
	_ = v.Debits()
	assert.Equal(t, base+1, v.Recomputations(), "only the debit side re-sorts")

	v.SetSearch("o")
	_ = v.Credits()
	_ = v.Debits()
	assert.Equal(t, base+4, v.Recomputations(), "criteria change re-projects and re-sorts both sides")
}

func TestTransactionView_SetTransactionsResetsState(t *testing.T) {
	v := NewTransactionView(sampleStatement())
	v.SetSearch("grab")
	v.CycleCategory()
	v.ToggleSort(SideDebits, SortByAmount)

	v.SetTransactions([]model.Transaction{txn("2024-04-01", "NEW", "1", true)})

	assert.Equal(t, DefaultCriteria(), v.Criteria())
	assert.Equal(t, DefaultSortSpec(), v.SortSpec(SideDebits))
	assert.Equal(t, []string{"NEW"}, names(v.Credits()))
	assert.Empty(t, v.Debits())
	assert.Equal(t, 1, v.Stats().Count)
}

func TestTransactionView_VisibleIsFilteredProjection(t *testing.T) {
	v := NewTransactionView(sampleStatement())
	v.SetCategory(CategoryToyyibPay)

	assert.Equal(t, []string{"TOYYIBPAY SDN. BHD.", "GRAB"}, names(v.Visible()))
}

func TestTransactionView_StatsIgnoreFilter(t *testing.T) {
	v := NewTransactionView(sampleStatement())
	v.SetSearch("nothing matches this")

	stats := v.Stats()
	assert.Empty(t, v.Credits())
	assert.Equal(t, 4, stats.Count)
	assert.Equal(t, "480", stats.TotalCredits.String())
	assert.Equal(t, "-462.5", stats.TotalDebits.String())
}

func TestTransactionView_ZeroRows(t *testing.T) {
	txns := append(sampleStatement(), txn("2024-03-30", "ADJUSTMENT", "0", true))
	v := NewTransactionView(txns)

	assert.Equal(t, []string{"ADJUSTMENT"}, names(v.Zero()))
	assert.NotContains(t, names(v.Visible()), "ADJUSTMENT")
}

func TestTransactionView_SourceNotMutated(t *testing.T) {
	src := sampleStatement()
	v := NewTransactionView(src)
	v.ToggleSort(SideCredits, SortByTransaction)
	_ = v.Credits()

	assert.Equal(t, "CAROLYN BESSETE", src[0].Name)
	assert.Equal(t, "JOHN DOE", src[1].Name)
}

func TestSide(t *testing.T) {
	assert.Equal(t, "Credits", SideCredits.String())
	assert.Equal(t, "Debits", SideDebits.String())
	assert.Equal(t, SideDebits, SideCredits.Other())
	assert.Equal(t, SideCredits, SideDebits.Other())
}
