package viewmodel

import (
	"slices"

	"github.com/Veraticus/statement-reader/internal/model"
)

// Side selects the credit or debit table.
type Side int

const (
	// SideCredits is the money-in table.
	SideCredits Side = iota
	// SideDebits is the money-out table.
	SideDebits
)

// String returns the table title for the side.
func (s Side) String() string {
	if s == SideDebits {
		return "Debits"
	}
	return "Credits"
}

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == SideDebits {
		return SideCredits
	}
	return SideDebits
}

type projectionKey struct {
	criteria Criteria
	revision uint64
}

type sortedKey struct {
	spec     SortSpec
	criteria Criteria
	revision uint64
}

// TransactionView holds one statement plus the user's criteria and sort state
// and caches every derived projection. Derived slices are recomputed only when
// the inputs they depend on change. Not safe for concurrent use.
type TransactionView struct {
	transactions []model.Transaction
	sorts        [2]SortSpec
	sorted       [2][]model.Transaction
	sortedFor    [2]*sortedKey
	criteria     Criteria
	projection   Projection
	projectedFor *projectionKey
	stats        Stats
	statsFor     *uint64
	revision     uint64

	recomputations int
}

// NewTransactionView creates a view over txns with default criteria and sorting.
func NewTransactionView(txns []model.Transaction) *TransactionView {
	v := &TransactionView{}
	v.SetTransactions(txns)
	return v
}

// SetTransactions replaces the statement and resets criteria and sorting.
func (v *TransactionView) SetTransactions(txns []model.Transaction) {
	v.transactions = slices.Clone(txns)
	v.revision++
	v.criteria = DefaultCriteria()
	v.sorts = [2]SortSpec{DefaultSortSpec(), DefaultSortSpec()}
}

// Transactions returns the full, unfiltered statement.
func (v *TransactionView) Transactions() []model.Transaction {
	return v.transactions
}

// Criteria returns the current filter criteria.
func (v *TransactionView) Criteria() Criteria {
	return v.criteria
}

// SetCriteria replaces the filter criteria.
func (v *TransactionView) SetCriteria(c Criteria) {
	if c.Category == "" {
		c.Category = CategoryAll
	}
	v.criteria = c
}

// SetSearch updates the search text.
func (v *TransactionView) SetSearch(text string) {
	v.criteria.SearchText = text
}

// SetCategory updates the category filter.
func (v *TransactionView) SetCategory(c CategoryFilter) {
	v.criteria.Category = c
}

// CycleCategory advances the category filter and returns the new value.
func (v *TransactionView) CycleCategory() CategoryFilter {
	v.criteria.Category = v.criteria.Category.Next()
	return v.criteria.Category
}

// SortSpec returns the sort state of one side.
func (v *TransactionView) SortSpec(side Side) SortSpec {
	return v.sorts[side]
}

// SetSortSpec replaces the sort state of one side.
func (v *TransactionView) SetSortSpec(side Side, spec SortSpec) {
	v.sorts[side] = spec
}

// ToggleSort applies a column click to one side and returns the new spec.
func (v *TransactionView) ToggleSort(side Side, key SortKey) SortSpec {
	v.sorts[side] = v.sorts[side].Toggle(key)
	return v.sorts[side]
}

// Credits returns the filtered, sorted credits.
func (v *TransactionView) Credits() []model.Transaction {
	return v.sortedSide(SideCredits)
}

// Debits returns the filtered, sorted debits.
func (v *TransactionView) Debits() []model.Transaction {
	return v.sortedSide(SideDebits)
}

// Rows returns the filtered, sorted rows of one side.
func (v *TransactionView) Rows(side Side) []model.Transaction {
	return v.sortedSide(side)
}

// Zero returns filtered transactions with a zero amount.
func (v *TransactionView) Zero() []model.Transaction {
	return v.project().Zero
}

// Visible returns what an export should receive: sorted credits followed by
// sorted debits.
func (v *TransactionView) Visible() []model.Transaction {
	credits := v.Credits()
	debits := v.Debits()
	visible := make([]model.Transaction, 0, len(credits)+len(debits))
	visible = append(visible, credits...)
	return append(visible, debits...)
}

// Stats returns summary figures over the unfiltered statement.
func (v *TransactionView) Stats() Stats {
	if v.statsFor == nil || *v.statsFor != v.revision {
		v.stats = ComputeStats(v.transactions)
		rev := v.revision
		v.statsFor = &rev
	}
	return v.stats
}

// Recomputations counts projection and sort passes; used to verify caching.
func (v *TransactionView) Recomputations() int {
	return v.recomputations
}

func (v *TransactionView) project() Projection {
	key := projectionKey{revision: v.revision, criteria: v.criteria}
	if v.projectedFor == nil || *v.projectedFor != key {
		v.projection = Project(v.transactions, v.criteria)
		v.projectedFor = &key
		v.recomputations++
	}
	return v.projection
}

func (v *TransactionView) sortedSide(side Side) []model.Transaction {
	p := v.project()
	key := sortedKey{revision: v.revision, criteria: v.criteria, spec: v.sorts[side]}
	if v.sortedFor[side] == nil || *v.sortedFor[side] != key {
		rows := p.Credits
		if side == SideDebits {
			rows = p.Debits
		}
		v.sorted[side] = SortTransactions(rows, v.sorts[side])
		v.sortedFor[side] = &key
		v.recomputations++
	}
	return v.sorted[side]
}
