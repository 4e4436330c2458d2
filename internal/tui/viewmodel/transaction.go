// Package viewmodel derives the filtered, split and sorted projections of a
// statement that the terminal UI and the exporters consume.
package viewmodel

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/statement-reader/internal/model"
)

// CategoryFilter restricts a projection to one channel.
type CategoryFilter string

const (
	// CategoryAll keeps every transaction.
	CategoryAll CategoryFilter = "all"
	// CategoryDirect keeps transactions with IsDirect set.
	CategoryDirect CategoryFilter = "direct"
	// CategoryToyyibPay keeps payment gateway transactions.
	CategoryToyyibPay CategoryFilter = "toyyibpay"
)

// ParseCategoryFilter accepts all, direct or toyyibpay (case-insensitive).
func ParseCategoryFilter(s string) (CategoryFilter, error) {
	switch CategoryFilter(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryAll, "":
		return CategoryAll, nil
	case CategoryDirect:
		return CategoryDirect, nil
	case CategoryToyyibPay:
		return CategoryToyyibPay, nil
	default:
		return CategoryAll, fmt.Errorf("unknown category filter %q (want all, direct or toyyibpay)", s)
	}
}

// Next cycles all -> direct -> toyyibpay -> all.
func (c CategoryFilter) Next() CategoryFilter {
	switch c {
	case CategoryAll:
		return CategoryDirect
	case CategoryDirect:
		return CategoryToyyibPay
	default:
		return CategoryAll
	}
}

// Label is the text shown in the UI for the filter.
func (c CategoryFilter) Label() string {
	switch c {
	case CategoryDirect:
		return model.CategoryDirect
	case CategoryToyyibPay:
		return model.CategoryToyyibPay
	default:
		return "ALL"
	}
}

// SortKey is a sortable column.
type SortKey string

// Sortable columns.
const (
	SortByDate        SortKey = "date"
	SortByTransaction SortKey = "transaction"
	SortByAmount      SortKey = "amount"
	SortByDescription SortKey = "description"
	SortByCategory    SortKey = "category"
)

// SortKeys lists the columns in display order.
var SortKeys = []SortKey{SortByDate, SortByTransaction, SortByAmount, SortByDescription, SortByCategory}

// SortDirection is ascending or descending.
type SortDirection string

// Sort directions.
const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// SortSpec describes how one side of the projection is ordered.
type SortSpec struct {
	Key       SortKey
	Direction SortDirection
}

// DefaultSortSpec sorts by date, ascending.
func DefaultSortSpec() SortSpec {
	return SortSpec{Key: SortByDate, Direction: SortAscending}
}

// Toggle returns the sort order after the user picks key: the same key flips the
// direction, a different key starts ascending.
func (s SortSpec) Toggle(key SortKey) SortSpec {
	if s.Key == key {
		if s.Direction == SortAscending {
			return SortSpec{Key: key, Direction: SortDescending}
		}
		return SortSpec{Key: key, Direction: SortAscending}
	}
	return SortSpec{Key: key, Direction: SortAscending}
}

// String renders the sort order as key:direction.
func (s SortSpec) String() string {
	return string(s.Key) + ":" + string(s.Direction)
}

// ParseSortSpec parses "amount", "amount:desc" or "date:asc".
func ParseSortSpec(s string) (SortSpec, error) {
	spec := DefaultSortSpec()
	if strings.TrimSpace(s) == "" {
		return spec, nil
	}

	keyPart, dirPart, hasDir := strings.Cut(strings.ToLower(strings.TrimSpace(s)), ":")
	key := SortKey(keyPart)
	if !slices.Contains(SortKeys, key) {
		return spec, fmt.Errorf("unknown sort key %q", keyPart)
	}
	spec.Key = key

	if hasDir {
		switch SortDirection(dirPart) {
		case SortAscending, SortDescending:
			spec.Direction = SortDirection(dirPart)
		default:
			return spec, fmt.Errorf("unknown sort direction %q", dirPart)
		}
	}

	return spec, nil
}

// Criteria is the user-entered filter state.
type Criteria struct {
	SearchText string
	Category   CategoryFilter
}

// DefaultCriteria matches everything.
func DefaultCriteria() Criteria {
	return Criteria{Category: CategoryAll}
}

// Matches reports whether a transaction passes both the search and category filter.
func (c Criteria) Matches(t model.Transaction) bool {
	if c.SearchText != "" {
		needle := strings.ToLower(c.SearchText)
		if !strings.Contains(strings.ToLower(t.Name), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			return false
		}
	}

	switch c.Category {
	case CategoryDirect:
		return t.IsDirect
	case CategoryToyyibPay:
		return !t.IsDirect
	default:
		return true
	}
}

// IsActive returns true if any filter narrows the list.
func (c Criteria) IsActive() bool {
	return c.SearchText != "" || (c.Category != CategoryAll && c.Category != "")
}

// Projection is the filtered statement split by sign.
type Projection struct {
	Credits []model.Transaction
	Debits  []model.Transaction
	// Zero holds filtered transactions with an amount of exactly zero. They
	// are shown as a count only and never exported.
	Zero []model.Transaction
}

// Len is the number of filtered transactions across all buckets.
func (p Projection) Len() int {
	return len(p.Credits) + len(p.Debits) + len(p.Zero)
}

// Project filters then partitions transactions. The input is not modified.
func Project(txns []model.Transaction, criteria Criteria) Projection {
	var p Projection
	for _, t := range txns {
		if !criteria.Matches(t) {
			continue
		}
		switch t.Direction() {
		case model.DirectionCredit:
			p.Credits = append(p.Credits, t)
		case model.DirectionDebit:
			p.Debits = append(p.Debits, t)
		default:
			p.Zero = append(p.Zero, t)
		}
	}
	return p
}

// SortTransactions returns a stably sorted copy of txns.
func SortTransactions(txns []model.Transaction, spec SortSpec) []model.Transaction {
	sorted := slices.Clone(txns)
	slices.SortStableFunc(sorted, func(a, b model.Transaction) int {
		c := compareBy(spec.Key, a, b)
		if spec.Direction == SortDescending {
			return -c
		}
		return c
	})
	return sorted
}

func compareBy(key SortKey, a, b model.Transaction) int {
	switch key {
	case SortByAmount:
		return a.Amount.Cmp(b.Amount)
	case SortByTransaction:
		return cmp.Compare(a.Name, b.Name)
	case SortByDescription:
		return cmp.Compare(a.Description, b.Description)
	case SortByCategory:
		return cmp.Compare(a.Category(), b.Category())
	default:
		return cmp.Compare(a.Date, b.Date)
	}
}
