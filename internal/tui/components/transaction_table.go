package components

import (
	"fmt"

	"github.com/Veraticus/statement-reader/internal/model"
	"github.com/Veraticus/statement-reader/internal/tui/themes"
	"github.com/Veraticus/statement-reader/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	minTableHeight = 3
	dateWidth      = 12
	amountWidth    = 16
	categoryWidth  = 10
)

// TransactionTableModel renders one side (credits or debits) of a statement.
type TransactionTableModel struct {
	theme     themes.Theme
	formatter viewmodel.Formatter
	rows      []model.Transaction
	sort      viewmodel.SortSpec
	table     table.Model
	side      viewmodel.Side
	width     int
	height    int
}

// NewTransactionTable creates an empty table for side.
func NewTransactionTable(side viewmodel.Side, theme themes.Theme, formatter viewmodel.Formatter) TransactionTableModel {
	t := table.New(
		table.WithFocused(side == viewmodel.SideCredits),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = theme.Header
	s.Selected = theme.Selected
	t.SetStyles(s)

	m := TransactionTableModel{
		theme:     theme,
		formatter: formatter,
		side:      side,
		sort:      viewmodel.DefaultSortSpec(),
		table:     t,
		width:     80,
		height:    12,
	}
	m.table.SetColumns(m.columns())
	return m
}

// SetRows replaces the rows and the sort indicator.
func (m *TransactionTableModel) SetRows(rows []model.Transaction, spec viewmodel.SortSpec) {
	m.rows = rows
	m.sort = spec
	m.table.SetColumns(m.columns())

	tableRows := make([]table.Row, 0, len(rows))
	for _, t := range rows {
		tableRows = append(tableRows, table.Row{
			t.Date,
			viewmodel.SanitizeForDisplay(t.Name),
			m.formatter.FormatSigned(t.Amount),
			viewmodel.SanitizeForDisplay(t.Description),
			t.Category(),
		})
	}
	m.table.SetRows(tableRows)

	if m.table.Cursor() >= len(tableRows) {
		m.table.SetCursor(max(len(tableRows)-1, 0))
	}
}

// Rows returns the transactions currently shown.
func (m TransactionTableModel) Rows() []model.Transaction {
	return m.rows
}

// Selected returns the highlighted transaction.
func (m TransactionTableModel) Selected() (model.Transaction, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return model.Transaction{}, false
	}
	return m.rows[i], true
}

// Focus gives the table keyboard focus.
func (m *TransactionTableModel) Focus() {
	m.table.Focus()
}

// Blur removes keyboard focus.
func (m *TransactionTableModel) Blur() {
	m.table.Blur()
}

// Focused reports whether the table has focus.
func (m TransactionTableModel) Focused() bool {
	return m.table.Focused()
}

// Resize sets the outer size including the title and border.
func (m *TransactionTableModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetWidth(max(width-4, 20))
	m.table.SetHeight(max(height-4, minTableHeight))
	m.table.SetColumns(m.columns())
}

// Update handles navigation keys.
func (m TransactionTableModel) Update(msg tea.Msg) (TransactionTableModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the titled table.
func (m TransactionTableModel) View() string {
	titleStyle := m.theme.CreditAmount
	if m.side == viewmodel.SideDebits {
		titleStyle = m.theme.DebitAmount
	}
	title := titleStyle.Render(fmt.Sprintf("%s (%d)", m.side, len(m.rows)))

	body := m.table.View()
	if len(m.rows) == 0 {
		body = m.theme.StatusPending.Render("No transactions found")
	}

	box := m.theme.Box
	if m.table.Focused() {
		box = m.theme.FocusedBox
	}
	if m.width > 2 {
		box = box.Width(m.width - 2)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}

func (m TransactionTableModel) columns() []table.Column {
	inner := max(m.width-4, 20)
	flexible := max(inner-dateWidth-amountWidth-categoryWidth-5, 20)
	nameWidth := flexible * 2 / 5
	descWidth := flexible - nameWidth

	widths := map[viewmodel.SortKey]int{
		viewmodel.SortByDate:        dateWidth,
		viewmodel.SortByTransaction: nameWidth,
		viewmodel.SortByAmount:      amountWidth,
		viewmodel.SortByDescription: descWidth,
		viewmodel.SortByCategory:    categoryWidth,
	}

	cols := make([]table.Column, 0, len(viewmodel.SortKeys))
	for i, key := range viewmodel.SortKeys {
		cols = append(cols, table.Column{
			Title: ColumnTitle(i+1, key, m.sort),
			Width: widths[key],
		})
	}
	return cols
}

// ColumnTitle renders a header like "3 Amount ▲", marking the sorted column.
func ColumnTitle(n int, key viewmodel.SortKey, spec viewmodel.SortSpec) string {
	title := fmt.Sprintf("%d %s", n, columnNames[key])
	if spec.Key != key {
		return title
	}
	if spec.Direction == viewmodel.SortDescending {
		return title + " ▼"
	}
	return title + " ▲"
}

var columnNames = map[viewmodel.SortKey]string{
	viewmodel.SortByDate:        "Date",
	viewmodel.SortByTransaction: "Transaction",
	viewmodel.SortByAmount:      "Amount",
	viewmodel.SortByDescription: "Description",
	viewmodel.SortByCategory:    "Category",
}
