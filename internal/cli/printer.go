package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Veraticus/statement-reader/internal/model"
	"github.com/Veraticus/statement-reader/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// amountColumn is the index of the Amount column in printed tables.
const amountColumn = 2

// Printer writes statement summaries and tables to a terminal.
type Printer struct {
	out       io.Writer
	formatter viewmodel.Formatter
}

// NewPrinter creates a printer that formats amounts with formatter.
func NewPrinter(out io.Writer, formatter viewmodel.Formatter) *Printer {
	return &Printer{out: out, formatter: formatter}
}

// PrintStats writes the summary box for the whole statement.
func (p *Printer) PrintStats(stats viewmodel.Stats) error {
	content := fmt.Sprintf("Total Transactions  %d\n", stats.Count) +
		fmt.Sprintf("Total Credits       %s\n", CreditStyle.Render(p.formatter.Format(stats.TotalCredits))) +
		fmt.Sprintf("Total Debits        %s", DebitStyle.Render(p.formatter.Format(stats.TotalDebits)))
	if stats.ZeroCount > 0 {
		content += fmt.Sprintf("\nZero amount         %d", stats.ZeroCount)
	}

	_, err := fmt.Fprintln(p.out, RenderBox("Statement Summary", content))
	return err
}

// PrintSide writes one titled table of transactions.
func (p *Printer) PrintSide(side viewmodel.Side, rows []model.Transaction, spec viewmodel.SortSpec) error {
	title := fmt.Sprintf("%s (%d) sorted by %s", side, len(rows), spec)
	if _, err := fmt.Fprintln(p.out, FormatTitle(title)); err != nil {
		return err
	}

	if len(rows) == 0 {
		_, err := fmt.Fprintln(p.out, SubtleStyle.Render("  No transactions found")+"\n")
		return err
	}

	amountStyle := CreditStyle
	if side == viewmodel.SideDebits {
		amountStyle = DebitStyle
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers("#", "Date", "Amount", "Transaction", "Description", "Category").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return TableHeaderStyle
			case col == amountColumn:
				return amountStyle.Padding(0, 1).Align(lipgloss.Right)
			default:
				return TableCellStyle
			}
		})

	for i, txn := range rows {
		t.Row(
			strconv.Itoa(i+1),
			txn.Date,
			p.formatter.FormatSigned(txn.Amount),
			viewmodel.TruncateString(viewmodel.SanitizeForDisplay(txn.Name), 32),
			viewmodel.TruncateString(viewmodel.SanitizeForDisplay(txn.Description), 40),
			txn.Category(),
		)
	}

	_, err := fmt.Fprintln(p.out, t.String()+"\n")
	return err
}

// PrintView writes the summary, the active filter and both tables.
func (p *Printer) PrintView(v *viewmodel.TransactionView) error {
	if err := p.PrintStats(v.Stats()); err != nil {
		return err
	}

	if c := v.Criteria(); c.IsActive() {
		line := fmt.Sprintf("Filter: search=%q category=%s", c.SearchText, c.Category.Label())
		if _, err := fmt.Fprintln(p.out, FormatInfo(line)); err != nil {
			return err
		}
	}

	for _, side := range []viewmodel.Side{viewmodel.SideCredits, viewmodel.SideDebits} {
		if err := p.PrintSide(side, v.Rows(side), v.SortSpec(side)); err != nil {
			return err
		}
	}

	if zero := len(v.Zero()); zero > 0 {
		msg := fmt.Sprintf("%d zero-amount transaction(s) not shown", zero)
		if _, err := fmt.Fprintln(p.out, SubtleStyle.Render(msg)); err != nil {
			return err
		}
	}
	return nil
}
