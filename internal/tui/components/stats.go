package components

import (
	"fmt"

	"github.com/Veraticus/statement-reader/internal/tui/themes"
	"github.com/Veraticus/statement-reader/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

// StatsBarModel displays the statement totals above the tables.
type StatsBarModel struct {
	theme     themes.Theme
	formatter viewmodel.Formatter
	stats     viewmodel.Stats
	width     int
}

// NewStatsBarModel creates a stats bar.
func NewStatsBarModel(theme themes.Theme, formatter viewmodel.Formatter) StatsBarModel {
	return StatsBarModel{
		theme:     theme,
		formatter: formatter,
	}
}

// SetStats replaces the figures shown.
func (m *StatsBarModel) SetStats(stats viewmodel.Stats) {
	m.stats = stats
}

// Resize sets the rendering width.
func (m *StatsBarModel) Resize(width int) {
	m.width = width
}

// View renders the bar.
func (m StatsBarModel) View() string {
	label := lipgloss.NewStyle().Foreground(m.theme.Muted)

	cells := []string{
		label.Render("Total Transactions ") + m.theme.Bold.Render(fmt.Sprintf("%d", m.stats.Count)),
		label.Render("Total Credits ") + m.theme.CreditAmount.Render(m.formatter.Format(m.stats.TotalCredits)),
		label.Render("Total Debits ") + m.theme.DebitAmount.Render(m.formatter.Format(m.stats.TotalDebits)),
	}
	if m.stats.ZeroCount > 0 {
		cells = append(cells, label.Render("Zero amount ")+m.theme.Normal.Render(fmt.Sprintf("%d", m.stats.ZeroCount)))
	}

	sep := lipgloss.NewStyle().Foreground(m.theme.Border).Render("  │  ")
	row := cells[0]
	for _, c := range cells[1:] {
		row += sep + c
	}

	style := m.theme.Box
	if m.width > 2 {
		style = style.Width(m.width - 2)
	}
	return style.Render(row)
}
