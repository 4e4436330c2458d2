package tui

import (
	"fmt"

	"github.com/Veraticus/statement-reader/internal/tui/viewmodel"
	"github.com/Veraticus/statement-reader/internal/upload"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

const (
	// Terminals at least this wide show the tables side by side.
	wideLayoutWidth = 150
	// Title, stats box, filter line, zero note, status and help.
	chromeHeight = 9
)

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	var bindings []key.Binding
	switch m.controller.State() {
	case upload.StateLoading:
		body = m.renderLoading()
		bindings = m.keymap.LoadingHelp()
	case upload.StateResult:
		body = m.renderResult()
		bindings = m.keymap.ResultHelp()
		if m.searching {
			bindings = m.keymap.SearchHelp()
		}
	default:
		body = m.renderUpload()
		bindings = m.keymap.UploadHelp()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render("🧾 Statement Reader"),
		body,
		m.renderStatusBar(),
		m.help.ShortHelpView(bindings),
	)
}

func (m Model) renderUpload() string {
	selected := m.theme.StatusPending.Render("No file selected")
	if doc, ok := m.controller.Document(); ok {
		selected = m.theme.Bold.Render(doc.Name) +
			m.theme.Subtitle.Render(fmt.Sprintf("  %s", formatSize(doc.Size)))
	}

	lines := []string{
		m.theme.Subtitle.Render("Select a PDF bank statement, then press u to upload"),
		m.picker.View(),
		"Selected: " + selected,
	}
	if m.controller.State() == upload.StateError {
		lines = append(lines, m.theme.StatusError.Render("✗ "+m.controller.Err()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderLoading() string {
	name := ""
	if doc, ok := m.controller.Document(); ok {
		name = doc.Name
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.spinner.View()+" Extracting transactions from "+m.theme.Bold.Render(name),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("This can take a minute for long statements"),
	)

	return lipgloss.Place(
		m.width,
		max(m.height-chromeHeight, 3),
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

func (m Model) renderResult() string {
	criteria := m.view.Criteria()
	filterLine := m.search.View() +
		m.theme.Subtitle.Render("  Category: ") +
		m.theme.Bold.Render(criteria.Category.Label())

	var tables string
	credits := m.tables[viewmodel.SideCredits].View()
	debits := m.tables[viewmodel.SideDebits].View()
	if m.width >= wideLayoutWidth {
		tables = lipgloss.JoinHorizontal(lipgloss.Top, credits, debits)
	} else {
		tables = lipgloss.JoinVertical(lipgloss.Left, credits, debits)
	}

	lines := []string{m.statsBar.View(), filterLine, tables}
	if n := len(m.view.Zero()); n > 0 {
		lines = append(lines, m.theme.StatusPending.Render(
			fmt.Sprintf("%d zero-amount transaction(s) not shown", n)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderStatusBar() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return m.theme.StatusError.Render(m.status)
	}
	return m.theme.StatusInfo.Render(m.status)
}

// resize recomputes component sizes from the terminal size.
func (m *Model) resize() {
	m.statsBar.Resize(m.width)
	m.search.Width = max(m.width/2, 20)
	m.help.Width = m.width

	available := max(m.height-chromeHeight, 8)
	if m.width >= wideLayoutWidth {
		half := m.width / 2
		m.tables[viewmodel.SideCredits].Resize(half, available)
		m.tables[viewmodel.SideDebits].Resize(m.width-half, available)
		return
	}
	m.tables[viewmodel.SideCredits].Resize(m.width, available/2)
	m.tables[viewmodel.SideDebits].Resize(m.width, available-available/2)
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
