package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	Header        lipgloss.Style
	Box           lipgloss.Style
	FocusedBox    lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusPending lipgloss.Style
	CreditAmount  lipgloss.Style
	DebitAmount   lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Credit        lipgloss.Color
	Debit         lipgloss.Color
	Error         lipgloss.Color
}

type palette struct {
	primary    string
	foreground string
	subtle     string
	muted      string
	border     string
	selectedFg string
	credit     string
	debit      string
	info       string
	err        string
}

func newTheme(p palette) Theme {
	return Theme{
		Primary: lipgloss.Color(p.primary),
		Muted:   lipgloss.Color(p.muted),
		Border:  lipgloss.Color(p.border),
		Credit:  lipgloss.Color(p.credit),
		Debit:   lipgloss.Color(p.debit),
		Error:   lipgloss.Color(p.err),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.primary)),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.foreground)),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.foreground)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(p.primary)).
			Foreground(lipgloss.Color(p.selectedFg)).
			Bold(true),
		Header: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(p.border)).
			BorderBottom(true).
			Bold(true),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.border)).
			Padding(0, 1),
		FocusedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.primary)).
			Padding(0, 1),

		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.err)).
			Bold(true),
		StatusSuccess: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.credit)).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.info)),
		StatusPending: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)).
			Italic(true),

		CreditAmount: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.credit)).
			Bold(true),
		DebitAmount: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.debit)).
			Bold(true),
	}
}

// Default is the default theme.
var Default = newTheme(palette{
	primary:    "#5B8DEF",
	foreground: "#fafafa",
	subtle:     "#a3a3a3",
	muted:      "#737373",
	border:     "#404040",
	selectedFg: "#fafafa",
	credit:     "#10b981",
	debit:      "#ef4444",
	info:       "#3b82f6",
	err:        "#ef4444",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(palette{
	primary:    "#89b4fa",
	foreground: "#cdd6f4",
	subtle:     "#a6adc8",
	muted:      "#6c7086",
	border:     "#45475a",
	selectedFg: "#1e1e2e",
	credit:     "#a6e3a1",
	debit:      "#f38ba8",
	info:       "#89dceb",
	err:        "#f38ba8",
})

// Names lists the selectable theme names.
var Names = []string{"default", "catppuccin-mocha"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
