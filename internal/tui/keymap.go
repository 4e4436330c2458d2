package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Upload screen
	Upload key.Binding
	Cancel key.Binding

	// Result screen
	Up           key.Binding
	Down         key.Binding
	Search       key.Binding
	ConfirmInput key.Binding
	ExitInput    key.Binding
	Filter       key.Binding
	SwitchTable  key.Binding
	Sort         []key.Binding
	Export       key.Binding
	NewFile      key.Binding

	// Application
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	sortHelp := []string{"date", "transaction", "amount", "description", "category"}
	sorts := make([]key.Binding, 0, len(sortHelp))
	for i, h := range sortHelp {
		k := string(rune('1' + i))
		sorts = append(sorts, key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, "sort by "+h),
		))
	}

	return KeyMap{
		Upload: key.NewBinding(
			key.WithKeys("u", "ctrl+u"),
			key.WithHelp("u", "upload"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "cancel"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		ConfirmInput: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "apply"),
		),
		ExitInput: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "clear search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "category"),
		),
		SwitchTable: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("Tab", "switch table"),
		),
		Sort: sorts,
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		NewFile: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new file"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// UploadHelp returns the bindings shown on the upload screen.
func (k KeyMap) UploadHelp() []key.Binding {
	return []key.Binding{k.Upload, k.Quit}
}

// LoadingHelp returns the bindings shown while an upload is running.
func (k KeyMap) LoadingHelp() []key.Binding {
	return []key.Binding{k.Cancel, k.ForceQuit}
}

// ResultHelp returns the bindings shown on the result screen.
func (k KeyMap) ResultHelp() []key.Binding {
	return []key.Binding{k.Search, k.Filter, k.SwitchTable, k.sortRange(), k.Export, k.NewFile, k.Quit}
}

// SearchHelp returns the bindings shown while typing a search.
func (k KeyMap) SearchHelp() []key.Binding {
	return []key.Binding{k.ConfirmInput, k.ExitInput}
}

func (k KeyMap) sortRange() key.Binding {
	return key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5"),
		key.WithHelp("1-5", "sort"),
	)
}

// sortIndex returns the column index bound to msg, or -1.
func (k KeyMap) sortIndex(msg tea.KeyMsg) int {
	for i, b := range k.Sort {
		if key.Matches(msg, b) {
			return i
		}
	}
	return -1
}
