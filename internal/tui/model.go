// Package tui is the interactive terminal front end: pick a statement, upload
// it, then browse, filter, sort and export the extracted transactions.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/statement-reader/internal/common"
	"github.com/Veraticus/statement-reader/internal/tui/components"
	"github.com/Veraticus/statement-reader/internal/tui/themes"
	"github.com/Veraticus/statement-reader/internal/tui/viewmodel"
	"github.com/Veraticus/statement-reader/internal/upload"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model holds the main TUI state. Upload state lives in the controller and
// the derived tables in the transaction view; the model only routes input.
type Model struct {
	ctx        context.Context
	theme      themes.Theme
	logger     *slog.Logger
	controller *upload.Controller
	view       *viewmodel.TransactionView
	config     Config
	keymap     KeyMap
	status     string
	picker     filepicker.Model
	search     textinput.Model
	spinner    spinner.Model
	help       help.Model
	statsBar   components.StatsBarModel
	tables     [2]components.TransactionTableModel
	focus      viewmodel.Side
	width      int
	height     int
	statusErr  bool
	searching  bool
	exporting  bool
	quitting   bool
}

// New creates a model that uploads through uploader.
func New(ctx context.Context, uploader upload.Uploader, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	picker := filepicker.New()
	picker.AllowedTypes = []string{upload.PDFExtension, strings.ToUpper(upload.PDFExtension)}
	picker.CurrentDirectory = cfg.StartDir
	picker.ShowPermissions = false

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search transaction or description"
	search.CharLimit = 100

	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(cfg.Theme.Primary)),
	)

	m := Model{
		ctx:        ctx,
		config:     cfg,
		theme:      cfg.Theme,
		logger:     cfg.Logger,
		keymap:     DefaultKeyMap(),
		controller: upload.NewController(uploader, cfg.Logger),
		view:       viewmodel.NewTransactionView(nil),
		picker:     picker,
		search:     search,
		spinner:    spin,
		help:       help.New(),
		statsBar:   components.NewStatsBarModel(cfg.Theme, cfg.Formatter),
		tables: [2]components.TransactionTableModel{
			components.NewTransactionTable(viewmodel.SideCredits, cfg.Theme, cfg.Formatter),
			components.NewTransactionTable(viewmodel.SideDebits, cfg.Theme, cfg.Formatter),
		},
		focus:  viewmodel.SideCredits,
		width:  cfg.Width,
		height: cfg.Height,
	}
	m.resize()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.picker.Init()}
	if m.config.Document != "" {
		cmds = append(cmds, tea.Sequence(selectFile(m.config.Document), submit))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case fileSelectedMsg:
		return m.handleFileSelected(msg.path)

	case submitMsg:
		return m.startUpload()

	case uploadDoneMsg:
		return m.handleUploadDone(msg)

	case exportDoneMsg:
		return m.handleExportDone(msg)

	case spinner.TickMsg:
		if m.controller.State() != upload.StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			return m.quit()
		}
		switch m.controller.State() {
		case upload.StateLoading:
			return m.handleLoadingKeys(msg)
		case upload.StateResult:
			return m.handleResultKeys(msg)
		default:
			return m.handleUploadKeys(msg)
		}
	}

	return m.forward(msg)
}

// State returns the controller phase the model is showing.
func (m Model) State() upload.State {
	return m.controller.State()
}

// Status returns the last status line text.
func (m Model) Status() string {
	return m.status
}

func (m Model) handleFileSelected(path string) (tea.Model, tea.Cmd) {
	if !upload.HasPDFExtension(path) {
		m.setStatus(fmt.Sprintf("%s is not a PDF file", path), true)
		return m, nil
	}

	doc, err := upload.FileDocument(path)
	if err != nil {
		m.setStatus(common.UserMessage(err), true)
		return m, nil
	}

	m.controller.Select(doc)
	m.setStatus("", false)
	return m, nil
}

func (m Model) startUpload() (tea.Model, tea.Cmd) {
	task, ok := m.controller.Submit(m.ctx)
	if !ok {
		m.setStatus("Select a PDF statement first", true)
		return m, nil
	}

	m.setStatus("", false)
	m.logger.Debug("Upload started", "generation", task.Generation)
	return m, tea.Batch(m.spinner.Tick, runUpload(task))
}

func (m Model) handleUploadDone(msg uploadDoneMsg) (tea.Model, tea.Cmd) {
	if !m.controller.Complete(msg.outcome) {
		return m, nil
	}

	if m.controller.State() == upload.StateResult {
		m.view.SetTransactions(m.controller.Transactions())
		m.search.SetValue("")
		m.searching = false
		m.setFocus(viewmodel.SideCredits)
		m.refresh()
		m.logger.Debug("Upload complete", "transactions", len(m.controller.Transactions()))
	}
	return m, nil
}

func (m Model) handleExportDone(msg exportDoneMsg) (tea.Model, tea.Cmd) {
	m.exporting = false
	if msg.err != nil {
		m.logger.Debug("Export failed", "error", msg.err)
		m.setStatus("Export failed: "+msg.err.Error(), true)
		return m, nil
	}
	m.setStatus("Exported to "+strings.Join(msg.locations, ", "), false)
	return m, nil
}

func (m Model) handleUploadKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m.quit()
	case key.Matches(msg, m.keymap.Upload):
		return m.startUpload()
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		return m, tea.Batch(cmd, selectFile(path))
	}
	if didSelect, path := m.picker.DidSelectDisabledFile(msg); didSelect {
		m.setStatus(fmt.Sprintf("%s is not a PDF file", path), true)
	}
	return m, cmd
}

func (m Model) handleLoadingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel), key.Matches(msg, m.keymap.NewFile):
		m.controller.Reset()
		m.setStatus("Upload cancelled", false)
		return m, m.picker.Init()
	case key.Matches(msg, m.keymap.Quit):
		return m.quit()
	}
	return m, nil
}

func (m Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m.quit()

	case key.Matches(msg, m.keymap.Search):
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keymap.Filter):
		m.view.CycleCategory()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.SwitchTable):
		m.setFocus(m.focus.Other())
		return m, nil

	case key.Matches(msg, m.keymap.Export):
		return m.startExport()

	case key.Matches(msg, m.keymap.NewFile):
		m.controller.Reset()
		m.view.SetTransactions(nil)
		m.search.SetValue("")
		m.refresh()
		m.setStatus("", false)
		return m, m.picker.Init()
	}

	if i := m.keymap.sortIndex(msg); i >= 0 {
		m.view.ToggleSort(m.focus, viewmodel.SortKeys[i])
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.tables[m.focus], cmd = m.tables[m.focus].Update(msg)
	return m, cmd
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ConfirmInput):
		m.searching = false
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keymap.ExitInput):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.view.SetSearch("")
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.view.SetSearch(m.search.Value())
	m.refresh()
	return m, cmd
}

func (m Model) startExport() (tea.Model, tea.Cmd) {
	if m.exporting {
		return m, nil
	}
	if len(m.config.Exporters) == 0 {
		m.setStatus("No export formats configured", true)
		return m, nil
	}

	m.exporting = true
	m.setStatus("Exporting...", false)
	return m, exportRows(m.ctx, m.config.Exporters, m.view.Visible(), m.config.ExportName)
}

// forward passes non-key messages to whichever input is live.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.controller.State() {
	case upload.StateIdle, upload.StateFileSelected, upload.StateError:
		m.picker, cmd = m.picker.Update(msg)
	case upload.StateResult:
		if m.searching {
			m.search, cmd = m.search.Update(msg)
		}
	}
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.controller.Reset()
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) setFocus(side viewmodel.Side) {
	m.focus = side
	m.tables[side].Focus()
	m.tables[side.Other()].Blur()
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// refresh pulls the current projection into the tables.
func (m *Model) refresh() {
	for _, side := range []viewmodel.Side{viewmodel.SideCredits, viewmodel.SideDebits} {
		m.tables[side].SetRows(m.view.Rows(side), m.view.SortSpec(side))
	}
	m.statsBar.SetStats(m.view.Stats())
}
