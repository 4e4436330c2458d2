package tui

import (
	"context"

	"github.com/Veraticus/statement-reader/internal/export"
	"github.com/Veraticus/statement-reader/internal/model"
	"github.com/Veraticus/statement-reader/internal/upload"
	tea "github.com/charmbracelet/bubbletea"
)

// selectFile stages path as if it had been picked.
func selectFile(path string) tea.Cmd {
	return func() tea.Msg {
		return fileSelectedMsg{path: path}
	}
}

func submit() tea.Msg {
	return submitMsg{}
}

// runUpload performs the request off the update loop.
func runUpload(task *upload.Task) tea.Cmd {
	return func() tea.Msg {
		return uploadDoneMsg{outcome: task.Run()}
	}
}

// exportRows writes rows through every configured exporter.
func exportRows(ctx context.Context, exporters []export.Exporter, rows []model.Transaction, name string) tea.Cmd {
	return func() tea.Msg {
		locations, err := export.ExportAll(ctx, exporters, rows, name)
		return exportDoneMsg{locations: locations, err: err}
	}
}
