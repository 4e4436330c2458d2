package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/statement-reader/internal/upload"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, uploader upload.Uploader, opts ...Option) error {
	if uploader == nil {
		return fmt.Errorf("uploader is required")
	}

	m := New(ctx, uploader, opts...)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		// Abandon anything still in flight.
		fm.controller.Reset()
	}
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
