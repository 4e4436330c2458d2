package tui

import "github.com/Veraticus/statement-reader/internal/upload"

// fileSelectedMsg stages a statement picked in the file picker.
type fileSelectedMsg struct {
	path string
}

// submitMsg starts the upload of the staged statement.
type submitMsg struct{}

// uploadDoneMsg carries an upload outcome tagged with its generation.
type uploadDoneMsg struct {
	outcome upload.Outcome
}

// exportDoneMsg reports where the visible rows were written.
type exportDoneMsg struct {
	err       error
	locations []string
}
