package tui

import (
	"log/slog"

	"github.com/Veraticus/statement-reader/internal/common"
	"github.com/Veraticus/statement-reader/internal/export"
	"github.com/Veraticus/statement-reader/internal/tui/themes"
	"github.com/Veraticus/statement-reader/internal/tui/viewmodel"
)

// Config holds TUI configuration.
type Config struct {
	Theme      themes.Theme
	Formatter  viewmodel.Formatter
	Logger     *slog.Logger
	StartDir   string
	Document   string // Path uploaded immediately on start
	ExportName string
	Exporters  []export.Exporter
	Width      int
	Height     int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:      themes.Default,
		Formatter:  viewmodel.NewFormatter(viewmodel.DefaultCurrencySymbol),
		Logger:     common.DiscardLogger(),
		StartDir:   ".",
		ExportName: export.DefaultName,
		Width:      80,
		Height:     24,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithFormatter sets how amounts are rendered.
func WithFormatter(f viewmodel.Formatter) Option {
	return func(c *Config) {
		c.Formatter = f
	}
}

// WithLogger routes debug output somewhere other than the terminal.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithStartDir sets the directory the file picker opens in.
func WithStartDir(dir string) Option {
	return func(c *Config) {
		c.StartDir = dir
	}
}

// WithDocument uploads path as soon as the program starts.
func WithDocument(path string) Option {
	return func(c *Config) {
		c.Document = path
	}
}

// WithExporters sets the targets for the export key and the base file name.
func WithExporters(name string, exporters ...export.Exporter) Option {
	return func(c *Config) {
		if name != "" {
			c.ExportName = name
		}
		c.Exporters = exporters
	}
}
