package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/statement-reader/internal/common"
	"github.com/Veraticus/statement-reader/internal/export"
	"github.com/Veraticus/statement-reader/internal/tui"
	"github.com/Veraticus/statement-reader/internal/tui/themes"
	"github.com/Veraticus/statement-reader/internal/tui/viewmodel"
	"github.com/Veraticus/statement-reader/internal/upload"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func viewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [FILE.pdf]",
		Short: "Browse a statement interactively",
		Long: `Open the interactive viewer. Pick a PDF statement, upload it, then search,
filter, sort and export the extracted transactions.

When FILE.pdf is given it is uploaded immediately.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runView,
	}

	cmd.Flags().String("dir", "", "directory the file picker starts in (default: current directory)")
	cmd.Flags().String("export", "", "export formats for the e key (default from config)")
	cmd.Flags().String("name", "", "export file or spreadsheet name (default from config)")
	cmd.Flags().String("theme", "default", fmt.Sprintf("color theme %v", themes.Names))
	cmd.Flags().String("log-file", "", "write logs to this file while the viewer runs")

	_ = viper.BindPFlag("ui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runView(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := []tui.Option{
		tui.WithTheme(themes.GetTheme(viper.GetString("ui.theme"))),
		tui.WithFormatter(viewmodel.NewFormatter(cfg.Format.CurrencySymbol)),
	}

	if len(args) == 1 {
		if !upload.HasPDFExtension(args[0]) {
			return fmt.Errorf("%w: %s", common.ErrUnsupportedExt, args[0])
		}
		opts = append(opts, tui.WithDocument(args[0]))
	}

	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		opts = append(opts, tui.WithStartDir(dir))
	}

	// Anything written to the terminal would corrupt the alternate screen.
	logger := common.DiscardLogger()
	if logFile, _ := cmd.Flags().GetString("log-file"); logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) // #nosec G304
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() { _ = f.Close() }()

		level, _ := common.ParseLevel(cfg.Logging.Level)
		logger, err = common.NewLogger(f, level, cfg.Logging.Format)
		if err != nil {
			return err
		}
	}
	opts = append(opts, tui.WithLogger(logger))

	formatFlag, _ := cmd.Flags().GetString("export")
	if formatFlag == "" {
		formatFlag = cfg.Export.Formats
	}
	formats, err := export.ParseFormats(formatFlag)
	if err != nil {
		return err
	}
	exporters, err := buildExporters(ctx, cfg, formats, logger)
	if err != nil {
		return err
	}
	opts = append(opts, tui.WithExporters(exportName(cmd, cfg), exporters...))

	slog.Debug("Starting viewer", "api", cfg.API.BaseURL, "formats", formats)
	return tui.Run(ctx, newUploadClient(cfg, logger), opts...)
}
