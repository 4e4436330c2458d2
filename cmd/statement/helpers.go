package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/Veraticus/statement-reader/internal/cli"
	"github.com/Veraticus/statement-reader/internal/config"
	"github.com/Veraticus/statement-reader/internal/export"
	"github.com/Veraticus/statement-reader/internal/model"
	"github.com/Veraticus/statement-reader/internal/sheets"
	"github.com/Veraticus/statement-reader/internal/tui/viewmodel"
	"github.com/Veraticus/statement-reader/internal/upload"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadConfig resolves the validated configuration from viper.
func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper())
}

func newUploadClient(cfg *config.Config, logger *slog.Logger) *upload.Client {
	return upload.NewClient(cfg.API.BaseURL,
		upload.WithTimeout(cfg.API.Timeout),
		upload.WithLogger(logger),
	)
}

// buildExporters creates one exporter per requested format.
func buildExporters(ctx context.Context, cfg *config.Config, formats []export.Format, logger *slog.Logger) ([]export.Exporter, error) {
	exporters := make([]export.Exporter, 0, len(formats))
	if slices.Contains(formats, export.FormatXLSX) || slices.Contains(formats, export.FormatOFX) {
		if err := config.EnsureDir(cfg.Export.Dir); err != nil {
			return nil, err
		}
	}

	for _, f := range formats {
		switch f {
		case export.FormatXLSX:
			exporters = append(exporters, export.NewXLSXWriter(cfg.Export.Dir, logger))
		case export.FormatOFX:
			exporters = append(exporters, export.NewOFXWriter(cfg.Export.Dir, cfg.OFX.Currency, cfg.OFX.BankID, cfg.OFX.AccountID, logger))
		case export.FormatSheets:
			w, err := sheets.NewWriter(ctx, cfg.Sheets, logger)
			if err != nil {
				return nil, fmt.Errorf("failed to set up Google Sheets export: %w", err)
			}
			exporters = append(exporters, w)
		default:
			return nil, fmt.Errorf("unsupported export format %q", f)
		}
	}
	return exporters, nil
}

// addViewFlags registers the filter, sort and export flags shared by extract
// and export. defaultFormats is the --export default; empty means print only.
func addViewFlags(cmd *cobra.Command, defaultFormats string) {
	cmd.Flags().String("search", "", "only show transactions whose name or description contains this text")
	cmd.Flags().String("category", "all", "category filter (all, direct, toyyibpay)")
	cmd.Flags().String("sort-credits", "date", "credit table order, key[:asc|desc]")
	cmd.Flags().String("sort-debits", "date", "debit table order, key[:asc|desc]")
	cmd.Flags().String("export", defaultFormats, "comma separated export formats (xlsx, ofx, sheets)")
	cmd.Flags().String("name", "", "export file or spreadsheet name (default from config)")
}

// applyViewFlags configures view from the flags added by addViewFlags.
func applyViewFlags(cmd *cobra.Command, view *viewmodel.TransactionView) error {
	search, _ := cmd.Flags().GetString("search")
	view.SetSearch(search)

	categoryFlag, _ := cmd.Flags().GetString("category")
	category, err := viewmodel.ParseCategoryFilter(categoryFlag)
	if err != nil {
		return err
	}
	view.SetCategory(category)

	for flag, side := range map[string]viewmodel.Side{
		"sort-credits": viewmodel.SideCredits,
		"sort-debits":  viewmodel.SideDebits,
	} {
		value, _ := cmd.Flags().GetString(flag)
		spec, err := viewmodel.ParseSortSpec(value)
		if err != nil {
			return fmt.Errorf("invalid --%s: %w", flag, err)
		}
		view.SetSortSpec(side, spec)
	}

	return nil
}

// exportName returns --name or the configured default.
func exportName(cmd *cobra.Command, cfg *config.Config) string {
	if name, _ := cmd.Flags().GetString("name"); name != "" {
		return name
	}
	return cfg.Export.Name
}

// showAndExport prints the projection and, when --export is set, writes the
// visible rows through every requested exporter.
func showAndExport(ctx context.Context, cmd *cobra.Command, cfg *config.Config, txns []model.Transaction) error {
	view := viewmodel.NewTransactionView(txns)
	if err := applyViewFlags(cmd, view); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printer := cli.NewPrinter(out, viewmodel.NewFormatter(cfg.Format.CurrencySymbol))
	if err := printer.PrintView(view); err != nil {
		return err
	}

	formatFlag, _ := cmd.Flags().GetString("export")
	if formatFlag == "" {
		return nil
	}

	formats, err := export.ParseFormats(formatFlag)
	if err != nil {
		return err
	}

	exporters, err := buildExporters(ctx, cfg, formats, slog.Default())
	if err != nil {
		return err
	}

	locations, err := export.ExportAll(ctx, exporters, view.Visible(), exportName(cmd, cfg))
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	printLocations(out, locations)
	return nil
}

func printLocations(out io.Writer, locations []string) {
	for _, loc := range locations {
		_, _ = fmt.Fprintln(out, cli.FormatSuccess("Exported "+loc))
	}
}
