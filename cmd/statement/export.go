package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/statement-reader/internal/export"
	"github.com/Veraticus/statement-reader/internal/model"
	"github.com/Veraticus/statement-reader/internal/upload"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export RESPONSE.json",
		Short: "Re-export a saved extraction result",
		Long: `Read transactions saved with 'statement extract --save' (or any response
body from the extraction service) and print or export them again without
uploading the PDF. Use - to read from standard input.

Examples:
  statement export march.json --export xlsx
  statement export march.json --category direct --export ofx --name march-direct`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}

	addViewFlags(cmd, string(export.FormatXLSX))

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	txns, err := readResponse(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	return showAndExport(cmd.Context(), cmd, cfg, txns)
}

func readResponse(stdin io.Reader, path string) ([]model.Transaction, error) {
	if path == "-" {
		return upload.DecodeResponse(stdin)
	}

	f, err := os.Open(path) // #nosec G304 - path chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	txns, err := upload.DecodeResponse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return txns, nil
}
