package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/statement-reader/internal/cli"
	"github.com/Veraticus/statement-reader/internal/common"
	"github.com/Veraticus/statement-reader/internal/model"
	"github.com/Veraticus/statement-reader/internal/upload"
	"github.com/spf13/cobra"
)

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract FILE.pdf",
		Short: "Upload a statement and print its transactions",
		Long: `Upload a PDF bank statement to the extraction service and print the
transactions it returns as separate credit and debit tables.

Examples:
  statement extract march.pdf
  statement extract march.pdf --search grab --sort-debits amount:desc
  statement extract march.pdf --export xlsx,ofx --name march-2024
  statement extract march.pdf --save march.json`,
		Args: cobra.ExactArgs(1),
		RunE: runExtract,
	}

	addViewFlags(cmd, "")
	cmd.Flags().String("save", "", "also write the raw transactions to this JSON file")
	cmd.Flags().Bool("no-progress", false, "disable the upload progress bar")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !upload.HasPDFExtension(path) {
		return fmt.Errorf("%w: %s", common.ErrUnsupportedExt, path)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	doc, err := upload.FileDocument(path)
	if err != nil {
		return err
	}
	if noProgress, _ := cmd.Flags().GetBool("no-progress"); !noProgress {
		doc = cli.WithUploadProgress(doc, cmd.ErrOrStderr())
	}

	client := newUploadClient(cfg, slog.Default())
	controller := upload.NewController(client, slog.Default())
	controller.Select(doc)

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Upload interrupted")
	ctx, stop := handler.HandleInterrupts(cmd.Context())
	defer stop()

	slog.Debug("Uploading statement", "file", doc.Name, "endpoint", client.UploadURL())
	if err := controller.Run(ctx); err != nil {
		if handler.WasInterrupted() {
			return common.NewUserError("Upload interrupted", err)
		}
		return err
	}

	txns := controller.Transactions()
	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := saveResponse(savePath, txns); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Saved response to "+savePath))
	}

	return showAndExport(ctx, cmd, cfg, txns)
}

func saveResponse(path string, txns []model.Transaction) error {
	f, err := os.Create(path) // #nosec G304 - path chosen by the user
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := upload.EncodeResponse(f, txns); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
