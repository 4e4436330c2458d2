package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/Veraticus/statement-reader/internal/model"
	"github.com/xuri/excelize/v2"
)

// amountNumFmt is the built-in "#,##0.00" number format.
const amountNumFmt = 4

// XLSXWriter writes a two-sheet workbook to a directory.
type XLSXWriter struct {
	logger *slog.Logger
	Dir    string
}

// NewXLSXWriter creates a writer that saves into dir.
func NewXLSXWriter(dir string, logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{Dir: dir, logger: logger}
}

// Export writes {Dir}/{name}.xlsx, replacing any existing file.
func (w *XLSXWriter) Export(ctx context.Context, txns []model.Transaction, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(w.Dir, SafeName(name)+".xlsx")
	if err := writeFile(path, func(out io.Writer) error {
		return WriteWorkbook(out, txns)
	}); err != nil {
		return "", err
	}

	w.logger.Info("Wrote workbook", "path", path, "transactions", len(txns))
	return path, nil
}

// WriteWorkbook writes the Credit and Debit sheets as xlsx to out.
func WriteWorkbook(out io.Writer, txns []model.Transaction) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: amountNumFmt})
	if err != nil {
		return fmt.Errorf("failed to create amount style: %w", err)
	}

	for i, sheet := range Partition(txns) {
		if i == 0 {
			err = f.SetSheetName(f.GetSheetName(0), sheet.Name)
		} else {
			_, err = f.NewSheet(sheet.Name)
		}
		if err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", sheet.Name, err)
		}

		if err := writeSheet(f, sheet, headerStyle, amountStyle); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", sheet.Name, err)
		}
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet Sheet, headerStyle, amountStyle int) error {
	header := HeaderRow()
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet.Name, "A1", "E1", headerStyle); err != nil {
		return err
	}

	for i, t := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := Row(t)
		if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
			return err
		}
	}

	if n := len(sheet.Rows); n > 0 {
		last, err := excelize.CoordinatesToCellName(3, n+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet.Name, "C2", last, amountStyle); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet.Name, "B", "B", 28); err != nil {
		return err
	}
	return f.SetColWidth(sheet.Name, "D", "D", 40)
}
