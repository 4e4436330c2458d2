// Package export writes a transaction projection to spreadsheet-style sinks.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Veraticus/statement-reader/internal/common"
	"github.com/Veraticus/statement-reader/internal/model"
	"golang.org/x/sync/errgroup"
)

// Sheet names, in workbook order.
const (
	SheetCredit = "Credit"
	SheetDebit  = "Debit"
)

// DefaultName is the base file name used when none is given.
const DefaultName = "transactions"

// Header is the column row written at the top of every sheet.
var Header = []string{"Date", "Transaction", "Amount", "Description", "Category"}

// Exporter writes transactions somewhere and returns where they went.
type Exporter interface {
	Export(ctx context.Context, txns []model.Transaction, name string) (string, error)
}

// Format names an export sink.
type Format string

// Supported formats.
const (
	FormatXLSX   Format = "xlsx"
	FormatOFX    Format = "ofx"
	FormatSheets Format = "sheets"
)

// Formats lists every supported format.
var Formats = []Format{FormatXLSX, FormatOFX, FormatSheets}

// ParseFormats parses a comma separated list such as "xlsx,ofx". Duplicates
// are dropped; an empty list means xlsx.
func ParseFormats(s string) ([]Format, error) {
	var formats []Format
	for _, part := range strings.Split(s, ",") {
		f := Format(strings.ToLower(strings.TrimSpace(part)))
		if f == "" {
			continue
		}
		if !slices.Contains(Formats, f) {
			return nil, fmt.Errorf("%w: %q", common.ErrUnknownFormat, part)
		}
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}

	if len(formats) == 0 {
		return []Format{FormatXLSX}, nil
	}
	return formats, nil
}

// Sheet is one tab of an export.
type Sheet struct {
	Name string
	Rows []model.Transaction
}

// Partition splits transactions into the Credit and Debit sheets, keeping
// input order within each. Zero amounts belong to neither.
func Partition(txns []model.Transaction) []Sheet {
	credits, debits, _ := model.Split(txns)
	return []Sheet{
		{Name: SheetCredit, Rows: credits},
		{Name: SheetDebit, Rows: debits},
	}
}

// Row returns the cell values for a transaction in Header order. The amount
// is numeric.
func Row(t model.Transaction) []any {
	return []any{
		t.Date,
		t.Name,
		t.Amount.InexactFloat64(),
		t.Description,
		t.Category(),
	}
}

// HeaderRow returns Header as cell values.
func HeaderRow() []any {
	row := make([]any, len(Header))
	for i, h := range Header {
		row[i] = h
	}
	return row
}

// SafeName turns a user supplied name into a bare file name.
func SafeName(name string) string {
	name = strings.TrimSpace(filepath.Base(strings.ReplaceAll(name, "\\", "/")))
	if name == "" || name == "." || name == "/" {
		return DefaultName
	}
	return name
}

// ExportAll runs every exporter concurrently and returns their locations in
// exporter order. The first failure cancels the others.
func ExportAll(ctx context.Context, exporters []Exporter, txns []model.Transaction, name string) ([]string, error) {
	locations := make([]string, len(exporters))
	g, ctx := errgroup.WithContext(ctx)

	for i, exp := range exporters {
		i, exp := i, exp
		g.Go(func() error {
			loc, err := exp.Export(ctx, txns, name)
			if err != nil {
				return err
			}
			locations[i] = loc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return locations, nil
}

// writeFile creates path and fills it with write. A failed write leaves no
// partial file behind.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path) // #nosec G304 - export path chosen by the user
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
