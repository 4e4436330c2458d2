package export

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Veraticus/statement-reader/internal/common"
	"github.com/Veraticus/statement-reader/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTransactions() []model.Transaction {
	return []model.Transaction{
		{Date: "2024-03-15", Name: "CAROLYN", Amount: decimal.RequireFromString("100.00"), IsDirect: true},
		{Date: "2024-03-16", Name: "GRAB", Description: "ride home", Amount: decimal.RequireFromString("-12.50")},
		{Date: "2024-03-17", Name: "ADJUSTMENT", Amount: decimal.Zero, IsDirect: true},
		{Date: "2024-03-18", Name: "TOYYIBPAY", Description: "donation", Amount: decimal.RequireFromString("1234.56")},
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Format
		wantErr bool
	}{
		{name: "empty defaults to xlsx", input: "", want: []Format{FormatXLSX}},
		{name: "single", input: "ofx", want: []Format{FormatOFX}},
		{name: "list with spaces and case", input: " XLSX, ofx ,sheets", want: []Format{FormatXLSX, FormatOFX, FormatSheets}},
		{name: "duplicates dropped", input: "xlsx,xlsx,ofx", want: []Format{FormatXLSX, FormatOFX}},
		{name: "trailing comma", input: "ofx,", want: []Format{FormatOFX}},
		{name: "unknown", input: "xlsx,csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormats(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPartition(t *testing.T) {
	sheets := Partition(sampleTransactions())
	require.Len(t, sheets, 2)

	assert.Equal(t, SheetCredit, sheets[0].Name)
	require.Len(t, sheets[0].Rows, 2)
	assert.Equal(t, "CAROLYN", sheets[0].Rows[0].Name)
	assert.Equal(t, "TOYYIBPAY", sheets[0].Rows[1].Name)

	assert.Equal(t, SheetDebit, sheets[1].Name)
	require.Len(t, sheets[1].Rows, 1)
	assert.Equal(t, "GRAB", sheets[1].Rows[0].Name)
}

func TestRow(t *testing.T) {
	row := Row(sampleTransactions()[1])
	assert.Equal(t, []any{"2024-03-16", "GRAB", -12.5, "ride home", "TOYYIBPAY"}, row)
	assert.Len(t, HeaderRow(), len(Header))
}

func TestSafeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", DefaultName},
		{"  ", DefaultName},
		{"march", "march"},
		{"../../etc/passwd", "passwd"},
		{`..\windows\march`, "march"},
		{"/", DefaultName},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeName(tt.in))
		})
	}
}

type fakeExporter struct {
	err      error
	location string
	delay    time.Duration
	calls    *atomic.Int32
}

func (f fakeExporter) Export(ctx context.Context, _ []model.Transaction, name string) (string, error) {
	if f.calls != nil {
		f.calls.Add(1)
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.location + "/" + name, nil
}

func TestExportAll(t *testing.T) {
	var calls atomic.Int32
	exporters := []Exporter{
		fakeExporter{location: "slow", delay: 20 * time.Millisecond, calls: &calls},
		fakeExporter{location: "fast", calls: &calls},
	}

	locations, err := ExportAll(context.Background(), exporters, sampleTransactions(), "march")
	require.NoError(t, err)
	assert.Equal(t, []string{"slow/march", "fast/march"}, locations)
	assert.Equal(t, int32(2), calls.Load())
}

func TestExportAll_FirstErrorCancelsOthers(t *testing.T) {
	boom := errors.New("sink unavailable")
	exporters := []Exporter{
		fakeExporter{location: "slow", delay: time.Minute},
		fakeExporter{err: boom},
	}

	start := time.Now()
	_, err := ExportAll(context.Background(), exporters, sampleTransactions(), "march")
	require.ErrorIs(t, err, boom)
	assert.Less(t, time.Since(start), 30*time.Second)
}

func TestWriteFile(t *testing.T) {
	t.Run("success keeps the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")
		err := writeFile(path, func(out io.Writer) error {
			_, err := io.WriteString(out, "hello")
			return err
		})
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
	})

	t.Run("failed write removes the partial file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")
		writeErr := errors.New("disk full")
		err := writeFile(path, func(out io.Writer) error {
			_, _ = io.WriteString(out, "partial")
			return writeErr
		})
		require.ErrorIs(t, err, writeErr)
		assert.NoFileExists(t, path)
	})

	t.Run("missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "out.txt")
		err := writeFile(path, func(io.Writer) error { return nil })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create")
	})
}
