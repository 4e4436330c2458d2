package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/statement-reader/internal/common"
	"github.com/Veraticus/statement-reader/internal/config"
	"github.com/Veraticus/statement-reader/internal/export"
	"github.com/Veraticus/statement-reader/internal/tui/viewmodel"
	"github.com/Veraticus/statement-reader/internal/upload"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const savedBody = `{"transactions": [
	{"date": "2024-03-01", "transaction": "CAROLYN", "description": "rent", "amount": 100.00, "is_direct": true},
	{"date": "2024-03-02", "transaction": "GRAB", "description": "ride", "amount": -12.50, "is_direct": false},
	{"date": "2024-03-03", "transaction": "TOYYIBPAY", "description": "settlement", "amount": 1234.56, "is_direct": false}
]}`

// setupViper resets global configuration to defaults with exports in a temp dir.
func setupViper(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	config.SetDefaults(viper.GetViper())
	dir := t.TempDir()
	viper.Set("export.dir", dir)
	return dir
}

func execute(t *testing.T, cmd *cobra.Command, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, versionCmd(), nil)
	require.NoError(t, err)
	assert.Equal(t, "statement version dev\n", out)
}

func TestBuildExporters(t *testing.T) {
	setupViper(t)
	cfg, err := loadConfig()
	require.NoError(t, err)

	exporters, err := buildExporters(context.Background(), cfg,
		[]export.Format{export.FormatXLSX, export.FormatOFX}, common.DiscardLogger())
	require.NoError(t, err)
	require.Len(t, exporters, 2)
	assert.IsType(t, &export.XLSXWriter{}, exporters[0])
	assert.IsType(t, &export.OFXWriter{}, exporters[1])

	// Sheets needs credentials.
	_, err = buildExporters(context.Background(), cfg,
		[]export.Format{export.FormatSheets}, common.DiscardLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestApplyViewFlags(t *testing.T) {
	tests := []struct {
		name       string
		wantErr    string
		args       []string
		wantSearch string
		wantCat    viewmodel.CategoryFilter
		wantDebits viewmodel.SortSpec
	}{
		{
			name:       "defaults",
			wantCat:    viewmodel.CategoryAll,
			wantDebits: viewmodel.DefaultSortSpec(),
		},
		{
			name:       "all flags",
			args:       []string{"--search", "grab", "--category", "TOYYIBPAY", "--sort-debits", "amount:desc"},
			wantSearch: "grab",
			wantCat:    viewmodel.CategoryToyyibPay,
			wantDebits: viewmodel.SortSpec{Key: viewmodel.SortByAmount, Direction: viewmodel.SortDescending},
		},
		{
			name:    "bad category",
			args:    []string{"--category", "card"},
			wantErr: "unknown category filter",
		},
		{
			name:    "bad sort",
			args:    []string{"--sort-credits", "size"},
			wantErr: "invalid --sort-credits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "test"}
			addViewFlags(cmd, "")
			require.NoError(t, cmd.ParseFlags(tt.args))

			view := viewmodel.NewTransactionView(nil)
			err := applyViewFlags(cmd, view)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSearch, view.Criteria().SearchText)
			assert.Equal(t, tt.wantCat, view.Criteria().Category)
			assert.Equal(t, tt.wantDebits, view.SortSpec(viewmodel.SideDebits))
		})
	}
}

func TestExportCmd(t *testing.T) {
	dir := setupViper(t)
	input := filepath.Join(t.TempDir(), "march.json")
	require.NoError(t, os.WriteFile(input, []byte(savedBody), 0o600))

	out, err := execute(t, exportCmd(), nil, input, "--export", "xlsx,ofx", "--name", "march", "--category", "toyyibpay")
	require.NoError(t, err)

	assert.Contains(t, out, "Credits (1)")
	assert.Contains(t, out, "Debits (1)")
	assert.Contains(t, out, filepath.Join(dir, "march.xlsx"))
	assert.FileExists(t, filepath.Join(dir, "march.xlsx"))
	assert.FileExists(t, filepath.Join(dir, "march.ofx"))
}

func TestExportCmd_Stdin(t *testing.T) {
	dir := setupViper(t)

	_, err := execute(t, exportCmd(), strings.NewReader(savedBody), "-")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "transactions.xlsx"))
}

func TestExportCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		args    []string
		wantErr error
	}{
		{
			name:    "invalid payload",
			body:    `{"items": []}`,
			args:    []string{"-"},
			wantErr: &common.ValidationError{},
		},
		{
			name:    "unknown format",
			body:    savedBody,
			args:    []string{"-", "--export", "csv"},
			wantErr: common.ErrUnknownFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupViper(t)
			_, err := execute(t, exportCmd(), strings.NewReader(tt.body), tt.args...)
			require.Error(t, err)
			if target, ok := tt.wantErr.(*common.ValidationError); ok {
				assert.ErrorAs(t, err, &target)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExtractCmd(t *testing.T) {
	dir := setupViper(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1"+upload.UploadPath, r.URL.Path)
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(savedBody))
	}))
	defer srv.Close()
	viper.Set("api.base_url", srv.URL+"/api/v1")

	pdf := filepath.Join(t.TempDir(), "march.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4"), 0o600))
	saved := filepath.Join(dir, "march.json")

	out, err := execute(t, extractCmd(), nil, pdf, "--no-progress", "--save", saved, "--search", "grab")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Transactions")
	assert.Contains(t, out, "GRAB")
	assert.NotContains(t, out, "CAROLYN")

	f, err := os.Open(saved)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	txns, err := upload.DecodeResponse(f)
	require.NoError(t, err)
	assert.Len(t, txns, 3)
}

func TestExtractCmd_Errors(t *testing.T) {
	setupViper(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail": "Unsupported bank format"}`))
	}))
	defer srv.Close()
	viper.Set("api.base_url", srv.URL)

	_, err := execute(t, extractCmd(), nil, "notes.txt")
	assert.ErrorIs(t, err, common.ErrUnsupportedExt)

	pdf := filepath.Join(t.TempDir(), "march.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4"), 0o600))
	_, err = execute(t, extractCmd(), nil, pdf, "--no-progress")
	require.Error(t, err)
	assert.Equal(t, "Unsupported bank format", common.UserMessage(err))
}
