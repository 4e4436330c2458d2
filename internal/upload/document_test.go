package upload

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/statement-reader/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "march.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 test"), 0o600))

	doc, err := FileDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "march.pdf", doc.Name)
	assert.Equal(t, int64(13), doc.Size)

	rc, err := doc.Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(data))

	t.Run("missing file", func(t *testing.T) {
		_, err := FileDocument(filepath.Join(dir, "nope.pdf"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := FileDocument(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is a directory")
	})
}

func TestDocument_OpenTwice(t *testing.T) {
	doc := BytesDocument("a.pdf", []byte("abc"))
	for i := 0; i < 2; i++ {
		rc, err := doc.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "abc", string(data))
		require.NoError(t, rc.Close())
	}
}

func TestDocument_Zero(t *testing.T) {
	var doc Document
	_, err := doc.Open()
	assert.ErrorIs(t, err, common.ErrNoFile)
}

func TestHasPDFExtension(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"statement.pdf", true},
		{"STATEMENT.PDF", true},
		{"archive.pdf.zip", false},
		{"statement.csv", false},
		{"pdf", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasPDFExtension(tt.name))
		})
	}
}
