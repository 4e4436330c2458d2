// Package upload submits statement PDFs to the extraction service and tracks
// the lifecycle of the single staged file.
package upload

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/statement-reader/internal/common"
)

// PDFExtension is the only file type the selection surfaces accept.
const PDFExtension = ".pdf"

// PDFContentType is sent as the content type of the uploaded part.
const PDFContentType = "application/pdf"

// Document is a file staged for upload.
type Document struct {
	open func() (io.ReadCloser, error)
	Name string
	Size int64
}

// NewDocument creates a document whose content is produced by open.
func NewDocument(name string, size int64, open func() (io.ReadCloser, error)) Document {
	return Document{
		Name: name,
		Size: size,
		open: open,
	}
}

// FileDocument stages a file from disk.
func FileDocument(path string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return Document{}, fmt.Errorf("%s is a directory", path)
	}

	return NewDocument(filepath.Base(path), info.Size(), func() (io.ReadCloser, error) {
		return os.Open(path) // #nosec G304 - path chosen by the user
	}), nil
}

// BytesDocument stages in-memory content.
func BytesDocument(name string, data []byte) Document {
	return NewDocument(name, int64(len(data)), func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}

// Open returns a fresh reader over the document content.
func (d Document) Open() (io.ReadCloser, error) {
	if d.open == nil {
		return nil, common.ErrNoFile
	}
	return d.open()
}

// HasPDFExtension is the allow-list check used by file selection surfaces.
func HasPDFExtension(name string) bool {
	return strings.EqualFold(filepath.Ext(name), PDFExtension)
}
