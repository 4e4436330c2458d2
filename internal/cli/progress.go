package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/statement-reader/internal/upload"
	"github.com/schollz/progressbar/v3"
)

type readCloser struct {
	io.Reader
	io.Closer
}

// WithUploadProgress returns a copy of doc whose content reports read
// progress to out as it is streamed to the service.
func WithUploadProgress(doc upload.Document, out io.Writer) upload.Document {
	return upload.NewDocument(doc.Name, doc.Size, func() (io.ReadCloser, error) {
		rc, err := doc.Open()
		if err != nil {
			return nil, err
		}

		bar := progressbar.NewOptions64(doc.Size,
			progressbar.OptionSetWriter(out),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription(fmt.Sprintf("[cyan][bold]Uploading %s[reset]", doc.Name)),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				if _, err := fmt.Fprintln(out); err != nil {
					slog.Warn("Failed to write newline after progress bar", "error", err)
				}
			}),
		)

		return readCloser{Reader: io.TeeReader(rc, bar), Closer: rc}, nil
	})
}
