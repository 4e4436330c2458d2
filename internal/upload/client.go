package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/Veraticus/statement-reader/internal/common"
	"github.com/Veraticus/statement-reader/internal/model"
	"github.com/google/uuid"
)

// UploadPath is appended to the configured API base URL.
const UploadPath = "/files/upload"

// maxErrorBody bounds how much of a failed response is read for its detail.
const maxErrorBody = 1 << 20

// Client talks to the extraction service.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the overall request timeout on the configured HTTP client.
// An injected client is copied, not mutated.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UploadURL returns the endpoint documents are posted to.
func (c *Client) UploadURL() string {
	return c.baseURL + UploadPath
}

// Upload posts the document as multipart field "file" and returns the
// extracted transactions. Failures are *common.RequestError (non-2xx),
// *common.NetworkError (no response) or *common.ValidationError (bad payload).
func (c *Client) Upload(ctx context.Context, doc Document) ([]model.Transaction, error) {
	content, err := doc.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", doc.Name, err)
	}

	requestID := uuid.NewString()
	logger := c.logger.With("request_id", requestID, "file", doc.Name)

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		defer content.Close()
		pw.CloseWithError(writeMultipart(mw, doc.Name, content))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.UploadURL(), pr)
	if err != nil {
		_ = pr.Close()
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	logger.Debug("Uploading statement", "url", c.UploadURL(), "size", doc.Size)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		_ = pr.CloseWithError(err)
		logger.Warn("Upload failed without response", "error", err)
		return nil, &common.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		reqErr := &common.RequestError{
			StatusCode: resp.StatusCode,
			Detail:     errorDetail(body),
		}
		logger.Warn("Extraction service rejected upload",
			"status", resp.StatusCode,
			"detail", reqErr.Detail)
		return nil, reqErr
	}

	txns, err := DecodeResponse(resp.Body)
	if err != nil {
		logger.Warn("Extraction service returned an invalid payload", "error", err)
		return nil, err
	}

	logger.Info("Statement extracted",
		"transactions", len(txns),
		"duration", time.Since(start).Round(time.Millisecond))

	return txns, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeMultipart(mw *multipart.Writer, filename string, content io.Reader) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(filename)))
	header.Set("Content-Type", PDFContentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, content); err != nil {
		return err
	}
	return mw.Close()
}
