package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Veraticus/statement-reader/internal/common"
	"github.com/Veraticus/statement-reader/internal/export"
	"github.com/Veraticus/statement-reader/internal/model"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Writer creates one spreadsheet per export with a Credit and a Debit tab.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a writer authenticated from config.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return NewWriterWithService(service, config, logger), nil
}

// NewWriterWithService creates a writer around an existing service.
func NewWriterWithService(service *sheets.Service, config Config, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		config:  config,
		service: service,
		logger:  logger,
	}
}

// Export creates a spreadsheet titled name and returns its URL.
func (w *Writer) Export(ctx context.Context, txns []model.Transaction, name string) (string, error) {
	title := name
	if title == "" {
		title = w.config.SpreadsheetName
	}

	tabs := export.Partition(txns)
	w.logger.Info("Exporting to Google Sheets",
		"title", title,
		"credits", len(tabs[0].Rows),
		"debits", len(tabs[1].Rows))

	retryOpts := common.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	// Creation is not idempotent: a failed response may still have created
	// the spreadsheet, so it is attempted once.
	created, err := w.createSpreadsheet(ctx, title, tabs)
	if err != nil {
		return "", fmt.Errorf("failed to create spreadsheet: %w", classify(err))
	}

	err = common.WithRetry(ctx, func() error {
		return classify(w.writeData(ctx, created.SpreadsheetId, tabs))
	}, retryOpts)
	if err != nil {
		return "", fmt.Errorf("failed to write data: %w", err)
	}

	if w.config.EnableFormatting {
		err = common.WithRetry(ctx, func() error {
			return classify(w.applyFormatting(ctx, created))
		}, retryOpts)
		if err != nil {
			// Data is already written; formatting is cosmetic.
			w.logger.Warn("Failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("Spreadsheet export completed",
		"spreadsheet_id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetUrl, nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		client := oauthConfig(config.ClientID, config.ClientSecret, "")
		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}
		tokenSource = client.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

func (w *Writer) createSpreadsheet(ctx context.Context, title string, tabs []export.Sheet) (*sheets.Spreadsheet, error) {
	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    title,
			TimeZone: w.config.TimeZone,
		},
	}
	for _, tab := range tabs {
		spreadsheet.Sheets = append(spreadsheet.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: tab.Name},
		})
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	w.logger.Debug("Created spreadsheet", "id", created.SpreadsheetId)
	return created, nil
}

// writeData writes every tab in one batch request. Values are sent RAW so
// descriptions are never interpreted as formulas.
func (w *Writer) writeData(ctx context.Context, spreadsheetID string, tabs []export.Sheet) error {
	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
	}

	for _, tab := range tabs {
		values := make([][]any, 0, len(tab.Rows)+1)
		values = append(values, export.HeaderRow())
		for _, t := range tab.Rows {
			values = append(values, export.Row(t))
		}

		req.Data = append(req.Data, &sheets.ValueRange{
			Range:  tab.Name + "!A1",
			Values: values,
		})
	}

	_, err := w.service.Spreadsheets.Values.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
	return err
}

// applyFormatting bolds and freezes the header row and formats the amount
// column on every tab.
func (w *Writer) applyFormatting(ctx context.Context, spreadsheet *sheets.Spreadsheet) error {
	requests := make([]*sheets.Request, 0, len(spreadsheet.Sheets)*4)

	for _, s := range spreadsheet.Sheets {
		if s.Properties == nil {
			continue
		}
		id := s.Properties.SheetId

		requests = append(requests,
			&sheets.Request{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: &sheets.GridRange{
						SheetId:       id,
						StartRowIndex: 0,
						EndRowIndex:   1,
					},
					Cell: &sheets.CellData{
						UserEnteredFormat: &sheets.CellFormat{
							TextFormat: &sheets.TextFormat{Bold: true},
						},
					},
					Fields: "userEnteredFormat.textFormat",
				},
			},
			&sheets.Request{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: &sheets.GridRange{
						SheetId:          id,
						StartRowIndex:    1,
						StartColumnIndex: 2,
						EndColumnIndex:   3,
					},
					Cell: &sheets.CellData{
						UserEnteredFormat: &sheets.CellFormat{
							NumberFormat: &sheets.NumberFormat{
								Type:    "NUMBER",
								Pattern: "#,##0.00",
							},
						},
					},
					Fields: "userEnteredFormat.numberFormat",
				},
			},
			&sheets.Request{
				AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
					Dimensions: &sheets.DimensionRange{
						SheetId:    id,
						Dimension:  "COLUMNS",
						StartIndex: 0,
						EndIndex:   int64(len(export.Header)),
					},
				},
			},
			&sheets.Request{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &sheets.SheetProperties{
						SheetId: id,
						GridProperties: &sheets.GridProperties{
							FrozenRowCount: 1,
						},
					},
					Fields: "gridProperties.frozenRowCount",
				},
			},
		)
	}

	if len(requests) == 0 {
		return nil
	}

	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheet.SpreadsheetId, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return err
}

// classify marks API errors as retryable or not for common.WithRetry.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
		case apiErr.Code >= 500:
			return &common.RetryableError{Err: err, Retryable: true}
		default:
			return &common.RetryableError{Err: err, Retryable: false}
		}
	}

	return err
}
