package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/jackzampolin/inkwell/internal/store"
)

// sheetsDataStart is the first data row in the Google Sheets template
// (1-based). Row 1 holds headers.
const sheetsDataStart = 2

// sheetsReadRange covers every column the template can reasonably use.
const sheetsReadRange = "A1:Z"

// ImportSheets reads books from a Google Sheets spreadsheet. Credentials
// come from the service-account JSON file named by the
// GOOGLE_SERVICE_ACCOUNT_JSON environment variable.
func ImportSheets(ctx context.Context, s *store.Store, spreadsheetID, sheetName string, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	credsPath := os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON")
	if credsPath == "" {
		return Result{}, fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_JSON is not set")
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credsPath),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return Result{}, fmt.Errorf("create sheets service: %w", err)
	}

	readRange := sheetsReadRange
	if sheetName != "" {
		readRange = sheetName + "!" + sheetsReadRange
	}

	resp, err := svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return Result{}, fmt.Errorf("read spreadsheet %s: %w", spreadsheetID, err)
	}
	if len(resp.Values) == 0 {
		return Result{}, fmt.Errorf("spreadsheet %s returned no rows", spreadsheetID)
	}

	fields := mapHeaders(cellsToStrings(resp.Values[0]))
	if _, ok := headerFieldPresent(fields, fieldTitle); !ok {
		return Result{}, fmt.Errorf("spreadsheet %s has no title column", spreadsheetID)
	}

	var parsed []Row
	skipped := 0
	for i, cells := range resp.Values {
		rowNumber := i + 1
		if rowNumber < sheetsDataStart {
			continue
		}
		row, ok := parseRow(fields, cellsToStrings(cells), rowNumber)
		if !ok {
			skipped++
			continue
		}
		parsed = append(parsed, row)
	}

	logger.Info("parsed spreadsheet", "spreadsheet", spreadsheetID, "rows", len(parsed))
	return importRows(ctx, s, parsed, skipped, logger)
}

func cellsToStrings(cells []interface{}) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = fmt.Sprint(c)
	}
	return out
}
