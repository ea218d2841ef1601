package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/jackzampolin/inkwell/internal/store"
)

// excelDataStart is the first data row in the XLSX template (1-based).
// Row 1 holds headers, row 2 the template's example line.
const excelDataStart = 3

// ImportExcel reads books from a local XLSX workbook. When sheetName is
// empty or absent from the workbook, the first worksheet is used.
func ImportExcel(ctx context.Context, s *store.Store, path, sheetName string, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Result{}, fmt.Errorf("workbook %s has no worksheets", path)
	}
	sheet := sheets[0]
	if sheetName != "" {
		found := false
		for _, name := range sheets {
			if name == sheetName {
				sheet, found = name, true
				break
			}
		}
		if !found {
			logger.Warn("worksheet not found, using first sheet",
				"requested", sheetName, "using", sheet)
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return Result{}, fmt.Errorf("read worksheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return Result{}, fmt.Errorf("worksheet %s is empty", sheet)
	}

	fields := mapHeaders(rows[0])
	if _, ok := headerFieldPresent(fields, fieldTitle); !ok {
		return Result{}, fmt.Errorf("worksheet %s has no title column", sheet)
	}

	var parsed []Row
	skipped := 0
	for i, cells := range rows {
		rowNumber := i + 1
		if rowNumber < excelDataStart {
			continue
		}
		row, ok := parseRow(fields, cells, rowNumber)
		if !ok {
			skipped++
			continue
		}
		parsed = append(parsed, row)
	}

	logger.Info("parsed workbook", "path", path, "sheet", sheet, "rows", len(parsed))
	return importRows(ctx, s, parsed, skipped, logger)
}

func headerFieldPresent(fields map[int]string, name string) (int, bool) {
	for i, f := range fields {
		if f == name {
			return i, true
		}
	}
	return 0, false
}
