// Package ingest imports book rows from spreadsheets (local XLSX files or
// Google Sheets) into the datastore. Imports are idempotent: rows are
// matched to existing books by title or by source row id, and only the
// editor-managed columns are overwritten.
package ingest

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jackzampolin/inkwell/internal/store"
)

// Row is one parsed spreadsheet row.
type Row struct {
	Title                  string
	NotesOnOutlineBefore   string
	StatusOutlineNotes     string
	NotesOnOutlineAfter    string
	ChapterNotesStatus     string
	FinalReviewNotesStatus string
	FinalReviewNotes       string
	// SheetRowID ties the book back to its source row. Falls back to the
	// physical row number when the sheet has no explicit id column.
	SheetRowID int
}

// Result summarizes one import pass.
type Result struct {
	Created int
	Updated int
	Skipped int
}

// Recognized header names after normalization.
const (
	fieldTitle                  = "title"
	fieldNotesOnOutlineBefore   = "notes_on_outline_before"
	fieldStatusOutlineNotes     = "status_outline_notes"
	fieldNotesOnOutlineAfter    = "notes_on_outline_after"
	fieldChapterNotesStatus     = "chapter_notes_status"
	fieldFinalReviewNotesStatus = "final_review_notes_status"
	fieldFinalReviewNotes       = "final_review_notes"
	fieldSheetRowID             = "sheet_row_id"
)

var knownFields = map[string]bool{
	fieldTitle:                  true,
	fieldNotesOnOutlineBefore:   true,
	fieldStatusOutlineNotes:     true,
	fieldNotesOnOutlineAfter:    true,
	fieldChapterNotesStatus:     true,
	fieldFinalReviewNotesStatus: true,
	fieldFinalReviewNotes:       true,
	fieldSheetRowID:             true,
}

// normalizeHeader folds a header cell to the canonical field form:
// lowercase with single underscores for whitespace runs.
func normalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(h))), "_")
}

// mapHeaders maps column index to recognized field name. Unknown columns
// are ignored.
func mapHeaders(headers []string) map[int]string {
	fields := make(map[int]string)
	for i, h := range headers {
		if name := normalizeHeader(h); knownFields[name] {
			fields[i] = name
		}
	}
	return fields
}

// Template sheets ship with instruction rows in place of real titles.
var placeholderMarkers = []string{"required", "optional", "default:", "yes/no"}

func isPlaceholderTitle(title string) bool {
	t := strings.ToLower(title)
	for _, m := range placeholderMarkers {
		if strings.Contains(t, m) {
			return true
		}
	}
	return false
}

// parseRow builds a Row from one line of cells. The second return is false
// for rows that should be skipped: no title, or a template placeholder.
func parseRow(fields map[int]string, cells []string, rowNumber int) (Row, bool) {
	row := Row{SheetRowID: rowNumber}
	for i, cell := range cells {
		name, ok := fields[i]
		if !ok {
			continue
		}
		value := strings.TrimSpace(cell)
		switch name {
		case fieldTitle:
			row.Title = value
		case fieldNotesOnOutlineBefore:
			row.NotesOnOutlineBefore = value
		case fieldStatusOutlineNotes:
			row.StatusOutlineNotes = value
		case fieldNotesOnOutlineAfter:
			row.NotesOnOutlineAfter = value
		case fieldChapterNotesStatus:
			row.ChapterNotesStatus = value
		case fieldFinalReviewNotesStatus:
			row.FinalReviewNotesStatus = value
		case fieldFinalReviewNotes:
			row.FinalReviewNotes = value
		case fieldSheetRowID:
			if id, err := strconv.Atoi(value); err == nil && id > 0 {
				row.SheetRowID = id
			}
		}
	}

	if row.Title == "" || isPlaceholderTitle(row.Title) {
		return Row{}, false
	}
	return row, true
}

// applyDefaults fills the gating flags an editor usually leaves blank. A
// blank flag would pause the workflow, which is the wrong default for a
// freshly imported book.
func (r *Row) applyDefaults() {
	if r.StatusOutlineNotes == "" {
		r.StatusOutlineNotes = "no_notes_needed"
	}
	if r.ChapterNotesStatus == "" {
		r.ChapterNotesStatus = "no_notes_needed"
	}
	if r.FinalReviewNotesStatus == "" {
		r.FinalReviewNotesStatus = "no_notes_needed"
	}
}

// importRows upserts parsed rows into the datastore.
func importRows(ctx context.Context, s *store.Store, rows []Row, skipped int, logger *slog.Logger) (Result, error) {
	res := Result{Skipped: skipped}

	for _, row := range rows {
		row.applyDefaults()

		existing, err := s.FindBookByTitleOrRow(ctx, row.Title, row.SheetRowID)
		switch {
		case err == nil:
			existing.Title = row.Title
			existing.NotesOnOutlineBefore = row.NotesOnOutlineBefore
			existing.NotesOnOutlineAfter = row.NotesOnOutlineAfter
			existing.StatusOutlineNotes = row.StatusOutlineNotes
			existing.ChapterNotesStatus = row.ChapterNotesStatus
			existing.FinalReviewNotesStatus = row.FinalReviewNotesStatus
			existing.FinalReviewNotes = row.FinalReviewNotes
			existing.SheetRowID = row.SheetRowID
			if err := s.UpdateBook(ctx, existing); err != nil {
				return res, err
			}
			res.Updated++
			logger.Info("updated book from sheet", "book", existing.ID, "title", row.Title, "row", row.SheetRowID)

		case errors.Is(err, store.ErrNotFound):
			book := store.Book{
				ID:                     uuid.New().String(),
				Title:                  row.Title,
				NotesOnOutlineBefore:   row.NotesOnOutlineBefore,
				NotesOnOutlineAfter:    row.NotesOnOutlineAfter,
				StatusOutlineNotes:     row.StatusOutlineNotes,
				ChapterNotesStatus:     row.ChapterNotesStatus,
				FinalReviewNotesStatus: row.FinalReviewNotesStatus,
				FinalReviewNotes:       row.FinalReviewNotes,
				OutlineStatus:          store.OutlineStatusPending,
				OutputStatus:           store.OutputStatusNotStarted,
				SheetRowID:             row.SheetRowID,
			}
			if err := s.InsertBook(ctx, book); err != nil {
				return res, err
			}
			res.Created++
			logger.Info("imported new book", "book", book.ID, "title", row.Title, "row", row.SheetRowID)

		default:
			return res, err
		}
	}

	logger.Info("sheet import finished",
		"created", res.Created, "updated", res.Updated, "skipped", res.Skipped)
	return res, nil
}
