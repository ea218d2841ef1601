package ingest

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/jackzampolin/inkwell/internal/store"
)

func TestNormalizeHeader(t *testing.T) {
	cases := map[string]string{
		"Title":                     "title",
		"  Notes On Outline Before": "notes_on_outline_before",
		"STATUS_OUTLINE_NOTES":      "status_outline_notes",
		"final review notes":        "final_review_notes",
		"":                          "",
	}
	for in, want := range cases {
		if got := normalizeHeader(in); got != want {
			t.Errorf("normalizeHeader(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMapHeaders(t *testing.T) {
	fields := mapHeaders([]string{"Title", "Unknown Column", "Chapter Notes Status"})
	if fields[0] != fieldTitle {
		t.Errorf("column 0 = %q, want title", fields[0])
	}
	if _, ok := fields[1]; ok {
		t.Error("unknown column should not be mapped")
	}
	if fields[2] != fieldChapterNotesStatus {
		t.Errorf("column 2 = %q, want chapter_notes_status", fields[2])
	}
}

func TestParseRow(t *testing.T) {
	fields := mapHeaders([]string{"Title", "Notes On Outline Before", "Sheet Row ID"})

	t.Run("real row", func(t *testing.T) {
		row, ok := parseRow(fields, []string{" My Book ", "notes here", "12"}, 5)
		if !ok {
			t.Fatal("row unexpectedly skipped")
		}
		if row.Title != "My Book" {
			t.Errorf("title = %q", row.Title)
		}
		if row.NotesOnOutlineBefore != "notes here" {
			t.Errorf("notes = %q", row.NotesOnOutlineBefore)
		}
		if row.SheetRowID != 12 {
			t.Errorf("sheet row id = %d, want explicit 12", row.SheetRowID)
		}
	})

	t.Run("row number fallback", func(t *testing.T) {
		row, ok := parseRow(fields, []string{"Another Book", "", "not-a-number"}, 7)
		if !ok {
			t.Fatal("row unexpectedly skipped")
		}
		if row.SheetRowID != 7 {
			t.Errorf("sheet row id = %d, want physical row 7", row.SheetRowID)
		}
	})

	t.Run("empty title skipped", func(t *testing.T) {
		if _, ok := parseRow(fields, []string{"", "notes"}, 3); ok {
			t.Error("row without title must be skipped")
		}
	})

	t.Run("template placeholders skipped", func(t *testing.T) {
		for _, title := range []string{
			"REQUIRED: enter a title",
			"(optional)",
			"default: no_notes_needed",
			"yes/no",
		} {
			if _, ok := parseRow(fields, []string{title}, 2); ok {
				t.Errorf("placeholder row %q must be skipped", title)
			}
		}
	})

	t.Run("short row", func(t *testing.T) {
		row, ok := parseRow(fields, []string{"Short Row"}, 4)
		if !ok {
			t.Fatal("row unexpectedly skipped")
		}
		if row.Title != "Short Row" || row.NotesOnOutlineBefore != "" {
			t.Errorf("row = %+v", row)
		}
	})
}

func TestApplyDefaults(t *testing.T) {
	row := Row{Title: "Book", StatusOutlineNotes: "yes"}
	row.applyDefaults()

	if row.StatusOutlineNotes != "yes" {
		t.Errorf("explicit flag overwritten: %q", row.StatusOutlineNotes)
	}
	if row.ChapterNotesStatus != "no_notes_needed" {
		t.Errorf("chapter flag = %q, want default", row.ChapterNotesStatus)
	}
	if row.FinalReviewNotesStatus != "no_notes_needed" {
		t.Errorf("final review flag = %q, want default", row.FinalReviewNotesStatus)
	}
}

func TestImportRowsUpsert(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "inkwell.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	rows := []Row{
		{Title: "First Book", NotesOnOutlineBefore: "draft notes", SheetRowID: 3},
		{Title: "Second Book", SheetRowID: 4},
	}

	res, err := importRows(ctx, s, rows, 1, logger)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Created != 2 || res.Updated != 0 || res.Skipped != 1 {
		t.Fatalf("result = %+v, want 2 created, 0 updated, 1 skipped", res)
	}

	book, err := s.FindBookByTitleOrRow(ctx, "First Book", 3)
	if err != nil {
		t.Fatalf("find book: %v", err)
	}
	if book.OutlineStatus != store.OutlineStatusPending {
		t.Errorf("outline status = %q, want pending", book.OutlineStatus)
	}
	if book.OutputStatus != store.OutputStatusNotStarted {
		t.Errorf("output status = %q, want not_started", book.OutputStatus)
	}
	if book.StatusOutlineNotes != "no_notes_needed" {
		t.Errorf("outline gate = %q, want default", book.StatusOutlineNotes)
	}

	// Second pass updates in place rather than duplicating.
	rows[0].NotesOnOutlineBefore = "revised notes"
	res, err = importRows(ctx, s, rows, 0, logger)
	if err != nil {
		t.Fatalf("reimport: %v", err)
	}
	if res.Created != 0 || res.Updated != 2 {
		t.Fatalf("result = %+v, want 0 created, 2 updated", res)
	}

	book, err = s.FindBookByTitleOrRow(ctx, "First Book", 3)
	if err != nil {
		t.Fatalf("find book after update: %v", err)
	}
	if book.NotesOnOutlineBefore != "revised notes" {
		t.Errorf("notes = %q, want revised", book.NotesOnOutlineBefore)
	}

	// A finished book stays finished across re-imports: only the
	// editor-managed columns are overwritten.
	if err := s.SetOutline(ctx, book.ID, "outline", store.OutlineStatusApproved, 2); err != nil {
		t.Fatalf("set outline: %v", err)
	}
	if err := s.SetOutput(ctx, book.ID, store.OutputStatusReady, "file:///out/book.docx"); err != nil {
		t.Fatalf("set output: %v", err)
	}
	if _, err := importRows(ctx, s, rows[:1], 0, logger); err != nil {
		t.Fatalf("third import: %v", err)
	}
	book, err = s.FindBookByTitleOrRow(ctx, "First Book", 3)
	if err != nil {
		t.Fatalf("find book after third import: %v", err)
	}
	if book.OutlineStatus != store.OutlineStatusApproved {
		t.Errorf("outline status = %q, re-import must not reset it", book.OutlineStatus)
	}
	if book.OutputStatus != store.OutputStatusReady {
		t.Errorf("output status = %q, re-import must not reset it", book.OutputStatus)
	}
	if book.OutputFileURL != "file:///out/book.docx" {
		t.Errorf("output url = %q, re-import must not clear it", book.OutputFileURL)
	}
}
