package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Outline lifecycle values for Book.OutlineStatus.
const (
	OutlineStatusPending   = "pending"
	OutlineStatusGenerated = "generated"
	OutlineStatusApproved  = "approved"
)

// Output lifecycle values for Book.OutputStatus.
const (
	OutputStatusNotStarted = "not_started"
	OutputStatusInProgress = "in_progress"
	OutputStatusReady      = "ready"
	OutputStatusError      = "error"
)

// Book is one row of the books table.
type Book struct {
	ID                     string
	Title                  string
	NotesOnOutlineBefore   string
	Outline                string
	NotesOnOutlineAfter    string
	StatusOutlineNotes     string
	OutlineStatus          string
	ChapterNotesStatus     string
	FinalReviewNotesStatus string
	FinalReviewNotes       string
	OutputStatus           string
	TotalChapters          int
	OutputFileURL          string
	SheetRowID             int
}

const bookColumns = `id, title,
	COALESCE(notes_on_outline_before,''), COALESCE(outline,''),
	COALESCE(notes_on_outline_after,''), COALESCE(status_outline_notes,''),
	COALESCE(outline_status,''), COALESCE(chapter_notes_status,''),
	COALESCE(final_review_notes_status,''), COALESCE(final_review_notes,''),
	COALESCE(book_output_status,''), total_chapters,
	COALESCE(output_file_url,''), sheet_row_id`

func scanBook(row *sql.Row) (Book, error) {
	var b Book
	err := row.Scan(
		&b.ID, &b.Title,
		&b.NotesOnOutlineBefore, &b.Outline,
		&b.NotesOnOutlineAfter, &b.StatusOutlineNotes,
		&b.OutlineStatus, &b.ChapterNotesStatus,
		&b.FinalReviewNotesStatus, &b.FinalReviewNotes,
		&b.OutputStatus, &b.TotalChapters,
		&b.OutputFileURL, &b.SheetRowID,
	)
	if err == sql.ErrNoRows {
		return b, ErrNotFound
	}
	return b, err
}

// GetBook returns the book with the given id, or ErrNotFound.
func (s *Store) GetBook(ctx context.Context, id string) (Book, error) {
	return scanBook(s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id=?`, id))
}

// InsertBook creates a new book row.
func (s *Store) InsertBook(ctx context.Context, b Book) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO books (
			id, title, notes_on_outline_before, outline, notes_on_outline_after,
			status_outline_notes, outline_status, chapter_notes_status,
			final_review_notes_status, final_review_notes, book_output_status,
			total_chapters, output_file_url, sheet_row_id
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		b.ID, b.Title, b.NotesOnOutlineBefore, b.Outline, b.NotesOnOutlineAfter,
		b.StatusOutlineNotes, b.OutlineStatus, b.ChapterNotesStatus,
		b.FinalReviewNotesStatus, b.FinalReviewNotes, b.OutputStatus,
		b.TotalChapters, b.OutputFileURL, b.SheetRowID,
	)
	if err != nil {
		return fmt.Errorf("insert book %s: %w", b.ID, err)
	}
	return nil
}

// UpdateBook overwrites the editor-managed columns of an existing book.
// Used by the spreadsheet importers; workflow-owned columns (outline,
// statuses, output URL) are written by the dedicated setters below.
func (s *Store) UpdateBook(ctx context.Context, b Book) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE books SET
			title=?, notes_on_outline_before=?, notes_on_outline_after=?,
			status_outline_notes=?, chapter_notes_status=?,
			final_review_notes_status=?, final_review_notes=?,
			sheet_row_id=?, updated_at=CURRENT_TIMESTAMP
		WHERE id=?`,
		b.Title, b.NotesOnOutlineBefore, b.NotesOnOutlineAfter,
		b.StatusOutlineNotes, b.ChapterNotesStatus,
		b.FinalReviewNotesStatus, b.FinalReviewNotes,
		b.SheetRowID, b.ID,
	)
	if err != nil {
		return fmt.Errorf("update book %s: %w", b.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetOutline stores a generated outline together with the resolved chapter
// target and the new outline lifecycle status.
func (s *Store) SetOutline(ctx context.Context, id, outline, outlineStatus string, totalChapters int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE books SET outline=?, outline_status=?, total_chapters=?,
			updated_at=CURRENT_TIMESTAMP
		WHERE id=?`,
		outline, outlineStatus, totalChapters, id)
	if err != nil {
		return fmt.Errorf("set outline for %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetOutputStatus updates only the book output status.
func (s *Store) SetOutputStatus(ctx context.Context, id, status string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE books SET book_output_status=?, updated_at=CURRENT_TIMESTAMP
		WHERE id=?`, status, id)
	if err != nil {
		return fmt.Errorf("set output status for %s: %w", id, err)
	}
	return nil
}

// SetOutput records the compiled artifact URL and the final output status.
func (s *Store) SetOutput(ctx context.Context, id, status, url string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE books SET book_output_status=?, output_file_url=?,
			updated_at=CURRENT_TIMESTAMP
		WHERE id=?`, status, url, id)
	if err != nil {
		return fmt.Errorf("set output for %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// OutlineGate re-reads the outline gating flag. Routers call this instead of
// trusting the snapshot loaded at run start, so an editor's mid-run change
// is observed.
func (s *Store) OutlineGate(ctx context.Context, id string) (string, error) {
	var status string
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(status_outline_notes,'') FROM books WHERE id=?`, id).Scan(&status)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read outline gate for %s: %w", id, err)
	}
	return status, nil
}

// FinalReview re-reads the final-review gating fields and title.
func (s *Store) FinalReview(ctx context.Context, id string) (status, notes, title string, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT COALESCE(final_review_notes_status,''), COALESCE(final_review_notes,''), title
		FROM books WHERE id=?`, id).Scan(&status, &notes, &title)
	if err == sql.ErrNoRows {
		return "", "", "", ErrNotFound
	}
	if err != nil {
		return "", "", "", fmt.Errorf("read final review for %s: %w", id, err)
	}
	return status, notes, title, nil
}

// FindBookByTitleOrRow locates a book by exact title or by imported sheet
// row id. Used by the importers for create-or-update decisions.
func (s *Store) FindBookByTitleOrRow(ctx context.Context, title string, sheetRowID int) (Book, error) {
	return scanBook(s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE title=? OR sheet_row_id=? LIMIT 1`,
		title, sheetRowID))
}
