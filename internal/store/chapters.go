package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Chapter is one row of the chapters table, keyed by (book, number).
type Chapter struct {
	BookID        string
	ChapterNumber int
	Title         string
	Content       string
	EditorNotes   string
	NotesStatus   string
	Status        string
}

// ChapterSummary is the short per-chapter summary used as context for
// later chapters.
type ChapterSummary struct {
	BookID        string
	ChapterNumber int
	Summary       string
}

// UpsertChapter creates or replaces the chapter keyed by
// (book_id, chapter_number). Editor-owned columns (notes, gating status)
// are preserved on conflict.
func (s *Store) UpsertChapter(ctx context.Context, c Chapter) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chapters (book_id, chapter_number, title, content, editor_notes, notes_status, status)
		VALUES (?,?,?,?,?,?,?)
		ON CONFLICT(book_id, chapter_number) DO UPDATE SET
			title=excluded.title,
			content=excluded.content,
			status=excluded.status`,
		c.BookID, c.ChapterNumber, c.Title, c.Content, c.EditorNotes, c.NotesStatus, c.Status,
	)
	if err != nil {
		return fmt.Errorf("upsert chapter %d of %s: %w", c.ChapterNumber, c.BookID, err)
	}
	return nil
}

// GetChapter returns one chapter, or ErrNotFound when the row does not
// exist yet (normal for a chapter that has never been generated).
func (s *Store) GetChapter(ctx context.Context, bookID string, number int) (Chapter, error) {
	var c Chapter
	err := s.db.QueryRowContext(ctx, `
		SELECT book_id, chapter_number, COALESCE(title,''), COALESCE(content,''),
			COALESCE(editor_notes,''), COALESCE(notes_status,''), COALESCE(status,'')
		FROM chapters WHERE book_id=? AND chapter_number=?`,
		bookID, number).Scan(
		&c.BookID, &c.ChapterNumber, &c.Title, &c.Content,
		&c.EditorNotes, &c.NotesStatus, &c.Status)
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	if err != nil {
		return c, fmt.Errorf("get chapter %d of %s: %w", number, bookID, err)
	}
	return c, nil
}

// ListChapters returns all chapters of a book ordered by chapter number.
func (s *Store) ListChapters(ctx context.Context, bookID string) ([]Chapter, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT book_id, chapter_number, COALESCE(title,''), COALESCE(content,''),
			COALESCE(editor_notes,''), COALESCE(notes_status,''), COALESCE(status,'')
		FROM chapters WHERE book_id=? ORDER BY chapter_number ASC`, bookID)
	if err != nil {
		return nil, fmt.Errorf("list chapters of %s: %w", bookID, err)
	}
	defer rows.Close()

	var chapters []Chapter
	for rows.Next() {
		var c Chapter
		if err := rows.Scan(&c.BookID, &c.ChapterNumber, &c.Title, &c.Content,
			&c.EditorNotes, &c.NotesStatus, &c.Status); err != nil {
			return nil, err
		}
		chapters = append(chapters, c)
	}
	return chapters, rows.Err()
}

// UpsertSummary creates or replaces the summary keyed by
// (book_id, chapter_number).
func (s *Store) UpsertSummary(ctx context.Context, cs ChapterSummary) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chapter_summaries (book_id, chapter_number, summary)
		VALUES (?,?,?)
		ON CONFLICT(book_id, chapter_number) DO UPDATE SET summary=excluded.summary`,
		cs.BookID, cs.ChapterNumber, cs.Summary,
	)
	if err != nil {
		return fmt.Errorf("upsert summary %d of %s: %w", cs.ChapterNumber, cs.BookID, err)
	}
	return nil
}

// SummariesBefore returns the summaries of all chapters below the given
// number, ordered ascending.
func (s *Store) SummariesBefore(ctx context.Context, bookID string, number int) ([]ChapterSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT book_id, chapter_number, COALESCE(summary,'')
		FROM chapter_summaries
		WHERE book_id=? AND chapter_number<?
		ORDER BY chapter_number ASC`, bookID, number)
	if err != nil {
		return nil, fmt.Errorf("list summaries of %s: %w", bookID, err)
	}
	defer rows.Close()

	var summaries []ChapterSummary
	for rows.Next() {
		var cs ChapterSummary
		if err := rows.Scan(&cs.BookID, &cs.ChapterNumber, &cs.Summary); err != nil {
			return nil, err
		}
		summaries = append(summaries, cs)
	}
	return summaries, rows.Err()
}
