package workflow

import (
	"context"
	"fmt"

	"github.com/jackzampolin/inkwell/internal/prompts"
	"github.com/jackzampolin/inkwell/internal/store"
)

// Run is the in-memory state for one workflow invocation. It is hydrated
// from the datastore at the start of a run, mutated in place by each
// stage, and discarded afterwards; everything durable lives in the store.
type Run struct {
	BookID      string
	Title       string
	NotesBefore string

	Outline     string
	NotesAfter  string
	OutlineGate string

	// Chapter is the next chapter number to generate (1-based).
	Chapter       int
	TotalChapters int
	// ChapterGateDefault is the book-level gating fallback applied when a
	// chapter row has no flag of its own.
	ChapterGateDefault string
	Summaries          []prompts.Summary

	FinalGate    string
	FinalNotes   string
	OutputStatus string

	// Event is the last stage outcome; routers branch on it.
	Event Event
}

// LoadRun hydrates a fresh Run from the books table.
func LoadRun(ctx context.Context, s *store.Store, bookID string) (*Run, error) {
	book, err := s.GetBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("load book %s: %w", bookID, err)
	}

	return &Run{
		BookID:             book.ID,
		Title:              book.Title,
		NotesBefore:        book.NotesOnOutlineBefore,
		Outline:            book.Outline,
		NotesAfter:         book.NotesOnOutlineAfter,
		OutlineGate:        book.StatusOutlineNotes,
		Chapter:            1,
		TotalChapters:      book.TotalChapters,
		ChapterGateDefault: book.ChapterNotesStatus,
		FinalGate:          book.FinalReviewNotesStatus,
		FinalNotes:         book.FinalReviewNotes,
		OutputStatus:       book.OutputStatus,
	}, nil
}
