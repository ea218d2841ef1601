package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackzampolin/inkwell/internal/prompts"
	"github.com/jackzampolin/inkwell/internal/providers"
	"github.com/jackzampolin/inkwell/internal/store"
)

const (
	summaryMarker      = "Summary:"
	summaryPlaceholder = "Summary section not found."
)

// splitChapter separates the generated text into chapter body and summary
// on the literal marker. Without the marker the whole text is the body and
// the summary becomes a fixed placeholder.
func splitChapter(text string) (body, summary string) {
	text = strings.TrimSpace(text)
	if i := strings.Index(text, summaryMarker); i >= 0 {
		return strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+len(summaryMarker):])
	}
	return text, summaryPlaceholder
}

// generateChapter writes chapter N using the summaries of chapters < N as
// context, gated by the chapter's stored flag.
func (e *Engine) generateChapter(ctx context.Context, run *Run) error {
	n := run.Chapter
	if n > run.TotalChapters {
		e.logger.Info("all chapters completed", "book", run.BookID, "total", run.TotalChapters)
		run.Event = EventAllChaptersDone
		return nil
	}

	e.logger.Info("generating chapter", "book", run.BookID, "chapter", n, "total", run.TotalChapters)

	// Backfill prior summaries when resuming mid-book. Best effort: a
	// failed load degrades prompt context, it does not abort the run.
	if len(run.Summaries) == 0 && n > 1 {
		summaries, err := e.store.SummariesBefore(ctx, run.BookID, n)
		if err != nil {
			e.logger.Warn("summary backfill failed, continuing without context",
				"book", run.BookID, "error", err)
		} else {
			for _, cs := range summaries {
				run.Summaries = append(run.Summaries, prompts.Summary{
					ChapterNumber: cs.ChapterNumber,
					Text:          cs.Summary,
				})
			}
		}
	}

	// The chapter row may not exist yet; fall back to the book-level
	// chapter gating default in that case.
	gate := run.ChapterGateDefault
	var editorNotes string
	chapter, err := e.store.GetChapter(ctx, run.BookID, n)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return err
	default:
		editorNotes = chapter.EditorNotes
		if chapter.NotesStatus != "" {
			gate = chapter.NotesStatus
		}
	}

	switch Evaluate(gate) {
	case WaitForInput:
		e.logger.Info("chapter waiting for editor notes", "book", run.BookID, "chapter", n)
		run.Event = EventWaitingChapterNotes
		return nil
	case Paused:
		e.logger.Warn("chapter paused", "book", run.BookID, "chapter", n, "status", gate)
		run.Event = EventPausedChapterStatus
		return nil
	}

	prompt, err := prompts.Chapter(prompts.ChapterData{
		Title:             run.Title,
		Outline:           run.Outline,
		ChapterNumber:     n,
		PreviousSummaries: prompts.PreviousSummaries(run.Summaries),
		ChapterNotes:      editorNotes,
	})
	if err != nil {
		return err
	}

	result, err := e.llm.Complete(ctx, &providers.Request{Prompt: prompt})
	if err != nil {
		return err
	}

	body, summary := splitChapter(result.Content)

	if err := e.store.UpsertChapter(ctx, store.Chapter{
		BookID:        run.BookID,
		ChapterNumber: n,
		Title:         fmt.Sprintf("Chapter %d", n),
		Content:       body,
		Status:        "generated",
	}); err != nil {
		return err
	}
	if err := e.store.UpsertSummary(ctx, store.ChapterSummary{
		BookID:        run.BookID,
		ChapterNumber: n,
		Summary:       summary,
	}); err != nil {
		return err
	}

	run.Summaries = append(run.Summaries, prompts.Summary{ChapterNumber: n, Text: summary})
	run.Chapter++
	run.Event = EventChapterGenerated
	e.logger.Info("chapter generated", "book", run.BookID, "chapter", n, "chars", len(body))
	return nil
}

// routeAfterChapter loops while chapters remain, otherwise moves on to
// compilation. Unknown events fall through to notify.
func routeAfterChapter(run *Run) node {
	switch run.Event {
	case EventWaitingChapterNotes, EventPausedChapterStatus:
		return nodeNotify
	case EventChapterGenerated:
		if run.Chapter <= run.TotalChapters {
			return nodeChapter
		}
		return nodeCompile
	case EventAllChaptersDone:
		return nodeCompile
	default:
		return nodeNotify
	}
}
