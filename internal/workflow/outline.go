package workflow

import (
	"context"
	"strings"

	"github.com/jackzampolin/inkwell/internal/prompts"
	"github.com/jackzampolin/inkwell/internal/providers"
	"github.com/jackzampolin/inkwell/internal/store"
)

// generateOutline produces and stores an outline if allowed by gating
// rules. Without pre-outline notes there is nothing to work from, so the
// stage emits its event and skips the model call entirely.
func (e *Engine) generateOutline(ctx context.Context, run *Run) error {
	if strings.TrimSpace(run.NotesBefore) == "" {
		e.logger.Warn("missing pre-outline notes, cannot generate outline", "book", run.BookID)
		run.Event = EventMissingOutlineNotes
		return nil
	}

	prompt, err := prompts.Outline(prompts.OutlineData{
		Title:        run.Title,
		NotesBefore:  run.NotesBefore,
		NotesAfter:   run.NotesAfter,
		ChapterCount: e.chapterTarget,
	})
	if err != nil {
		return err
	}

	e.logger.Info("generating outline", "book", run.BookID, "chapters", e.chapterTarget)
	result, err := e.llm.Complete(ctx, &providers.Request{Prompt: prompt})
	if err != nil {
		return err
	}

	outline := strings.TrimSpace(result.Content)
	if err := e.store.SetOutline(ctx, run.BookID, outline, store.OutlineStatusGenerated, e.chapterTarget); err != nil {
		return err
	}

	run.Outline = outline
	run.TotalChapters = e.chapterTarget
	run.Event = EventOutlineGenerated
	return nil
}

// routeAfterOutline decides the next node. The outline gating flag is
// re-read from the datastore: editors may have changed it mid-run.
func (e *Engine) routeAfterOutline(ctx context.Context, run *Run) (node, error) {
	if run.Event == EventMissingOutlineNotes {
		return nodeNotify, nil
	}
	if run.Event != EventOutlineGenerated {
		return nodeNotify, nil
	}

	status, err := e.store.OutlineGate(ctx, run.BookID)
	if err != nil {
		return nodeTerminated, err
	}
	run.OutlineGate = status

	switch Evaluate(status) {
	case Proceed:
		e.logger.Info("outline approved, proceeding to chapter generation", "book", run.BookID)
		return nodeChapter, nil
	case WaitForInput:
		e.logger.Info("outline approved, waiting for notes", "book", run.BookID)
		run.Event = EventOutlineWaiting
		return nodeNotify, nil
	default:
		e.logger.Warn("outline paused", "book", run.BookID, "status", status)
		run.Event = EventOutlinePaused
		return nodeNotify, nil
	}
}
