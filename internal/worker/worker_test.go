package worker

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackzampolin/inkwell/internal/providers"
	"github.com/jackzampolin/inkwell/internal/storage"
	"github.com/jackzampolin/inkwell/internal/store"
	"github.com/jackzampolin/inkwell/internal/workflow"
)

func newTestWorker(t *testing.T, llm providers.Client) (*Worker, *store.Store) {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "inkwell.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	blobs, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("local storage: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine, err := workflow.New(workflow.Config{
		Store:         s,
		LLM:           llm,
		Storage:       blobs,
		ChapterTarget: 1,
		Logger:        logger,
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	w, err := New(Config{
		Store:  s,
		Engine: engine,
		Delay:  time.Millisecond,
		Logger: logger,
	})
	if err != nil {
		t.Fatalf("new worker: %v", err)
	}
	return w, s
}

func seed(t *testing.T, s *store.Store, b store.Book) {
	t.Helper()
	if err := s.InsertBook(context.Background(), b); err != nil {
		t.Fatalf("insert book %s: %v", b.ID, err)
	}
}

func TestDiscoverDeduplicates(t *testing.T) {
	w, s := newTestWorker(t, providers.NewMockClient())
	ctx := context.Background()

	// Matches both approved filters.
	seed(t, s, store.Book{
		ID:            "approved-1",
		Title:         "Approved",
		OutlineStatus: store.OutlineStatusApproved,
		OutputStatus:  store.OutputStatusNotStarted,
	})
	// Matches only the pending filter.
	seed(t, s, store.Book{
		ID:                   "pending-1",
		Title:                "Pending",
		NotesOnOutlineBefore: "some notes",
		OutlineStatus:        store.OutlineStatusPending,
		OutputStatus:         store.OutputStatusNotStarted,
	})
	// Errored books match nothing.
	seed(t, s, store.Book{
		ID:            "errored-1",
		Title:         "Errored",
		OutlineStatus: store.OutlineStatusApproved,
		OutputStatus:  store.OutputStatusError,
	})

	ids, err := w.Discover(ctx)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("discovered %d ids (%v), want 2", len(ids), ids)
	}
	counts := map[string]int{}
	for _, id := range ids {
		counts[id]++
	}
	if counts["approved-1"] != 1 {
		t.Errorf("approved-1 seen %d times, want exactly once", counts["approved-1"])
	}
	if counts["pending-1"] != 1 {
		t.Errorf("pending-1 missing from discovery: %v", ids)
	}
	if counts["errored-1"] != 0 {
		t.Errorf("errored book must not be rediscovered: %v", ids)
	}
}

func TestProcessBookMarksErrorAndContinues(t *testing.T) {
	mock := &providers.MockClient{ShouldFail: true}
	w, s := newTestWorker(t, mock)
	ctx := context.Background()

	seed(t, s, store.Book{
		ID:                   "bad-1",
		Title:                "Doomed",
		NotesOnOutlineBefore: "notes",
		StatusOutlineNotes:   workflow.StatusNoNotesNeeded,
		OutlineStatus:        store.OutlineStatusPending,
		OutputStatus:         store.OutputStatusNotStarted,
	})

	if err := w.ProcessBook(ctx, "bad-1"); err == nil {
		t.Fatal("expected run error from failing model client")
	}

	book, err := s.GetBook(ctx, "bad-1")
	if err != nil {
		t.Fatalf("get book: %v", err)
	}
	if book.OutputStatus != store.OutputStatusError {
		t.Errorf("output status = %q, want error", book.OutputStatus)
	}

	// The errored book is invisible to the next pass.
	ids, err := w.Discover(ctx)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	for _, id := range ids {
		if id == "bad-1" {
			t.Error("errored book rediscovered")
		}
	}
}

func TestRunOnceProcessesBatch(t *testing.T) {
	mock := &providers.MockClient{
		ResponseText: "Body.\n\nSummary: Recap.",
	}
	w, s := newTestWorker(t, mock)
	ctx := context.Background()

	seed(t, s, store.Book{
		ID:                     "ok-1",
		Title:                  "First",
		NotesOnOutlineBefore:   "notes",
		StatusOutlineNotes:     workflow.StatusNoNotesNeeded,
		ChapterNotesStatus:     workflow.StatusNoNotesNeeded,
		FinalReviewNotesStatus: workflow.StatusNoNotesNeeded,
		OutlineStatus:          store.OutlineStatusPending,
		OutputStatus:           store.OutputStatusNotStarted,
	})
	seed(t, s, store.Book{
		ID:                     "ok-2",
		Title:                  "Second",
		NotesOnOutlineBefore:   "notes",
		StatusOutlineNotes:     workflow.StatusNoNotesNeeded,
		ChapterNotesStatus:     workflow.StatusNoNotesNeeded,
		FinalReviewNotesStatus: workflow.StatusNoNotesNeeded,
		OutlineStatus:          store.OutlineStatusPending,
		OutputStatus:           store.OutputStatusNotStarted,
	})

	n, err := w.RunOnce(ctx)
	if err != nil {
		t.Fatalf("run once: %v", err)
	}
	if n != 2 {
		t.Fatalf("processed %d books, want 2", n)
	}

	for _, id := range []string{"ok-1", "ok-2"} {
		book, err := s.GetBook(ctx, id)
		if err != nil {
			t.Fatalf("get book %s: %v", id, err)
		}
		if book.OutputStatus != store.OutputStatusReady {
			t.Errorf("%s output status = %q, want ready", id, book.OutputStatus)
		}
	}
}

func TestSetLimitAppliesToNextDiscovery(t *testing.T) {
	w, s := newTestWorker(t, providers.NewMockClient())
	ctx := context.Background()

	for _, id := range []string{"lim-1", "lim-2", "lim-3"} {
		seed(t, s, store.Book{
			ID:                   id,
			Title:                id,
			NotesOnOutlineBefore: "notes",
			OutlineStatus:        store.OutlineStatusPending,
			OutputStatus:         store.OutputStatusNotStarted,
		})
	}

	ids, err := w.Discover(ctx)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("discovered %d ids, want all 3", len(ids))
	}

	w.SetLimit(1)
	ids, err = w.Discover(ctx)
	if err != nil {
		t.Fatalf("discover after SetLimit: %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("discovered %d ids after SetLimit(1), want 1", len(ids))
	}

	// Non-positive limits are ignored.
	w.SetLimit(0)
	ids, err = w.Discover(ctx)
	if err != nil {
		t.Fatalf("discover after SetLimit(0): %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("discovered %d ids, want limit 1 still in effect", len(ids))
	}
}

func TestRunOnceEmpty(t *testing.T) {
	w, _ := newTestWorker(t, providers.NewMockClient())

	n, err := w.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("run once: %v", err)
	}
	if n != 0 {
		t.Errorf("processed %d books, want 0", n)
	}
}
