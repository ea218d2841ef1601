// Package workflow drives a single book through the generation state
// machine: outline, chapter loop, compile, notify. Routing decisions come
// from gating flags re-read from the datastore, never from a stale
// in-memory snapshot.
package workflow

// Event tags the outcome of a stage. Routers branch on the event; the
// notify stage reports it.
type Event string

const (
	EventMissingOutlineNotes Event = "missing_notes_on_outline_before"
	EventOutlineGenerated    Event = "outline_generated"
	EventOutlineWaiting      Event = "outline_waiting_for_notes"
	EventOutlinePaused       Event = "outline_paused_missing_status"

	EventWaitingChapterNotes Event = "waiting_for_chapter_notes"
	EventPausedChapterStatus Event = "paused_for_chapter_notes_status"
	EventChapterGenerated    Event = "chapter_generated"
	EventAllChaptersDone     Event = "all_chapters_done"

	EventFinalReviewNotReady Event = "final_review_not_ready"
	EventBookCompiled        Event = "book_compiled"
)
