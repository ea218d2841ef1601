package workflow

import (
	"context"
	"strings"

	"github.com/jackzampolin/inkwell/internal/export"
	"github.com/jackzampolin/inkwell/internal/store"
)

// compileBook assembles all chapters into the output artifacts and uploads
// them. The TXT and DOCX artifacts are required; the PDF is best effort.
func (e *Engine) compileBook(ctx context.Context, run *Run) error {
	// Re-read final review fields from the datastore for safety; the
	// in-memory copy predates any chapter generation.
	status, notes, title, err := e.store.FinalReview(ctx, run.BookID)
	if err != nil {
		return err
	}
	run.FinalGate = status
	run.FinalNotes = notes
	if title != "" {
		run.Title = title
	}

	if Evaluate(status) != Proceed && strings.TrimSpace(notes) == "" {
		e.logger.Warn("final review not ready", "book", run.BookID, "status", status)
		run.Event = EventFinalReviewNotReady
		return nil
	}

	chapters, err := e.store.ListChapters(ctx, run.BookID)
	if err != nil {
		return err
	}
	e.logger.Info("compiling book", "book", run.BookID, "chapters", len(chapters))

	compiled := make([]export.Chapter, 0, len(chapters))
	for _, c := range chapters {
		compiled = append(compiled, export.Chapter{Title: c.Title, Content: c.Content})
	}

	txtName := run.BookID + ".txt"
	if err := e.blobs.Upload(ctx, txtName, []byte(export.Text(run.Title, compiled)), export.ContentTypeText); err != nil {
		return err
	}
	e.logger.Info("uploaded text artifact", "book", run.BookID, "url", e.blobs.PublicURL(txtName))

	docxData, err := export.DOCX(run.Title, compiled)
	if err != nil {
		return err
	}
	docxName := run.BookID + ".docx"
	if err := e.blobs.Upload(ctx, docxName, docxData, export.ContentTypeDOCX); err != nil {
		return err
	}
	docxURL := e.blobs.PublicURL(docxName)
	e.logger.Info("uploaded docx artifact", "book", run.BookID, "url", docxURL)

	// The paginated artifact is optional: generation or upload failure is
	// logged and the run continues.
	if pdfData, err := export.PDF(run.Title, compiled); err != nil {
		e.logger.Warn("pdf generation failed, continuing without pdf", "book", run.BookID, "error", err)
	} else {
		pdfName := run.BookID + ".pdf"
		if err := e.blobs.Upload(ctx, pdfName, pdfData, export.ContentTypePDF); err != nil {
			e.logger.Warn("pdf upload failed, continuing without pdf", "book", run.BookID, "error", err)
		} else {
			e.logger.Info("uploaded pdf artifact", "book", run.BookID, "url", e.blobs.PublicURL(pdfName))
		}
	}

	// The DOCX is the primary output artifact.
	if err := e.store.SetOutput(ctx, run.BookID, store.OutputStatusReady, docxURL); err != nil {
		return err
	}

	run.OutputStatus = store.OutputStatusReady
	run.Event = EventBookCompiled
	e.logger.Info("book compilation complete", "book", run.BookID)
	return nil
}

// routeAfterCompile sends both outcomes to notify; anything else ends the
// run outright.
func routeAfterCompile(run *Run) node {
	switch run.Event {
	case EventBookCompiled, EventFinalReviewNotReady:
		return nodeNotify
	default:
		return nodeTerminated
	}
}
