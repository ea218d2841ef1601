// Package export builds the compiled book artifacts: a plain-text dump, a
// structured DOCX (the primary output) and a paginated PDF (best effort).
package export

import "strings"

// Chapter is one compiled chapter in reading order.
type Chapter struct {
	Title   string
	Content string
}

// Content types for the generated artifacts.
const (
	ContentTypeText = "text/plain; charset=utf-8"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypePDF  = "application/pdf"
)

// Text concatenates the book into a plain-text document: title line, blank
// line, then each chapter's title and body separated by blank lines.
func Text(title string, chapters []Chapter) string {
	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n\n")

	parts := make([]string, 0, len(chapters))
	for _, c := range chapters {
		parts = append(parts, c.Title+"\n\n"+c.Content)
	}
	sb.WriteString(strings.Join(parts, "\n\n"))
	return sb.String()
}

// paragraphs splits a chapter body on blank-line boundaries, dropping
// empty segments.
func paragraphs(content string) []string {
	var out []string
	for _, p := range strings.Split(content, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
