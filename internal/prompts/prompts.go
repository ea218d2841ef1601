// Package prompts builds the model input text for the outline and chapter
// stages from embedded templates.
package prompts

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))

// OutlineData feeds the outline template.
type OutlineData struct {
	Title        string
	NotesBefore  string
	NotesAfter   string
	ChapterCount int
}

// ChapterData feeds the chapter template.
type ChapterData struct {
	Title             string
	Outline           string
	ChapterNumber     int
	PreviousSummaries string
	ChapterNotes      string
}

func render(name string, data any) (string, error) {
	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return sb.String(), nil
}

// Outline renders the outline generation prompt.
func Outline(data OutlineData) (string, error) {
	return render("outline.tmpl", data)
}

// Chapter renders the chapter generation prompt.
func Chapter(data ChapterData) (string, error) {
	return render("chapter.tmpl", data)
}

// Summary describes one prior chapter for prompt context.
type Summary struct {
	ChapterNumber int
	Text          string
}

// PreviousSummaries formats prior-chapter summaries for the chapter prompt,
// in chapter order.
func PreviousSummaries(summaries []Summary) string {
	if len(summaries) == 0 {
		return "No previous chapters (this is the first chapter)."
	}
	parts := make([]string, 0, len(summaries))
	for _, s := range summaries {
		parts = append(parts, fmt.Sprintf("Chapter %d summary:\n%s", s.ChapterNumber, s.Text))
	}
	return strings.Join(parts, "\n\n")
}
