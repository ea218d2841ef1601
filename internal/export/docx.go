package export

import (
	"bytes"
	"fmt"

	"github.com/fumiama/go-docx"
)

// DOCX builds the structured document: title heading followed by one
// heading/body block per chapter, bodies split into paragraphs.
func DOCX(title string, chapters []Chapter) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText(title).Size("40").Bold()

	for _, c := range chapters {
		doc.AddParagraph().AddText(c.Title).Size("30").Bold()
		for _, para := range paragraphs(c.Content) {
			doc.AddParagraph().AddText(para)
		}
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return buf.Bytes(), nil
}
