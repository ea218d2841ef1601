package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PDF builds the paginated document: a title page, then each chapter on a
// fresh page. The result is page-counted with pdfcpu before being returned;
// a failure here means the caller should skip the artifact, not the run.
func PDF(title string, chapters []Chapter) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Title page
	pdf.AddPage()
	pdf.SetY(100)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.MultiCell(0, 12, tr(title), "", "C", false)

	for _, c := range chapters {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 16)
		pdf.MultiCell(0, 9, tr(c.Title), "", "L", false)
		pdf.Ln(3)

		pdf.SetFont("Helvetica", "", 11)
		for _, para := range paragraphs(c.Content) {
			pdf.MultiCell(0, 5.5, tr(para), "", "L", false)
			pdf.Ln(3)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	pages, err := api.PageCount(bytes.NewReader(buf.Bytes()), nil)
	if err != nil {
		return nil, fmt.Errorf("validate generated pdf: %w", err)
	}
	if pages < 1 {
		return nil, fmt.Errorf("generated pdf has no pages")
	}
	return buf.Bytes(), nil
}
