package export

import (
	"bytes"
	"strings"
	"testing"
)

var sample = []Chapter{
	{Title: "Chapter 1", Content: "First paragraph.\n\nSecond paragraph."},
	{Title: "Chapter 2", Content: "Only paragraph."},
}

func TestText(t *testing.T) {
	got := Text("My Book", sample)

	want := "My Book\n\nChapter 1\n\nFirst paragraph.\n\nSecond paragraph.\n\nChapter 2\n\nOnly paragraph."
	if got != want {
		t.Errorf("Text() =\n%q\nwant\n%q", got, want)
	}
}

func TestParagraphs(t *testing.T) {
	got := paragraphs("one\n\n\n\n  two  \n\n")
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Errorf("paragraphs() = %q", got)
	}
}

func TestDOCX(t *testing.T) {
	data, err := DOCX("My Book", sample)
	if err != nil {
		t.Fatalf("DOCX() error = %v", err)
	}
	// DOCX is a zip archive; check the magic header rather than parsing.
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Errorf("output does not look like a docx archive (got %q...)", data[:4])
	}
}

func TestPDF(t *testing.T) {
	data, err := PDF("My Book", sample)
	if err != nil {
		t.Fatalf("PDF() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output missing pdf header (got %q...)", data[:8])
	}
	if !strings.Contains(string(data[:16]), "PDF") {
		t.Errorf("unexpected header %q", data[:16])
	}
}
