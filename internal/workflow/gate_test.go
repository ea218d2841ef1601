package workflow

import "testing"

func TestEvaluate(t *testing.T) {
	cases := []struct {
		status string
		want   Decision
	}{
		{"no_notes_needed", Proceed},
		{" no_notes_needed ", Proceed},
		{"yes", WaitForInput},
		{"no", Paused},
		{"", Paused},
		{"   ", Paused},
		{"maybe", Paused},
		{"NO_NOTES_NEEDED", Paused}, // flags are case-sensitive
	}

	for _, tc := range cases {
		if got := Evaluate(tc.status); got != tc.want {
			t.Errorf("Evaluate(%q) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestSplitChapter(t *testing.T) {
	t.Run("splits on marker", func(t *testing.T) {
		body, summary := splitChapter("The chapter text.\n\nSummary: It was short.")
		if body != "The chapter text." {
			t.Errorf("body = %q", body)
		}
		if summary != "It was short." {
			t.Errorf("summary = %q", summary)
		}
	})

	t.Run("missing marker uses placeholder", func(t *testing.T) {
		body, summary := splitChapter("  Just the text.  ")
		if body != "Just the text." {
			t.Errorf("body = %q", body)
		}
		if summary != summaryPlaceholder {
			t.Errorf("summary = %q, want placeholder", summary)
		}
	})

	t.Run("splits on first marker only", func(t *testing.T) {
		body, summary := splitChapter("Text.\nSummary: one\nSummary: two")
		if body != "Text." {
			t.Errorf("body = %q", body)
		}
		if summary != "one\nSummary: two" {
			t.Errorf("summary = %q", summary)
		}
	})
}
