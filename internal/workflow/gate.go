package workflow

import "strings"

// Recognized gating flag values. Anything else, including an absent flag,
// pauses the run.
const (
	StatusNoNotesNeeded = "no_notes_needed"
	StatusYes           = "yes"
)

// Decision is the outcome of evaluating a gating flag.
type Decision int

const (
	// Proceed: the editor needs nothing further; generation continues.
	Proceed Decision = iota
	// WaitForInput: the editor has notes coming; stop and notify.
	WaitForInput
	// Paused: the flag is unrecognized or missing; stop and notify.
	Paused
)

func (d Decision) String() string {
	switch d {
	case Proceed:
		return "proceed"
	case WaitForInput:
		return "wait_for_input"
	default:
		return "paused_unrecognized"
	}
}

// Evaluate maps a gating flag to a routing decision. The same mapping
// applies to the outline, chapter and final-review gates.
func Evaluate(status string) Decision {
	switch strings.TrimSpace(status) {
	case StatusNoNotesNeeded:
		return Proceed
	case StatusYes:
		return WaitForInput
	default:
		return Paused
	}
}
