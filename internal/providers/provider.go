// Package providers wraps language-model completion services behind a
// small synchronous interface. The workflow makes one blocking round trip
// per call and treats any error as fatal for the run.
package providers

import (
	"context"
	"time"
)

// Client is the completion interface used by the workflow stages.
type Client interface {
	// Complete sends a single prompt and returns the generated text.
	Complete(ctx context.Context, req *Request) (*Result, error)

	// Name returns the client identifier (e.g., "openai").
	Name() string
}

// Request is a single completion request.
type Request struct {
	Prompt string

	// Model selection (uses client default if empty)
	Model string

	// Generation parameters
	Temperature float64

	// Request tracking
	RequestID string
}

// Result is the complete response from a completion call.
type Result struct {
	Content string

	// Token counts
	PromptTokens     int
	CompletionTokens int

	// Timing
	Duration time.Duration

	// Provider info
	Provider  string
	ModelUsed string

	// Request tracking
	RequestID string
}
