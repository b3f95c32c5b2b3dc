package ai

import (
	"context"
)

// CompletionProvider defines the contract for the external language-model
// service. It allows swapping providers (Gemini, OpenAI, fakes in tests)
// without touching the reasoning pipeline.
type CompletionProvider interface {
	// Complete sends a prompt and returns the generated text.
	Complete(ctx context.Context, prompt string) (string, error)

	// CompleteJSON sends a prompt that demands a machine-parseable JSON
	// object and decodes the response into out. Markdown code fences in the
	// raw response are tolerated and stripped.
	CompleteJSON(ctx context.Context, prompt string, out any) error
}
