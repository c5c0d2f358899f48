package llm

import (
	"context"
)

// Provider is the interface for all LLM providers. A provider receives a fully
// assembled prompt and returns the raw model completion; prompt construction
// and response parsing belong to the caller.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	// AdaptInstructions transforms raw instructions into model-specific formats
	AdaptInstructions(rawInstructions string) string
}
