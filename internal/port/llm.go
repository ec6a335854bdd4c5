package port

import "context"

// LLM generates prose from a system prompt and a user prompt.
type LLM interface {
	// Generate returns the model output and the total token usage the
	// provider reported (0 if unknown).
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, int, error)

	// Provider returns the provider name ("openai", "anthropic").
	Provider() string
}
