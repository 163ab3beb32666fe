package generation

import "context"

// Generator defines the interface for asking a language model for text.
// This interface serves as a boundary between the application core and
// external AI/LLM services.
type Generator interface {
	// GenerateText sends prompt to the model and returns its raw reply.
	// Implementations make a single attempt; any failure wraps ErrGenerationFailed.
	GenerateText(ctx context.Context, prompt string) (string, error)
}
