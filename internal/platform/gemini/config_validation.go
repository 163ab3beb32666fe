package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/present-ai/internal/config"
	"github.com/phrazzld/present-ai/internal/generation"
)

// validateConfig checks the settings the adapter cannot work without.
// The config package validates them too; this keeps the adapter safe when
// constructed directly, e.g. from tests or tools.
func validateConfig(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) error {
	if cfg.GeminiAPIKey == "" {
		logger.ErrorContext(ctx, "Missing Gemini API key")
		return fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		logger.ErrorContext(ctx, "Missing Gemini model name")
		return fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	return nil
}
