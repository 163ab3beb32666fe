package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/present-ai/internal/config"
	"github.com/phrazzld/present-ai/internal/generation"
	"google.golang.org/genai"
)

// contentGenerator is the part of the genai client the generator uses.
// *genai.Models satisfies it.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API.
type GeminiGenerator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// models performs the API calls
	models contentGenerator

	// model is the name of the Gemini model to use
	model string
}

var _ generation.Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a new instance of GeminiGenerator with the provided dependencies.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key and model name
//
// Returns:
//   - A properly initialized GeminiGenerator or an error if initialization fails
func NewGeminiGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if err := validateConfig(ctx, logger, cfg); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	logger.InfoContext(ctx, "Gemini generator initialized", "model", cfg.ModelName)

	return newWithModels(logger, client.Models, cfg.ModelName), nil
}

func newWithModels(logger *slog.Logger, models contentGenerator, model string) *GeminiGenerator {
	return &GeminiGenerator{
		logger: logger,
		models: models,
		model:  model,
	}
}

// GenerateText sends the prompt to Gemini and returns the trimmed reply.
// There is exactly one attempt; every failure wraps generation.ErrGenerationFailed.
func (g *GeminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: %w", generation.ErrGenerationFailed, ErrEmptyPrompt)
	}

	g.logger.InfoContext(ctx, "Making Gemini API call",
		"model", g.model,
		"prompt_length", len(prompt))

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		g.logger.ErrorContext(ctx, "Gemini API call error", "error", err)
		return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	text, err := extractText(resp)
	if err != nil {
		g.logger.WarnContext(ctx, "Gemini API returned no usable content", "error", err)
		return "", fmt.Errorf("%w: %w", generation.ErrGenerationFailed, err)
	}

	g.logger.InfoContext(ctx, "Gemini API call successful", "response_length", len(text))
	return text, nil
}

// extractText concatenates the text parts of the first candidate. A
// candidate with no text is not an error; the parser yields no ideas for it.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)",
			generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}

	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}

	return strings.TrimSpace(sb.String()), nil
}
