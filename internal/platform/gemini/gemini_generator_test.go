package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/present-ai/internal/config"
	"github.com/phrazzld/present-ai/internal/generation"
	"github.com/phrazzld/present-ai/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeModels records calls and returns canned responses.
type fakeModels struct {
	resp  *genai.GenerateContentResponse
	err   error
	calls int
	model string
	text  string
}

func (f *fakeModels) GenerateContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	cfg *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.text = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: genai.RoleModel}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content, FinishReason: genai.FinishReasonStop}},
	}
}

func TestGenerateText_Success(t *testing.T) {
	t.Parallel()

	l, _ := logger.NewTestLogger()
	fake := &fakeModels{resp: textResponse("  [{\"name\":", "\"Mug\"}]\n")}
	g := newWithModels(l, fake, "gemini-1.5-pro")

	text, err := g.GenerateText(context.Background(), "ideas please")

	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Mug"}]`, text)
	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, "gemini-1.5-pro", fake.model)
	assert.Equal(t, "ideas please", fake.text)
}

func TestGenerateText_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		fake    *fakeModels
		wantErr error
	}{
		{
			name:    "api error",
			fake:    &fakeModels{err: errors.New("connection reset")},
			wantErr: generation.ErrGenerationFailed,
		},
		{
			name:    "nil response",
			fake:    &fakeModels{},
			wantErr: generation.ErrInvalidResponse,
		},
		{
			name:    "no candidates",
			fake:    &fakeModels{resp: &genai.GenerateContentResponse{}},
			wantErr: generation.ErrInvalidResponse,
		},
		{
			name: "safety finish",
			fake: &fakeModels{resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
			}},
			wantErr: generation.ErrContentBlocked,
		},
		{
			name: "prompt blocked",
			fake: &fakeModels{resp: &genai.GenerateContentResponse{
				PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
			}},
			wantErr: generation.ErrContentBlocked,
		},
		{
			name: "candidate without content",
			fake: &fakeModels{resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonStop}},
			}},
			wantErr: generation.ErrInvalidResponse,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			l, _ := logger.NewTestLogger()
			g := newWithModels(l, tc.fake, "m")

			_, err := g.GenerateText(context.Background(), "prompt")

			require.Error(t, err)
			assert.ErrorIs(t, err, generation.ErrGenerationFailed)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, 1, tc.fake.calls, "no retries")
		})
	}
}

func TestGenerateText_EmptyTextIsNotAnError(t *testing.T) {
	t.Parallel()

	l, _ := logger.NewTestLogger()
	g := newWithModels(l, &fakeModels{resp: textResponse("   ")}, "m")

	text, err := g.GenerateText(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestGenerateText_EmptyPrompt(t *testing.T) {
	t.Parallel()

	l, _ := logger.NewTestLogger()
	fake := &fakeModels{resp: textResponse("x")}
	g := newWithModels(l, fake, "m")

	_, err := g.GenerateText(context.Background(), "  ")

	assert.ErrorIs(t, err, ErrEmptyPrompt)
	assert.Zero(t, fake.calls)
}

func TestNewGeminiGenerator_InvalidConfig(t *testing.T) {
	t.Parallel()

	l, _ := logger.NewTestLogger()

	_, err := NewGeminiGenerator(context.Background(), nil, config.LLMConfig{GeminiAPIKey: "k", ModelName: "m"})
	assert.Error(t, err)

	_, err = NewGeminiGenerator(context.Background(), l, config.LLMConfig{ModelName: "m"})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = NewGeminiGenerator(context.Background(), l, config.LLMConfig{GeminiAPIKey: "k"})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}
