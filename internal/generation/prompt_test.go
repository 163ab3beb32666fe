package generation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/phrazzld/present-ai/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleForm() domain.FormState {
	return domain.FormState{
		Name:         "Ana",
		Age:          "34",
		Gender:       "Female",
		Relationship: domain.Custom("Neighbour"),
		Hobbies:      "painting, football",
		Personality:  domain.Preset("Creative"),
		Budget:       "50",
		Currency:     "EUR",
		Occasion:     domain.Preset("Birthday"),
	}
}

func TestPromptBuilder_InitialRequest(t *testing.T) {
	t.Parallel()

	prompt, err := DefaultPromptBuilder().Build(PromptRequest{
		Form:    sampleForm(),
		Seen:    []string{"should not appear"},
		Ordinal: 1,
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "Generate 5 unique and creative gift ideas for:")
	assert.Contains(t, prompt, "Name: Ana\n")
	assert.Contains(t, prompt, "Age: 34\n")
	assert.Contains(t, prompt, "Relationship: Neighbour\n")
	assert.Contains(t, prompt, "Personality: Creative\n")
	assert.Contains(t, prompt, "Budget: 50 EUR\n")
	assert.Contains(t, prompt, "Occasion: Birthday\n")
	assert.Contains(t, prompt, `"priceRange": "Price range within 50 EUR"`)
	assert.NotContains(t, prompt, "already been suggested")
	assert.NotContains(t, prompt, "should not appear")
}

func TestPromptBuilder_FollowUp(t *testing.T) {
	t.Parallel()

	prompt, err := DefaultPromptBuilder().Build(PromptRequest{
		Form:     sampleForm(),
		Seen:     []string{"socks", "mug"},
		FollowUp: true,
		Ordinal:  3,
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "This is request #3.")
	assert.Contains(t, prompt, "socks, mug")
}

func TestPromptBuilder_EmptyFormPassesThrough(t *testing.T) {
	t.Parallel()

	prompt, err := DefaultPromptBuilder().Build(PromptRequest{Ordinal: 1})
	require.NoError(t, err)

	assert.Contains(t, prompt, "Name: \n")
	assert.Contains(t, prompt, "Budget:  USD\n")
}

func TestLoadPromptBuilder(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded template", func(t *testing.T) {
		t.Parallel()
		b, err := LoadPromptBuilder("")
		require.NoError(t, err)
		prompt, err := b.Build(PromptRequest{Form: sampleForm()})
		require.NoError(t, err)
		assert.Contains(t, prompt, "Format as JSON array:")
	})

	t.Run("custom template file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "prompt.tmpl")
		require.NoError(t, os.WriteFile(path, []byte("Ideas for {{.Name}} under {{.Budget}}"), 0o600))

		b, err := LoadPromptBuilder(path)
		require.NoError(t, err)
		prompt, err := b.Build(PromptRequest{Form: sampleForm()})
		require.NoError(t, err)
		assert.Equal(t, "Ideas for Ana under 50 EUR", prompt)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadPromptBuilder(filepath.Join(t.TempDir(), "nope.tmpl"))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("bad template", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bad.tmpl")
		require.NoError(t, os.WriteFile(path, []byte("{{.Name"), 0o600))
		_, err := LoadPromptBuilder(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestBuildPrompt_MatchesDefaultBuilder(t *testing.T) {
	t.Parallel()

	want, err := DefaultPromptBuilder().Build(PromptRequest{
		Form:     sampleForm(),
		Seen:     []string{"kite"},
		FollowUp: true,
		Ordinal:  2,
	})
	require.NoError(t, err)

	assert.Equal(t, want, BuildPrompt(sampleForm(), []string{"kite"}, true, 2))
}
