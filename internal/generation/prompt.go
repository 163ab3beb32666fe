package generation

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/phrazzld/present-ai/internal/domain"
)

//go:embed templates/gift_ideas.tmpl
var templateFS embed.FS

const defaultTemplateName = "templates/gift_ideas.tmpl"

// promptData represents the data passed to the prompt template
type promptData struct {
	Name         string
	Age          string
	Gender       string
	Relationship string
	Hobbies      string
	Personality  string
	Budget       string
	Occasion     string
	FollowUp     bool
	Ordinal      int
	Exclusions   string
}

// PromptRequest describes one prompt to build.
type PromptRequest struct {
	Form domain.FormState
	// Seen holds the names already shown to the visitor.
	Seen []string
	// FollowUp marks a "show more" request; Seen is only listed when set.
	FollowUp bool
	// Ordinal is the number of this request within the session, starting at 1.
	Ordinal int
}

// PromptBuilder renders gift idea prompts from a text template.
type PromptBuilder struct {
	tmpl *template.Template
}

// DefaultPromptBuilder returns a builder using the embedded template.
func DefaultPromptBuilder() *PromptBuilder {
	tmpl := template.Must(template.ParseFS(templateFS, defaultTemplateName))
	return &PromptBuilder{tmpl: tmpl}
}

// LoadPromptBuilder parses the template at path. An empty path selects the
// embedded template.
func LoadPromptBuilder(path string) (*PromptBuilder, error) {
	if path == "" {
		return DefaultPromptBuilder(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
			ErrInvalidConfig, path, err)
	}

	tmpl, err := template.New("gift_ideas").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", ErrInvalidConfig, err)
	}

	return &PromptBuilder{tmpl: tmpl}, nil
}

// Build renders the prompt. Field values are inserted verbatim; empty or
// odd values are the model's problem, not ours.
func (b *PromptBuilder) Build(req PromptRequest) (string, error) {
	form := req.Form
	data := promptData{
		Name:         form.Name,
		Age:          form.Age,
		Gender:       form.Gender,
		Relationship: form.Relationship.Resolve(),
		Hobbies:      form.Hobbies,
		Personality:  form.Personality.Resolve(),
		Budget:       form.BudgetWithCurrency(),
		Occasion:     form.Occasion.Resolve(),
		FollowUp:     req.FollowUp,
		Ordinal:      req.Ordinal,
		Exclusions:   strings.Join(req.Seen, ", "),
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

var defaultBuilder = DefaultPromptBuilder()

// BuildPrompt renders the embedded template. The template is compiled into
// the binary, so only a broken template could make it fail.
func BuildPrompt(form domain.FormState, seen []string, followUp bool, ordinal int) string {
	prompt, err := defaultBuilder.Build(PromptRequest{
		Form:     form,
		Seen:     seen,
		FollowUp: followUp,
		Ordinal:  ordinal,
	})
	if err != nil {
		panic(err)
	}
	return prompt
}
