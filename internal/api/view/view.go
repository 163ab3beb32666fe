// Package view turns model-written text into HTML that is safe to embed in
// the page. Gift ideas often come back with light markdown (bold names,
// italics, links); it is rendered with goldmark and then passed through a
// bluemonday UGC policy, so the model can never inject markup of its own.
package view

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

var (
	markdown = goldmark.New()
	policy   = bluemonday.UGCPolicy()
)

// Markdown renders text as markdown and sanitizes the result.
func Markdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes()))
}

// Inline is Markdown with the wrapping paragraph removed when the text is a
// single paragraph, for use inside headings and list items.
func Inline(text string) template.HTML {
	out := strings.TrimSpace(string(Markdown(text)))
	if strings.Count(out, "<p>") == 1 && strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return template.HTML(out)
}

// Funcs returns the template functions the page templates use.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"inline":   Inline,
		"selected": func(current, option string) bool { return current == option },
	}
}
