// Package generation sits between the gift finder and the external AI/LLM
// service. It owns the prompt sent to the model, the Generator interface the
// Gemini adapter implements, and the best-effort parser that turns whatever
// text comes back into gift ideas.
package generation
