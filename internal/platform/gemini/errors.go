package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptyPrompt is returned when there is nothing to send to the model.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
)
