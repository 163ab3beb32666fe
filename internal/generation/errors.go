package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when the language model could not produce gift ideas
	ErrGenerationFailed = errors.New("failed to generate gift ideas")

	// ErrInvalidResponse is returned when the LLM response carries no usable text
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
