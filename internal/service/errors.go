package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/present-ai/internal/domain"
	"github.com/phrazzld/present-ai/internal/store"
)

// Common service errors. Callers check them with errors.Is; the API layer
// maps them to HTTP status codes.
var (
	// ErrSessionNotFound indicates the visitor's session does not exist or has expired.
	// API layer should map this to HTTP 404 Not Found.
	ErrSessionNotFound = errors.New("session not found")
)

// FailureMessage is shown to the visitor whenever a generation fails.
const FailureMessage = "Failed to generate gift ideas. Please try again."

// GiftServiceError wraps errors from the gift service with context.
type GiftServiceError struct {
	// Operation is the operation that failed (e.g., "find_gift_ideas")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for GiftServiceError.
func (e *GiftServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gift service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("gift service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *GiftServiceError) Unwrap() error {
	return e.Err
}

// NewGiftServiceError creates a new GiftServiceError.
// Rejected session transitions and missing sessions are returned as their
// sentinel errors without wrapping.
func NewGiftServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		return ErrSessionNotFound
	case errors.Is(err, domain.ErrRequestInFlight):
		return domain.ErrRequestInFlight
	case errors.Is(err, domain.ErrInvalidTransition):
		return domain.ErrInvalidTransition
	case errors.Is(err, domain.ErrStaleRequest):
		return domain.ErrStaleRequest
	}

	return &GiftServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
