package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/present-ai/internal/api/shared"
	"github.com/phrazzld/present-ai/internal/domain"
	"github.com/phrazzld/present-ai/internal/generation"
	"github.com/phrazzld/present-ai/internal/service"
	"github.com/phrazzld/present-ai/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, domain.ErrRequestInFlight),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrStaleRequest):
		return http.StatusConflict

	// Upstream model errors
	case errors.Is(err, generation.ErrGenerationFailed):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, store.ErrNotFound):
		return "Session not found"

	case errors.Is(err, domain.ErrRequestInFlight):
		return "A gift idea request is already in progress"

	case errors.Is(err, domain.ErrInvalidTransition):
		return "That action is not available right now"

	case errors.Is(err, domain.ErrStaleRequest):
		return "The session was reset while ideas were being generated"

	case errors.Is(err, generation.ErrGenerationFailed):
		return service.FailureMessage

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes a JSON error response for err. defaultMsg replaces
// the generic message for errors that map to 500.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		message = defaultMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'FindGiftIdeasRequest.Name' Error:Field validation for 'Name' failed on the 'max' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
