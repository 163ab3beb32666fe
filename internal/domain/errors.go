// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrRequestInFlight is returned when a generation is requested while
	// another one for the same session has not finished yet.
	ErrRequestInFlight = errors.New("a gift idea request is already in progress")

	// ErrInvalidTransition is returned when an action is not available in
	// the session's current phase (e.g. "show more" before any results).
	ErrInvalidTransition = errors.New("action not available in current state")

	// ErrStaleRequest is returned when a generation result arrives for a
	// request the session no longer waits for, typically after a reset.
	ErrStaleRequest = errors.New("request is no longer pending")
)
