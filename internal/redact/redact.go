// Package redact provides utilities for redacting sensitive information from strings
// before they are logged or returned in error responses. Errors from the model
// client can carry the API key, request URLs and local template paths; this
// package strips them.
package redact

import (
	"regexp"
	"sync"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder    = "[REDACTED]"
	RedactedPathPlaceholder = "[REDACTED_PATH]"
	RedactedKeyPlaceholder  = "[REDACTED_KEY]"
	RedactedURLPlaceholder  = "[REDACTED_URL]"
)

// Precompiled regex patterns
var (
	// Google API keys always start with AIza and are 39 characters long
	googleKeyRegex = regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`)
	apiKeyRegex    = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|key|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// Stack trace fragments
	stackTraceRegex = regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`)

	// Request URLs, which may carry the key as a query parameter
	urlRegex = regexp.MustCompile(`https?://[^\s"']+`)

	// File paths
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)
	winPathRegex  = regexp.MustCompile(`[A-Za-z]:\\[^\\]+(\\[^\\]+)+`)

	// Email addresses
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)

	hostPortRegex = regexp.MustCompile(
		`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`,
	)

	// All patterns in application order
	patterns = []*regexp.Regexp{
		googleKeyRegex, apiKeyRegex, stackTraceRegex, urlRegex,
		unixPathRegex, winPathRegex, emailRegex, hostPortRegex,
	}

	patternPlaceholders = map[*regexp.Regexp]string{
		googleKeyRegex:  RedactedKeyPlaceholder,
		apiKeyRegex:     RedactedKeyPlaceholder,
		stackTraceRegex: "[STACK_TRACE_REDACTED]",
		urlRegex:        RedactedURLPlaceholder,
		unixPathRegex:   RedactedPathPlaceholder,
		winPathRegex:    RedactedPathPlaceholder,
		emailRegex:      "[REDACTED_EMAIL]",
		hostPortRegex:   "[REDACTED_HOST]",
	}

	mu sync.RWMutex
)

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	mu.RLock()
	defer mu.RUnlock()

	result := input
	for _, pattern := range patterns {
		placeholder := RedactionPlaceholder
		if ph, ok := patternPlaceholders[pattern]; ok {
			placeholder = ph
		}
		result = pattern.ReplaceAllString(result, placeholder)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
