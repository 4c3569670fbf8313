// Package redact provides utilities for redacting sensitive information
// from strings before they are logged or returned in error responses. The
// pipeline logs remote request URLs and response bodies on failure; both can
// carry the Gemini API key or local file paths, and neither belongs in logs.
package redact

import "regexp"

// Constants for redaction placeholders
const (
	RedactedKeyPlaceholder  = "[REDACTED_KEY]"
	RedactedPathPlaceholder = "[REDACTED_PATH]"
)

// Precompiled redaction patterns
var (
	// API key passed as a query parameter (the Gemini endpoint style).
	queryKeyRegex = regexp.MustCompile(`(?i)([?&]key=)[A-Za-z0-9_\-.~+/]+`)

	// Credentials and tokens mentioned in response bodies or error text.
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|key|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// File paths
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)
	winPathRegex  = regexp.MustCompile(`[A-Za-z]:\\[^\\]+(\\[^\\]+)+`)
)

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := queryKeyRegex.ReplaceAllString(input, "${1}"+RedactedKeyPlaceholder)
	result = apiKeyRegex.ReplaceAllString(result, "${1}${2}"+RedactedKeyPlaceholder)
	result = unixPathRegex.ReplaceAllString(result, RedactedPathPlaceholder)
	result = winPathRegex.ReplaceAllString(result, RedactedPathPlaceholder)
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
