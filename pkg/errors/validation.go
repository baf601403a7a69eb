package errors

import (
	"strings"
	"unicode"
)

// maxMemberIDLength bounds member identifiers accepted from query strings.
const maxMemberIDLength = 256

// ValidateMemberID validates a member identifier supplied by a caller
// (CLI argument, query parameter) before it reaches the path engine.
//
// The rules are intentionally conservative:
//   - No empty or whitespace-only ids
//   - No control characters or null bytes
//   - Maximum length of 256 characters
//
// Whether the member actually exists is checked by the engine, not here.
func ValidateMemberID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidQuery, "member id cannot be empty")
	}

	if len(id) > maxMemberIDLength {
		return New(ErrCodeInvalidQuery, "member id too long (max %d characters)", maxMemberIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidQuery, "member id contains invalid control characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidatePath validates a dataset path for obvious mistakes.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}
