package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxNodeIDLength bounds node identifiers in tree documents.
const MaxNodeIDLength = 256

// ValidateWeight rejects NaN and infinite node weights. Negative weights are
// allowed; they simply subtract from a parent's aggregate.
func ValidateWeight(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidTree, "node value must be finite, got %v", v)
	}
	return nil
}

// ValidateDimension checks a frame or node dimension: finite and >= 0.
// name is used in the error message.
func ValidateDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be finite, got %v", name, v)
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s must be >= 0, got %v", name, v)
	}
	return nil
}

// ValidateNodeID validates a node identifier from a tree document.
// Empty identifiers are accepted; the decoder assigns one from the label.
//
// Validation rules:
//   - Maximum length of MaxNodeIDLength bytes
//   - No control characters or null bytes
func ValidateNodeID(id string) error {
	if len(id) > MaxNodeIDLength {
		return New(ErrCodeInvalidTree, "node id too long (max %d characters)", MaxNodeIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTree, "node id %q contains control characters", id)
		}
	}
	return nil
}

// ValidatePath validates a relative file path supplied by a caller, such as
// an output file named in an API request.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
