package errors

import (
	"strings"
	"unicode"
)

// ValidateDirectivePath validates a raw directive path before resolution.
// It rejects inputs that cannot name a file regardless of where they would
// resolve. Traversal outside the root boundary is not checked here - that
// requires the resolver's normalization step.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No control characters or null bytes
//   - Maximum length of 500 characters
func ValidateDirectivePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "directive path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "directive path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "directive path contains invalid control characters")
		}
	}

	return nil
}

// ValidateMode checks that a render mode name is valid.
func ValidateMode(mode string) error {
	switch mode {
	case "flat", "hierarchical":
		return nil
	}
	return New(ErrCodeInvalidMode, "invalid mode: %q (must be one of: flat, hierarchical)", mode)
}

// HasScheme reports whether a raw directive path uses a URI scheme.
// Network and file URIs are never resolvable by the engine.
func HasScheme(path string) bool {
	for _, scheme := range []string{"http://", "https://", "file://"} {
		if strings.HasPrefix(path, scheme) {
			return true
		}
	}
	return false
}
