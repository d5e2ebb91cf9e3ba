package errors

import (
	"strings"
	"unicode"
)

// ValidateNotation checks a dot-bracket-plus string before it reaches the
// parser. It rejects inputs that are oversized or contain bytes outside
// the notation alphabet. Bracket balancing is the parser's job and is
// not checked here. The empty string is valid: a structure with nothing
// to draw yields an absent layout, not an error.
//
// The validation rules are intentionally conservative:
//   - Maximum length of 100000 characters
//   - Only the characters ( ) . + allowed
func ValidateNotation(notation string) error {
	const maxNotationLength = 100000
	if len(notation) > maxNotationLength {
		return New(ErrCodeInvalidNotation, "structure too long (max %d characters)", maxNotationLength)
	}

	for i, r := range notation {
		switch r {
		case '(', ')', '.', '+':
		default:
			return New(ErrCodeInvalidNotation, "invalid character %q at position %d", r, i)
		}
	}

	return nil
}

// ValidateSequence checks a nucleotide sequence string. Strand break
// markers (+) are allowed so sequences can mirror the structure notation.
// Case is not normalized here.
func ValidateSequence(seq string) error {
	if seq == "" {
		return nil
	}

	const maxSequenceLength = 100000
	if len(seq) > maxSequenceLength {
		return New(ErrCodeInvalidSequence, "sequence too long (max %d characters)", maxSequenceLength)
	}

	for i, r := range seq {
		switch unicode.ToUpper(r) {
		case 'A', 'C', 'G', 'U', 'T', 'N', '+':
		default:
			return New(ErrCodeInvalidSequence, "invalid nucleotide %q at position %d", r, i)
		}
	}

	return nil
}

// ValidateFormat checks a requested output format name.
func ValidateFormat(format string) error {
	switch strings.ToLower(format) {
	case "svg", "png", "json":
		return nil
	case "":
		return New(ErrCodeInvalidFormat, "output format cannot be empty")
	default:
		return New(ErrCodeInvalidFormat, "unsupported output format: %q (want svg, png or json)", format)
	}
}

// ValidatePath validates a user-supplied file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
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

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
