package errors

import (
	"strings"
	"unicode"
)

// MaxDigits is the largest number of decimal digits weights can be rounded
// to. float64 carries no more than 15 significant decimal digits.
const MaxDigits = 15

// ValidatePath validates an input or output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//
// The single dash "-" is accepted and stands for stdin or stdout.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.TrimSpace(path) != path {
		return New(ErrCodeInvalidPath, "path has leading or trailing whitespace: %q", path)
	}

	return nil
}

// ValidateDigits validates the number of decimal digits used when rounding
// randomized weights.
func ValidateDigits(digits int) error {
	if digits < 0 || digits > MaxDigits {
		return New(ErrCodeInvalidInput, "round digits must be between 0 and %d, got %d", MaxDigits, digits)
	}
	return nil
}

// ValidateRange validates a closed interval [lower, upper].
func ValidateRange(lower, upper float64) error {
	if lower > upper {
		return New(ErrCodeInvalidInput, "lower bound %g exceeds upper bound %g", lower, upper)
	}
	return nil
}
