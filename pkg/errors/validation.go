package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxVertices caps the size of trees and layouts accepted from untrusted input.
const MaxVertices = 1 << 20

// ValidateSize checks a vertex count taken from external input.
// Negative sizes and sizes above MaxVertices are rejected.
func ValidateSize(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "size cannot be negative: %d", n)
	}
	if n > MaxVertices {
		return New(ErrCodeInvalidInput, "size too large (max %d vertices): %d", MaxVertices, n)
	}
	return nil
}

// ValidateFinite rejects NaN and infinite values for the named field.
func ValidateFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be finite, got %v", field, v)
	}
	return nil
}

// ValidatePositive rejects values that are not finite and strictly positive.
func ValidatePositive(field string, v float64) error {
	if err := ValidateFinite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return New(ErrCodeInvalidInput, "%s must be positive, got %v", field, v)
	}
	return nil
}

// ValidateLabel validates a vertex label for safe embedding in SVG, DOT and
// terminal output.
//
// The validation rules are intentionally conservative:
//   - Maximum length of 256 characters
//   - No control characters
//   - No null bytes
func ValidateLabel(label string) error {
	if len(label) > 256 {
		return New(ErrCodeInvalidTree, "label too long (max 256 characters)")
	}
	if strings.Contains(label, "\x00") {
		return New(ErrCodeInvalidTree, "label contains a null byte")
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTree, "label contains invalid control characters")
		}
	}
	return nil
}

// ValidateID validates a document identifier received over the API.
// IDs are UUID strings; this only rejects obviously malformed input.
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "id too long (max 64 characters)")
	}
	for _, r := range id {
		if !(r == '-' || unicode.IsDigit(r) || unicode.IsLetter(r)) {
			return New(ErrCodeInvalidInput, "id contains invalid characters")
		}
	}
	return nil
}
