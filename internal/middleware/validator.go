package middleware

import (
	"fmt"
	"strings"
)

// Input validation and sanitization utilities

const maxLabelLength = 64

// ValidateLabel checks the environment/concern labels: short, printable,
// shell-safe. Empty is allowed; both fields are optional hints for the model.
func ValidateLabel(field, value string) error {
	if value == "" {
		return nil
	}
	if len(value) > maxLabelLength {
		return fmt.Errorf("%s is too long (max %d characters)", field, maxLabelLength)
	}
	for _, r := range value {
		if r < 32 || r == 127 {
			return fmt.Errorf("%s contains control characters", field)
		}
	}
	return nil
}

// SanitizeString removes null bytes and control characters from free text,
// keeping tabs and newlines (log text is multi-line by nature).
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' || r == '\r' {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// ValidatePage normalizes a pagination page number
func ValidatePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

// ValidatePageSize normalizes a pagination page size
func ValidatePageSize(size int) int {
	if size <= 0 {
		return 20 // default
	}
	if size > 100 {
		return 100 // max
	}
	return size
}
