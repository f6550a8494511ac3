package application

import (
	"fmt"
	"strings"

	"grove/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		// Format field name with spaces for error message (e.g., "itemID" -> "item ID")
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "itemID" -> "item ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"itemID":    "item ID",
		"userKey":   "user key",
		"linkedRef": "linked note",
		"query":     "query",
		"token":     "share token",
		"ref":       "reference",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	// Fallback: just return the field name as-is
	return fieldName
}

// ValidateKind checks that value names a known kind and returns it
func ValidateKind(fieldName, value string) (domain.Kind, error) {
	kind, ok := domain.ParseKind(value)
	if !ok {
		return "", &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected one of note, task, scratch, got: %s", value),
		}
	}
	return kind, nil
}

// ParseTags splits a comma-separated tag list as typed by a user
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	return domain.NormalizeTags(strings.Split(raw, ","))
}
