package application

import (
	"fmt"
	"os"
	"strings"

	"pdfsat/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "notesPath" -> "notes path")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"path":      "path",
		"notesPath": "notes path",
		"action":    "action",
		"page":      "page",
		"tier":      "tier",
		"dest":      "destination",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateFile checks that a path names an existing regular file.
func ValidateFile(fieldName, path string) error {
	if err := ValidateRequired(fieldName, path); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s not found: %s", formatFieldName(fieldName), path),
		}
	}
	if info.IsDir() {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is a directory: %s", formatFieldName(fieldName), path),
		}
	}
	return nil
}

// ValidateAction checks that a command name is a known navigation action.
func ValidateAction(fieldName, name string) (domain.Action, error) {
	a := domain.ParseAction(name)
	if a == domain.ActionUnknown {
		return a, &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("unknown action: %s", name),
		}
	}
	return a, nil
}
