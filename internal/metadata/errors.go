package metadata

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MetadataError represents a structured error with context and helpful hints.
// It includes file path, optional line number, and an actionable suggestion.
type MetadataError struct {
	FilePath string // Path to the descriptor with the error
	Line     int    // Line number (0 if unknown)
	Field    string // Field name (e.g., "name", "format") if applicable
	Message  string // Primary error message
	Hint     string // Actionable suggestion for fixing
}

// Error implements the error interface with rich formatting.
func (e *MetadataError) Error() string {
	location := e.FilePath
	if e.Line > 0 {
		location = fmt.Sprintf("%s (line %d)", e.FilePath, e.Line)
	}

	msg := fmt.Sprintf("descriptor error in %s: %s", location, e.Message)
	if e.Field != "" {
		msg = fmt.Sprintf("descriptor error in %s [field: %s]: %s", location, e.Field, e.Message)
	}

	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}

	return msg
}

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// wrapYAMLError converts yaml package errors to MetadataError with line numbers.
func wrapYAMLError(err error, filePath string) error {
	if typeErr, ok := err.(*yaml.TypeError); ok {
		return &MetadataError{
			FilePath: filePath,
			Line:     firstLine(strings.Join(typeErr.Errors, "\n")),
			Message:  strings.Join(typeErr.Errors, "; "),
			Hint: "A field has the wrong shape. Expected:\n" +
				"  name: string, format: integer, requires: list of strings,\n" +
				"  markers/routines/fields/constructors: lists of mappings.",
		}
	}

	return &MetadataError{
		FilePath: filePath,
		Line:     firstLine(err.Error()),
		Message:  strings.TrimPrefix(err.Error(), "yaml: "),
		Hint:     "Check that the descriptor is valid YAML or JSON as emitted by the compile step.",
	}
}

func firstLine(msg string) int {
	m := yamlLineRegex.FindStringSubmatch(msg)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// formatValidationErrors converts ValidationResult to a user-friendly error.
func formatValidationErrors(result ValidationResult, filePath string) error {
	if result.Valid {
		return nil
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("invalid unit descriptor %s:\n", filePath))

	for i, err := range result.Errors {
		msg.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err))
	}

	return &MetadataError{
		FilePath: filePath,
		Message:  strings.TrimRight(msg.String(), "\n"),
	}
}
