package sunset

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := cli.Execute()
//	if errors.Is(err, sunset.ErrViolationsFound) {
//	    // Handle expired declarations
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrScanSetup indicates the output root exists but could not be opened for scanning.
	ErrScanSetup = errors.New("scan setup failed")

	// ErrViolationsFound indicates at least one declaration has passed its removal version.
	ErrViolationsFound = errors.New("deprecated elements past their removal version")
)

// ViolationsError carries the itemized violations behind ErrViolationsFound.
type ViolationsError struct {
	CurrentVersion string
	Violations     []Violation
}

// NewViolationsError builds the build-halting error for a non-empty violation list.
func NewViolationsError(currentVersion string, violations []Violation) *ViolationsError {
	return &ViolationsError{CurrentVersion: currentVersion, Violations: violations}
}

// Error renders a header naming the current version followed by one violation per line.
func (e *ViolationsError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "found %d element(s) that should have been removed (current version: %s):",
		len(e.Violations), e.CurrentVersion)
	for _, v := range e.Violations {
		b.WriteString("\n  ")
		b.WriteString(v.String())
	}
	return b.String()
}

// Unwrap lets errors.Is match ErrViolationsFound.
func (e *ViolationsError) Unwrap() error {
	return ErrViolationsFound
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrViolationsFound):
		return ExitViolations
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrScanSetup):
		return ExitScanSetup
	}

	errStr := err.Error()
	if strings.Contains(errStr, "unknown command") ||
		strings.Contains(errStr, "unknown flag") ||
		strings.Contains(errStr, "accepts at most") {
		return ExitUsageError
	}

	return ExitGeneralError
}
