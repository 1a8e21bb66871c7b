package sunset

import (
	"strings"

	"github.com/google/uuid"
)

// DeclarationKind identifies which kind of declaration carried a marker.
type DeclarationKind string

const (
	KindUnit        DeclarationKind = "unit"
	KindRoutine     DeclarationKind = "routine"
	KindField       DeclarationKind = "field"
	KindConstructor DeclarationKind = "constructor"
)

// Violation is produced when a marker's threshold version has been reached
// by the current project version.
type Violation struct {
	// ID is a deterministic identifier derived from ElementName and ThresholdVersion.
	ID uuid.UUID `json:"id"`

	// ElementName is the display name of the declaration, e.g. "com.acme.Widget.render()".
	ElementName string `json:"element"`

	Kind             DeclarationKind `json:"kind"`
	ThresholdVersion string          `json:"threshold"`
	Reason           string          `json:"reason,omitempty"`
	Replacement      string          `json:"replacement,omitempty"`

	// Artifact is the slash-separated path of the descriptor, relative to the scanned root.
	Artifact string `json:"artifact,omitempty"`
}

// String renders the violation in the form used by build failure messages:
//
//	<element> (deprecated after version <threshold>) - Reason: <reason> - Use: <replacement>
//
// The reason and replacement parts are only present when non-empty.
func (v Violation) String() string {
	var b strings.Builder
	b.WriteString(v.ElementName)
	b.WriteString(" (deprecated after version ")
	b.WriteString(v.ThresholdVersion)
	b.WriteString(")")
	if v.Reason != "" {
		b.WriteString(" - Reason: ")
		b.WriteString(v.Reason)
	}
	if v.Replacement != "" {
		b.WriteString(" - Use: ")
		b.WriteString(v.Replacement)
	}
	return b.String()
}

// MarkerRecord describes a marker found during a scan, whether or not its
// threshold has been reached.
type MarkerRecord struct {
	ElementName      string          `json:"element"`
	Kind             DeclarationKind `json:"kind"`
	ThresholdVersion string          `json:"threshold"`
	Reason           string          `json:"reason,omitempty"`
	Replacement      string          `json:"replacement,omitempty"`
	Artifact         string          `json:"artifact"`
	Index            int             `json:"index"`
	Due              bool            `json:"due"`
}

// SkippedArtifact records a unit artifact that was discovered but could not be loaded.
type SkippedArtifact struct {
	Artifact string `json:"artifact"`
	Unit     string `json:"unit"`
	Reason   string `json:"reason"`
	Detail   string `json:"detail,omitempty"`
}

// ScanReport is the detailed outcome of scanning one output root.
type ScanReport struct {
	Root           string            `json:"root"`
	CurrentVersion string            `json:"current_version"`
	UnitsLoaded    int               `json:"units_loaded"`
	Markers        []MarkerRecord    `json:"markers"`
	Violations     []Violation       `json:"violations"`
	Skipped        []SkippedArtifact `json:"skipped,omitempty"`
}

// HasViolations reports whether the scan found at least one violation.
func (r ScanReport) HasViolations() bool {
	return len(r.Violations) > 0
}
