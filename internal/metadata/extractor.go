package metadata

import (
	"strings"

	"github.com/vvka-141/sunset/internal/version"
	"github.com/vvka-141/sunset/pkg/sunset"
)

// Element identifies the declaration a set of markers is attached to.
type Element struct {
	Name     string
	Kind     sunset.DeclarationKind
	Artifact string
}

// Extractor turns markers into marker records and violations.
// Extractor is stateless and safe for concurrent use.
type Extractor struct {
	markerType string
	logger     sunset.Logger
}

// NewExtractor creates an extractor matching markers of markerType.
// An empty markerType selects sunset.DefaultMarkerType.
// Panics if logger is nil.
func NewExtractor(markerType string, logger sunset.Logger) *Extractor {
	if logger == nil {
		panic("logger cannot be nil")
	}
	if strings.TrimSpace(markerType) == "" {
		markerType = sunset.DefaultMarkerType
	}
	return &Extractor{markerType: markerType, logger: logger}
}

// MarkerType returns the marker type name this extractor matches.
func (e *Extractor) MarkerType() string {
	return e.markerType
}

// Evaluate returns one record per readable marker of the expected type, in
// declaration order, with Due set when currentVersion has reached the threshold.
//
// Markers of other types are ignored. An untyped marker, or one whose
// threshold is missing or not dotted-numeric, is skipped with a warning.
// Each record carries the marker's position on the element.
func (e *Extractor) Evaluate(markers []Marker, element Element, currentVersion string) []sunset.MarkerRecord {
	var records []sunset.MarkerRecord

	for i, m := range markers {
		if m.Type == "" {
			e.logger.Warn("%s: marker #%d has no readable type, skipping it", element.Name, i)
			continue
		}
		if m.Type != e.markerType {
			continue
		}

		threshold, ok := m.Text(ValueKey)
		if !ok || threshold == "" {
			e.logger.Warn("%s: %s marker has no readable %q, skipping it", element.Name, e.markerType, ValueKey)
			continue
		}

		due, err := version.Reached(currentVersion, threshold)
		if err != nil {
			e.logger.Warn("%s: skipping %s marker: %v", element.Name, e.markerType, err)
			continue
		}

		// Optional values: anything unreadable counts as absent.
		reason, _ := m.Text(ReasonKey)
		replacement, _ := m.Text(ReplacementKey)

		records = append(records, sunset.MarkerRecord{
			ElementName:      element.Name,
			Kind:             element.Kind,
			ThresholdVersion: threshold,
			Reason:           reason,
			Replacement:      replacement,
			Artifact:         element.Artifact,
			Index:            i,
			Due:              due,
		})
	}

	return records
}

// Extract returns a violation for every marker whose threshold currentVersion has reached.
// Duplicate markers on one element yield one violation each.
func (e *Extractor) Extract(markers []Marker, element Element, currentVersion string) []sunset.Violation {
	var violations []sunset.Violation
	for _, r := range e.Evaluate(markers, element, currentVersion) {
		if r.Due {
			violations = append(violations, ToViolation(r))
		}
	}
	return violations
}

// ToViolation converts a due marker record into a violation.
func ToViolation(r sunset.MarkerRecord) sunset.Violation {
	return sunset.Violation{
		ID:               ViolationID(r.ElementName, r.ThresholdVersion, r.Index),
		ElementName:      r.ElementName,
		Kind:             r.Kind,
		ThresholdVersion: r.ThresholdVersion,
		Reason:           r.Reason,
		Replacement:      r.Replacement,
		Artifact:         r.Artifact,
	}
}
