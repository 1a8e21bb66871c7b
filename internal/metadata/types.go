package metadata

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// CurrentFormat is the newest descriptor format this package understands.
const CurrentFormat = 1

// Marker attribute keys.
const (
	ValueKey       = "value"
	ReasonKey      = "reason"
	ReplacementKey = "replacement"
)

// Marker is one annotation-like record attached to a declaration.
// Values are kept as raw YAML nodes so that an unexpected shape can be
// tolerated per attribute instead of failing the whole descriptor.
type Marker struct {
	Type   string               `yaml:"type"`
	Values map[string]yaml.Node `yaml:"values"`
}

// NewMarker builds a marker whose values are plain string scalars.
func NewMarker(markerType string, values map[string]string) Marker {
	m := Marker{Type: markerType, Values: make(map[string]yaml.Node, len(values))}
	for k, v := range values {
		m.Values[k] = yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
	}
	return m
}

// UnmarshalYAML decodes a marker and never fails. A marker that is not a
// mapping, a non-scalar type and a values entry that is not a mapping are
// dropped, leaving an untyped marker or an empty Values map. The extractor
// then skips that marker alone instead of the whole descriptor.
func (m *Marker) UnmarshalYAML(node *yaml.Node) error {
	m.Type = ""
	m.Values = map[string]yaml.Node{}

	node = resolveAlias(node)
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], resolveAlias(node.Content[i+1])
		switch key.Value {
		case "type":
			if val.Kind == yaml.ScalarNode && val.ShortTag() != "!!null" {
				m.Type = strings.TrimSpace(val.Value)
			}
		case "values":
			if val.Kind != yaml.MappingNode {
				continue
			}
			for j := 0; j+1 < len(val.Content); j += 2 {
				if k := val.Content[j]; k.Kind == yaml.ScalarNode {
					m.Values[k.Value] = *resolveAlias(val.Content[j+1])
				}
			}
		}
	}
	return nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// Text returns the attribute as text. ok is false when the attribute is absent,
// null, or not a scalar.
func (m Marker) Text(key string) (string, bool) {
	node, exists := m.Values[key]
	if !exists {
		return "", false
	}
	if node.Kind != yaml.ScalarNode || node.ShortTag() == "!!null" {
		return "", false
	}
	return node.Value, true
}

// Member is a routine, field or constructor declared directly on a unit.
type Member struct {
	Name    string   `yaml:"name"`
	Markers []Marker `yaml:"markers"`
}

// Unit is a decoded descriptor of one compiled unit.
type Unit struct {
	Format       int      `yaml:"format"`
	Name         string   `yaml:"name"`
	Loadable     *bool    `yaml:"loadable"`
	Requires     []string `yaml:"requires"`
	Markers      []Marker `yaml:"markers"`
	Routines     []Member `yaml:"routines"`
	Fields       []Member `yaml:"fields"`
	Constructors []Member `yaml:"constructors"`
}

// IsLoadable reports whether the unit can be instantiated. Abstract units and
// units the emitter flags as unloadable return false.
func (u *Unit) IsLoadable() bool {
	return u.Loadable == nil || *u.Loadable
}

// RoutineName returns the display name of a routine declared on unit.
func RoutineName(unit, routine string) string {
	return fmt.Sprintf("%s.%s()", unit, routine)
}

// FieldName returns the display name of a field declared on unit.
func FieldName(unit, field string) string {
	return unit + "." + field
}

// ConstructorName returns the display name of a constructor declared on unit.
func ConstructorName(unit string) string {
	return unit + ".<constructor>"
}

// ValidationResult contains the outcome of descriptor validation.
// If Valid is false, Errors contains human-readable error messages.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// AddError appends an error message to the validation result and marks it as invalid.
func (v *ValidationResult) AddError(format string, args ...interface{}) {
	v.Valid = false
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

// HasErrors returns true if the validation result contains errors.
func (v *ValidationResult) HasErrors() bool {
	return len(v.Errors) > 0
}

// ErrorString returns all validation errors joined with semicolons.
// Returns empty string if no errors.
func (v *ValidationResult) ErrorString() string {
	if len(v.Errors) == 0 {
		return ""
	}
	result := v.Errors[0]
	for i := 1; i < len(v.Errors); i++ {
		result += "; " + v.Errors[i]
	}
	return result
}
