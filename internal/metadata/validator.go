package metadata

import (
	"strings"
)

// Validate checks structural constraints of a decoded descriptor:
//   - format is present and not negative
//   - name is a non-empty dotted name without whitespace
//   - routines and fields are named
//   - requires entries are non-empty
//
// Markers are not validated here. An untyped marker or a bad threshold only
// disqualifies that marker, see Extractor.
func Validate(u *Unit) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []string{}}

	if u.Format < 1 {
		result.AddError("format is required and must be a positive integer (current: %d)", CurrentFormat)
	}

	name := strings.TrimSpace(u.Name)
	switch {
	case name == "":
		result.AddError("name is required")
	case name != u.Name || strings.ContainsAny(name, " \t\n/\\"):
		result.AddError("name %q must be a dotted unit name without whitespace or path separators", u.Name)
	case strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") || strings.Contains(name, ".."):
		result.AddError("name %q has an empty segment", u.Name)
	}

	for i, dep := range u.Requires {
		if strings.TrimSpace(dep) == "" {
			result.AddError("requires[%d] cannot be empty", i)
		}
	}

	checkMembers(&result, "routines", u.Routines, true)
	checkMembers(&result, "fields", u.Fields, true)
	checkMembers(&result, "constructors", u.Constructors, false)

	return result
}

func checkMembers(result *ValidationResult, section string, members []Member, named bool) {
	for i, m := range members {
		if named && strings.TrimSpace(m.Name) == "" {
			result.AddError("%s[%d].name is required", section, i)
		}
	}
}
