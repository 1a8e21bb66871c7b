package metadata

import (
	"errors"
	"strings"
	"testing"
)

// TestDecode_AllSections tests decoding a descriptor with every section present
func TestDecode_AllSections(t *testing.T) {
	content := `format: 1
name: com.acme.Widget
requires: [com.acme.Base]
markers:
  - type: sunset.DeprecatedAfter
    values: {value: "2.0.0", reason: "legacy", replacement: "com.acme.Gadget"}
routines:
  - name: render
    markers:
      - type: sunset.DeprecatedAfter
        values:
          value: "1.5"
fields:
  - name: size
constructors:
  - markers: []
`

	unit, err := Decode([]byte(content), "com/acme/Widget.unit.yaml")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if unit.Name != "com.acme.Widget" {
		t.Errorf("Expected name com.acme.Widget, got %q", unit.Name)
	}
	if unit.Format != 1 {
		t.Errorf("Expected format 1, got %d", unit.Format)
	}
	if !unit.IsLoadable() {
		t.Error("Expected unit to be loadable by default")
	}
	if len(unit.Requires) != 1 || unit.Requires[0] != "com.acme.Base" {
		t.Errorf("Unexpected requires: %v", unit.Requires)
	}
	if len(unit.Markers) != 1 {
		t.Fatalf("Expected 1 unit marker, got %d", len(unit.Markers))
	}
	if v, ok := unit.Markers[0].Text(ReplacementKey); !ok || v != "com.acme.Gadget" {
		t.Errorf("Expected replacement com.acme.Gadget, got %q (ok=%v)", v, ok)
	}
	if len(unit.Routines) != 1 || unit.Routines[0].Name != "render" {
		t.Fatalf("Unexpected routines: %+v", unit.Routines)
	}
	if v, _ := unit.Routines[0].Markers[0].Text(ValueKey); v != "1.5" {
		t.Errorf("Expected routine threshold 1.5, got %q", v)
	}
	if len(unit.Fields) != 1 || len(unit.Constructors) != 1 {
		t.Errorf("Expected 1 field and 1 constructor, got %d and %d", len(unit.Fields), len(unit.Constructors))
	}
}

func TestDecode_JSON(t *testing.T) {
	content := `{
  "format": 1,
  "name": "com.acme.Widget",
  "loadable": false,
  "fields": [
    {"name": "size", "markers": [{"type": "sunset.DeprecatedAfter", "values": {"value": "3.1", "reason": null}}]}
  ]
}`

	unit, err := Decode([]byte(content), "com/acme/Widget.unit.json")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if unit.IsLoadable() {
		t.Error("Expected loadable=false to be honoured")
	}
	m := unit.Fields[0].Markers[0]
	if v, ok := m.Text(ValueKey); !ok || v != "3.1" {
		t.Errorf("Expected threshold 3.1, got %q", v)
	}
	if _, ok := m.Text(ReasonKey); ok {
		t.Error("null reason should not be readable")
	}
}

func TestDecode_UnquotedNumericThresholdKeepsLiteral(t *testing.T) {
	content := `format: 1
name: a.B
markers:
  - type: sunset.DeprecatedAfter
    values: {value: 2.10}
`
	unit, err := Decode([]byte(content), "a/B.unit.yaml")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if v, _ := unit.Markers[0].Text(ValueKey); v != "2.10" {
		t.Errorf("Expected literal text 2.10, got %q", v)
	}
}

func TestDecode_MalformedMarkersDecodeIndividually(t *testing.T) {
	content := `format: 1
name: a.W
markers:
  - type: sunset.DeprecatedAfter
    values: oops
  - values: {value: "1.0"}
  - just a string
  - type: sunset.DeprecatedAfter
    values: {value: "1.0"}
`
	unit, err := DecodeAndValidate([]byte(content), "a/W.unit.yaml")
	if err != nil {
		t.Fatalf("Malformed markers must not reject the descriptor, got: %v", err)
	}
	if len(unit.Markers) != 4 {
		t.Fatalf("Expected 4 markers, got %d", len(unit.Markers))
	}
	if _, ok := unit.Markers[0].Text(ValueKey); ok {
		t.Error("A scalar values entry should leave the value unreadable")
	}
	if unit.Markers[0].Type != "sunset.DeprecatedAfter" {
		t.Errorf("Expected type to survive a bad values entry, got %q", unit.Markers[0].Type)
	}
	if unit.Markers[1].Type != "" || unit.Markers[2].Type != "" {
		t.Error("Markers without a readable type should decode as untyped")
	}
	if v, ok := unit.Markers[3].Text(ValueKey); !ok || v != "1.0" {
		t.Errorf("Expected well-formed sibling threshold 1.0, got %q", v)
	}
}

func TestDecode_OversizedDescriptor(t *testing.T) {
	content := "format: 1\nname: a.B\n" + strings.Repeat("#", MaxDescriptorSize)

	_, err := Decode([]byte(content), "a/B.unit.yaml")
	var metaErr *MetadataError
	if !errors.As(err, &metaErr) {
		t.Fatalf("Expected MetadataError, got %T: %v", err, err)
	}
	if !strings.Contains(metaErr.Message, "exceeds maximum size") {
		t.Errorf("Unexpected message %q", metaErr.Message)
	}
}

func TestDecode_Empty(t *testing.T) {
	_, err := Decode([]byte("  \n\t\n"), "empty.unit.yaml")
	var metaErr *MetadataError
	if !errors.As(err, &metaErr) {
		t.Fatalf("Expected MetadataError, got %T: %v", err, err)
	}
	if !strings.Contains(metaErr.Message, "empty") {
		t.Errorf("Expected message about empty descriptor, got %q", metaErr.Message)
	}
}

func TestDecode_SyntaxErrorHasLine(t *testing.T) {
	content := "format: 1\nname: a.B\nmarkers: [\n"

	_, err := Decode([]byte(content), "a/B.unit.yaml")
	var metaErr *MetadataError
	if !errors.As(err, &metaErr) {
		t.Fatalf("Expected MetadataError, got %T: %v", err, err)
	}
	if metaErr.Line == 0 {
		t.Errorf("Expected a line number, got error %q", metaErr.Error())
	}
	if !strings.Contains(metaErr.Error(), "a/B.unit.yaml") {
		t.Errorf("Error should name the file: %q", metaErr.Error())
	}
}

func TestDecode_WrongShape(t *testing.T) {
	content := "format: 1\nname: a.B\nroutines: nope\n"

	_, err := Decode([]byte(content), "a/B.unit.yaml")
	var metaErr *MetadataError
	if !errors.As(err, &metaErr) {
		t.Fatalf("Expected MetadataError, got %T: %v", err, err)
	}
	if metaErr.Hint == "" {
		t.Error("Expected a hint for shape errors")
	}
}

func TestDecode_UnsupportedFormat(t *testing.T) {
	_, err := Decode([]byte("format: 99\nname: a.B\n"), "a/B.unit.yaml")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDecodeAndValidate_Invalid(t *testing.T) {
	_, err := DecodeAndValidate([]byte("format: 1\nroutines:\n  - markers: []\n"), "x.unit.yaml")
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if !strings.Contains(err.Error(), "name is required") {
		t.Errorf("Expected missing name error, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "routines[0].name is required") {
		t.Errorf("Expected missing routine name error, got %q", err.Error())
	}
}

func TestDescriptorBase(t *testing.T) {
	tests := []struct {
		file string
		base string
		ok   bool
	}{
		{"Widget.unit.yaml", "Widget", true},
		{"Widget.unit.yml", "Widget", true},
		{"Widget.unit.json", "Widget", true},
		{"Outer$Inner.unit.yaml", "Outer$Inner", true},
		{"Widget.class", "", false},
		{"Widget.yaml", "", false},
		{".unit.yaml", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			base, ok := DescriptorBase(tt.file)
			if ok != tt.ok || base != tt.base {
				t.Errorf("DescriptorBase(%q) = (%q, %v), want (%q, %v)", tt.file, base, ok, tt.base, tt.ok)
			}
		})
	}
}
