// Package metadata decodes unit descriptors and extracts DeprecatedAfter markers from them.
//
// # Overview
//
// The compile step emits one descriptor per compiled unit, next to (or instead
// of) the compiled artifact. A descriptor lists the unit's declared routines,
// fields and constructors together with the markers attached to each of them.
// Reading descriptors replaces introspecting compiled binaries: nothing from the
// scanned project is ever executed or linked.
//
// # Descriptor Format
//
// Descriptors are YAML (".unit.yaml", ".unit.yml") or JSON (".unit.json"):
//
//	format: 1
//	name: com.acme.Widget
//	requires: [com.acme.Base]
//	markers:
//	  - type: sunset.DeprecatedAfter
//	    values: {value: "2.0.0", reason: "legacy API", replacement: "com.acme.Gadget"}
//	routines:
//	  - name: render
//	    markers:
//	      - type: sunset.DeprecatedAfter
//	        values: {value: "1.5"}
//	fields:
//	  - name: size
//	constructors:
//	  - markers: []
//
// # Marker Values
//
//   - value: Required threshold version (dotted-numeric)
//   - reason: Optional free text, defaults to ""
//   - replacement: Optional free text, defaults to ""
//
// Only markers whose type matches the configured marker type name exactly are
// considered. A marker whose threshold cannot be read or parsed is skipped and
// reported through the logger; it never aborts a scan. Reason and replacement
// are read best-effort: anything that is not a scalar reads as "".
//
// # Display Names
//
//	unit         com.acme.Widget
//	routine      com.acme.Widget.render()
//	field        com.acme.Widget.size
//	constructor  com.acme.Widget.<constructor>
package metadata
