// Package scanner walks a compiled output tree and reports declarations whose
// DeprecatedAfter threshold the current version has reached.
//
// The scanner is responsible for:
//   - Recursively discovering unit descriptors, building qualified names from directories
//   - Skipping nested units (names containing "$"); their markers are not checked
//   - Loading each unit through a loader opened once per scan
//   - Checking markers on the unit and on its declared routines, fields and constructors
//
// A missing output root is not an error: it means nothing has been compiled yet.
// Units that cannot be loaded are skipped and listed in the ScanReport. Only a
// root that exists but cannot be opened fails the scan.
//
// Discovery order is deterministic: within a directory, subdirectories are
// visited before files, each in lexical order.
package scanner
