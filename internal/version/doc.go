// Package version compares dotted-numeric version strings.
//
// A version is a sequence of non-negative integers separated by ".". Missing
// trailing segments count as zero, so "1.2" equals "1.2.0" and "2" is greater
// than "1.9.9". Pre-release and build-metadata suffixes are not understood:
// "1.0.0-rc1" is malformed.
package version
