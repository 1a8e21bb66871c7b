package sunset

// Scanner defines the interface for checking a compiled output tree.
// Implementations must be safe for concurrent use by multiple goroutines.
type Scanner interface {
	// Scan returns the violations found under rootDir, in discovery order.
	// A missing rootDir yields no violations and no error.
	Scan(rootDir, currentVersion string) ([]Violation, error)

	// ScanDetailed returns every marker found under rootDir along with the
	// violations and the artifacts that had to be skipped.
	ScanDetailed(rootDir, currentVersion string) (ScanReport, error)
}
