package sunset

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess      = 0  // Validation completed, nothing past its threshold
	ExitGeneralError = 1  // Unknown or unclassified error
	ExitUsageError   = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic        = 3  // Internal panic (unexpected crash)
	ExitConfigError  = 10 // Invalid configuration
	ExitScanSetup    = 11 // Output root could not be opened for scanning
	ExitViolations   = 20 // At least one declaration is past its removal version
)

const (
	// DefaultMarkerType is the fully-qualified type name markers must carry to be checked.
	DefaultMarkerType = "sunset.DeprecatedAfter"

	// UnspecifiedVersion is the version placeholder build tools report when a
	// project has no version configured. Validation is skipped for it.
	UnspecifiedVersion = "unspecified"

	// DefaultOutputDir is the compiled output root scanned when none is configured.
	DefaultOutputDir = "build/classes"

	// NestedUnitSeparator marks nested or synthetic units in artifact names.
	// Such units are not scanned.
	NestedUnitSeparator = "$"
)
