// Package sunset exposes the public types shared by the sunset scanner and its
// command-line front end.
//
// A declaration carrying a DeprecatedAfter marker is expected to be removed once
// the project reaches the marker's threshold version. Scanning a compiled
// output tree yields one Violation per marker whose threshold has been reached.
//
// Example:
//
//	s := scanner.NewScanner(logging.NewConsoleLogger(false))
//	violations, err := s.Scan("./build/classes", "2.1.0")
//	if err != nil {
//	    return err
//	}
//	if len(violations) > 0 {
//	    return sunset.NewViolationsError("2.1.0", violations)
//	}
package sunset
