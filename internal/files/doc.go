// Package files provides file-related functionality organized into sub-packages.
//
//   - filesystem: Filesystem abstraction interfaces and implementations (OS and in-memory)
//   - loader: Resolution of unit names to decoded descriptors beneath one root
//   - scanner: Recursive discovery of unit descriptors and marker checking
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/sunset/internal/files/scanner"
//	    "github.com/vvka-141/sunset/internal/logging"
//	)
//
//	s := scanner.NewScanner(logging.NewConsoleLogger(false))
//	violations, err := s.Scan("./build/classes", "2.0.0")
package files
