// Package filesystem provides read-only filesystem abstractions for scanning
// compiled output trees.
//
// Key interfaces:
//   - FileSystemProvider: Stat, directory listing and whole-file reads by path
//   - Root: A handle confined to one directory, opened once per scan and closed afterwards
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem (os.Root for confinement)
//   - MemoryFileSystem: In-memory implementation for testing
package filesystem
