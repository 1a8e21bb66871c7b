package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// FileSystemProvider gives read-only access to a filesystem.
// Missing paths produce errors matching fs.ErrNotExist.
type FileSystemProvider interface {
	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)

	// ReadDir returns the entries of a directory sorted by name.
	ReadDir(path string) ([]FileInfo, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// OpenRoot opens a handle confined to the directory at path.
	// The caller must Close it.
	OpenRoot(path string) (Root, error)
}

// Root reads files beneath a single directory. Names are slash-separated and
// relative to the root; names escaping the root are rejected.
type Root interface {
	// Name returns the path the root was opened with
	Name() string

	// ReadFile reads at most limit bytes of the file at name. A limit of zero
	// or less reads the whole file.
	ReadFile(name string, limit int64) ([]byte, error)

	// Stat returns file information for name
	Stat(name string) (FileInfo, error)

	// Close releases the root. Reads after Close fail with fs.ErrClosed.
	Close() error
}
