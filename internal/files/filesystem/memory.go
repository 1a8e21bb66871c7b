package filesystem

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryEntry struct {
	content []byte
	info    *memoryFileInfo
	readErr error
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Paths use forward slashes; relative paths resolve against the root given to
// NewMemoryFileSystem.
type MemoryFileSystem struct {
	mu          sync.RWMutex
	entries     map[string]*memoryEntry
	root        string
	openRootErr error
	openRoots   int
	rootsOpened int
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root directory itself is not created until a file or directory is added
// under it, so a fresh filesystem behaves like a missing output directory.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	return &MemoryFileSystem{
		entries: make(map[string]*memoryEntry),
		root:    path.Clean(filepath.ToSlash(root)),
	}
}

func (mfs *MemoryFileSystem) abs(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

// AddFile adds a file to the in-memory filesystem, creating parent directories.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.abs(filePath)
	mfs.entries[absPath] = &memoryEntry{
		content: []byte(content),
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(content)),
			mode:    0644,
			modTime: time.Now(),
		},
	}
	mfs.ensureDirectoriesExist(path.Dir(absPath))
}

// AddDir adds an empty directory and its parents.
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.ensureDirectoriesExist(mfs.abs(dirPath))
}

// FailRead makes reads of filePath return err. The file must have been added.
func (mfs *MemoryFileSystem) FailRead(filePath string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	if e, ok := mfs.entries[mfs.abs(filePath)]; ok {
		e.readErr = err
	}
}

// FailOpenRoot makes every subsequent OpenRoot call return err.
func (mfs *MemoryFileSystem) FailOpenRoot(err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.openRootErr = err
}

// OpenRootCount returns the number of roots currently open.
func (mfs *MemoryFileSystem) OpenRootCount() int {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return mfs.openRoots
}

// RootsOpened returns the number of OpenRoot calls that succeeded.
func (mfs *MemoryFileSystem) RootsOpened() int {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return mfs.rootsOpened
}

// ensureDirectoriesExist creates directory entries for dir and all its parents.
func (mfs *MemoryFileSystem) ensureDirectoriesExist(dir string) {
	for {
		if _, exists := mfs.entries[dir]; exists {
			return
		}
		mfs.entries[dir] = &memoryEntry{
			info: &memoryFileInfo{
				name:    path.Base(dir),
				mode:    0755 | fs.ModeDir,
				modTime: time.Now(),
				isDir:   true,
			},
		}
		parent := path.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	e, exists := mfs.entries[mfs.abs(statPath)]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: statPath, Err: fs.ErrNotExist}
	}
	return e.info, nil
}

// ReadDir implements FileSystemProvider.ReadDir
func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	absPath := mfs.abs(dirPath)
	dir, exists := mfs.entries[absPath]
	if !exists {
		return nil, &fs.PathError{Op: "readdir", Path: dirPath, Err: fs.ErrNotExist}
	}
	if !dir.info.isDir {
		return nil, &fs.PathError{Op: "readdir", Path: dirPath, Err: fs.ErrInvalid}
	}

	var result []FileInfo
	for p, e := range mfs.entries {
		if p != absPath && path.Dir(p) == absPath {
			result = append(result, e.info)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return mfs.readFile(mfs.abs(filePath), filePath)
}

func (mfs *MemoryFileSystem) readFile(absPath, display string) ([]byte, error) {
	e, exists := mfs.entries[absPath]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: display, Err: fs.ErrNotExist}
	}
	if e.info.isDir {
		return nil, &fs.PathError{Op: "read", Path: display, Err: fs.ErrInvalid}
	}
	if e.readErr != nil {
		return nil, &fs.PathError{Op: "read", Path: display, Err: e.readErr}
	}
	return e.content, nil
}

// OpenRoot implements FileSystemProvider.OpenRoot
func (mfs *MemoryFileSystem) OpenRoot(rootPath string) (Root, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	if mfs.openRootErr != nil {
		return nil, mfs.openRootErr
	}

	absPath := mfs.abs(rootPath)
	e, exists := mfs.entries[absPath]
	if !exists {
		return nil, &fs.PathError{Op: "openroot", Path: rootPath, Err: fs.ErrNotExist}
	}
	if !e.info.isDir {
		return nil, &fs.PathError{Op: "openroot", Path: rootPath, Err: fs.ErrInvalid}
	}

	mfs.openRoots++
	mfs.rootsOpened++
	return &memoryRoot{fs: mfs, name: rootPath, base: absPath}, nil
}

// memoryRoot implements Root for MemoryFileSystem
type memoryRoot struct {
	fs     *MemoryFileSystem
	name   string
	base   string
	mu     sync.Mutex
	closed bool
}

func (r *memoryRoot) Name() string { return r.name }

func (r *memoryRoot) resolve(op, name string) (string, error) {
	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return "", &fs.PathError{Op: op, Path: name, Err: fs.ErrClosed}
	}
	if !fs.ValidPath(name) {
		return "", &fs.PathError{Op: op, Path: name, Err: fs.ErrInvalid}
	}
	return path.Join(r.base, name), nil
}

func (r *memoryRoot) ReadFile(name string, limit int64) ([]byte, error) {
	absPath, err := r.resolve("open", name)
	if err != nil {
		return nil, err
	}
	r.fs.mu.RLock()
	defer r.fs.mu.RUnlock()
	content, err := r.fs.readFile(absPath, name)
	if err != nil {
		return nil, err
	}
	if limit > 0 && int64(len(content)) > limit {
		content = content[:limit]
	}
	return content, nil
}

func (r *memoryRoot) Stat(name string) (FileInfo, error) {
	absPath, err := r.resolve("stat", name)
	if err != nil {
		return nil, err
	}
	r.fs.mu.RLock()
	defer r.fs.mu.RUnlock()
	e, exists := r.fs.entries[absPath]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return e.info, nil
}

func (r *memoryRoot) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true

	r.fs.mu.Lock()
	r.fs.openRoots--
	r.fs.mu.Unlock()
	return nil
}

var (
	_ FileSystemProvider = (*MemoryFileSystem)(nil)
	_ FileSystemProvider = (*OSFileSystem)(nil)
)
