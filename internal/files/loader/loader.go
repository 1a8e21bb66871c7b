package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/vvka-141/sunset/internal/files/filesystem"
	"github.com/vvka-141/sunset/internal/metadata"
)

// SkipReason explains why a unit could not be loaded.
type SkipReason string

const (
	SkipNotFound          SkipReason = "not-found"
	SkipUnreadable        SkipReason = "unreadable"
	SkipMalformed         SkipReason = "malformed"
	SkipUnsupportedFormat SkipReason = "unsupported-format"
	SkipNameMismatch      SkipReason = "name-mismatch"
	SkipNotLoadable       SkipReason = "not-loadable"
	SkipMissingDependency SkipReason = "missing-dependency"
)

// LoadResult is either a loaded unit (Unit != nil) or a skip with a reason.
type LoadResult struct {
	Name     string
	Artifact string
	Unit     *metadata.Unit
	Skip     SkipReason
	Detail   string
}

// Loaded reports whether the unit was loaded.
func (r LoadResult) Loaded() bool {
	return r.Unit != nil
}

// Loader resolves units beneath a single root. It is not safe for concurrent use;
// open one Loader per scan.
type Loader struct {
	root      filesystem.Root
	ambient   []string
	cache     map[string]LoadResult
	resolving map[string]bool
	closed    bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithAmbientPackages treats every required unit under one of the given package
// prefixes as resolvable without a descriptor, the way platform types are
// provided by the environment rather than by the compiled output.
func WithAmbientPackages(prefixes ...string) Option {
	return func(l *Loader) {
		for _, p := range prefixes {
			p = strings.TrimSuffix(strings.TrimSpace(p), ".")
			if p != "" {
				l.ambient = append(l.ambient, p)
			}
		}
	}
}

// Open opens a loader rooted at rootDir. The caller must Close it.
func Open(fsProvider filesystem.FileSystemProvider, rootDir string, opts ...Option) (*Loader, error) {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}

	root, err := fsProvider.OpenRoot(rootDir)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s for loading: %w", rootDir, err)
	}

	l := &Loader{
		root:      root,
		cache:     make(map[string]LoadResult),
		resolving: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Close releases the underlying root. It is safe to call more than once.
func (l *Loader) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	return l.root.Close()
}

// ArtifactPath returns the slash-separated descriptor path for a unit name and extension.
func ArtifactPath(qualifiedName, ext string) string {
	return strings.ReplaceAll(qualifiedName, ".", "/") + ext
}

// Load resolves qualifiedName to a descriptor and decodes it.
func (l *Loader) Load(qualifiedName string) LoadResult {
	if cached, ok := l.cache[qualifiedName]; ok {
		return cached
	}

	l.resolving[qualifiedName] = true
	result := l.load(qualifiedName)
	delete(l.resolving, qualifiedName)

	l.cache[qualifiedName] = result
	return result
}

func (l *Loader) load(name string) LoadResult {
	artifact, result, found := l.locate(name)
	if !found {
		return result
	}

	skip := func(reason SkipReason, format string, args ...interface{}) LoadResult {
		return LoadResult{Name: name, Artifact: artifact, Skip: reason, Detail: fmt.Sprintf(format, args...)}
	}

	content, err := l.root.ReadFile(artifact, metadata.MaxDescriptorSize+1)
	if err != nil {
		return skip(SkipUnreadable, "%v", err)
	}

	unit, err := metadata.DecodeAndValidate(content, artifact)
	if err != nil {
		if errors.Is(err, metadata.ErrUnsupportedFormat) {
			return skip(SkipUnsupportedFormat, "%v", err)
		}
		return skip(SkipMalformed, "%v", err)
	}

	if unit.Name != name {
		return skip(SkipNameMismatch, "descriptor declares %q", unit.Name)
	}

	if !unit.IsLoadable() {
		return skip(SkipNotLoadable, "descriptor is marked loadable: false")
	}

	for _, dep := range unit.Requires {
		if ok, why := l.resolves(dep); !ok {
			return skip(SkipMissingDependency, "requires %s: %s", dep, why)
		}
	}

	return LoadResult{Name: name, Artifact: artifact, Unit: unit}
}

// locate finds the first existing descriptor for name in DescriptorExtensions order.
func (l *Loader) locate(name string) (string, LoadResult, bool) {
	for _, ext := range metadata.DescriptorExtensions {
		artifact := ArtifactPath(name, ext)
		info, err := l.root.Stat(artifact)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return artifact, LoadResult{Name: name, Artifact: artifact, Skip: SkipUnreadable, Detail: err.Error()}, false
		}
		if info.IsDir() {
			continue
		}
		return artifact, LoadResult{}, true
	}
	return "", LoadResult{Name: name, Skip: SkipNotFound, Detail: "no descriptor under the output root"}, false
}

// resolves reports whether a required unit is available. Units already being
// resolved count as available so that dependency cycles terminate.
func (l *Loader) resolves(dep string) (bool, string) {
	for _, p := range l.ambient {
		if dep == p || strings.HasPrefix(dep, p+".") {
			return true, ""
		}
	}
	if l.resolving[dep] {
		return true, ""
	}

	r := l.Load(dep)
	if r.Loaded() || r.Skip == SkipNotLoadable {
		return true, ""
	}
	return false, string(r.Skip)
}
