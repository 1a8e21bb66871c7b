package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/vvka-141/sunset/internal/files/filesystem"
	"github.com/vvka-141/sunset/internal/files/loader"
	"github.com/vvka-141/sunset/internal/metadata"
	"github.com/vvka-141/sunset/pkg/sunset"
)

// Options configures a Scanner.
type Options struct {
	// MarkerType is the fully-qualified marker type name to check.
	// Empty selects sunset.DefaultMarkerType.
	MarkerType string

	// AmbientPackages lists package prefixes whose units are provided by the
	// environment and need no descriptor to satisfy "requires".
	AmbientPackages []string
}

// Scanner discovers unit descriptors and checks their markers.
// Scanner holds no per-scan state and is safe for concurrent use as long as
// the filesystem provider and logger are.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
	extractor  *metadata.Extractor
	logger     sunset.Logger
	ambient    []string
}

// NewScanner creates a scanner over the OS filesystem with default options.
// Panics if logger is nil.
func NewScanner(logger sunset.Logger) *Scanner {
	return NewScannerWithFS(filesystem.NewOSFileSystem(), logger, Options{})
}

// NewScannerWithFS creates a scanner with a custom filesystem provider and options.
// Panics if fsProvider or logger is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider, logger sunset.Logger, opts Options) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Scanner{
		fsProvider: fsProvider,
		extractor:  metadata.NewExtractor(opts.MarkerType, logger),
		logger:     logger,
		ambient:    opts.AmbientPackages,
	}
}

// Scan returns the violations under rootDir for currentVersion, in discovery order.
func (s *Scanner) Scan(rootDir, currentVersion string) ([]sunset.Violation, error) {
	report, err := s.ScanDetailed(rootDir, currentVersion)
	if err != nil {
		return nil, err
	}
	return report.Violations, nil
}

// ScanDetailed scans rootDir and returns every marker found, the violations
// among them, and the artifacts that were skipped.
//
// Returns an error wrapping sunset.ErrScanSetup only when rootDir exists but
// cannot be opened or listed.
func (s *Scanner) ScanDetailed(rootDir, currentVersion string) (sunset.ScanReport, error) {
	report := sunset.ScanReport{
		Root:           rootDir,
		CurrentVersion: currentVersion,
		Markers:        []sunset.MarkerRecord{},
		Violations:     []sunset.Violation{},
	}

	info, err := s.fsProvider.Stat(rootDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Verbose("Output directory %s does not exist, nothing to scan", rootDir)
			return report, nil
		}
		return report, fmt.Errorf("%w: %v", sunset.ErrScanSetup, err)
	}
	if !info.IsDir() {
		return report, fmt.Errorf("%w: %s is not a directory", sunset.ErrScanSetup, rootDir)
	}

	l, err := loader.Open(s.fsProvider, rootDir, loader.WithAmbientPackages(s.ambient...))
	if err != nil {
		return report, fmt.Errorf("%w: %v", sunset.ErrScanSetup, err)
	}
	defer func() {
		if cerr := l.Close(); cerr != nil {
			s.logger.Verbose("Failed to release loader for %s: %v", rootDir, cerr)
		}
	}()

	w := &walk{
		scanner: s,
		loader:  l,
		version: currentVersion,
		report:  &report,
		seen:    make(map[string]string),
	}
	if err := w.directory(rootDir, "", ""); err != nil {
		return report, err
	}

	s.logger.Verbose("Scanned %s: %d unit(s) loaded, %d skipped, %d marker(s), %d violation(s)",
		rootDir, report.UnitsLoaded, len(report.Skipped), len(report.Markers), len(report.Violations))
	return report, nil
}

// walk carries the state of one scan.
type walk struct {
	scanner *Scanner
	loader  *loader.Loader
	version string
	report  *sunset.ScanReport
	seen    map[string]string // qualified name -> first artifact
}

// directory visits dir, whose dotted package prefix is prefix and whose path
// relative to the root is rel. Subdirectories come before files.
func (w *walk) directory(dir, prefix, rel string) error {
	entries, err := w.scanner.fsProvider.ReadDir(dir)
	if err != nil {
		if rel == "" {
			return fmt.Errorf("%w: %v", sunset.ErrScanSetup, err)
		}
		w.scanner.logger.Warn("Cannot list %s, skipping it: %v", dir, err)
		return nil
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if err := w.directory(path.Join(dir, e.Name()), qualify(prefix, e.Name()), path.Join(rel, e.Name())); err != nil {
			return err
		}
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		w.file(e.Name(), prefix, path.Join(rel, e.Name()))
	}
	return nil
}

func (w *walk) file(fileName, prefix, rel string) {
	base, ok := metadata.DescriptorBase(fileName)
	if !ok {
		return
	}
	if strings.Contains(base, sunset.NestedUnitSeparator) {
		w.scanner.logger.Verbose("Skipping nested unit %s", rel)
		return
	}

	name := qualify(prefix, base)
	if first, dup := w.seen[name]; dup {
		w.scanner.logger.Verbose("Skipping %s: unit %s already discovered at %s", rel, name, first)
		return
	}
	w.seen[name] = rel

	result := w.loader.Load(name)
	if !result.Loaded() {
		w.scanner.logger.Verbose("Skipping %s (%s): %s", name, result.Skip, result.Detail)
		w.report.Skipped = append(w.report.Skipped, sunset.SkippedArtifact{
			Artifact: rel,
			Unit:     name,
			Reason:   string(result.Skip),
			Detail:   result.Detail,
		})
		return
	}

	w.report.UnitsLoaded++
	w.check(result.Unit, result.Artifact)
}

// check applies the extractor to the unit and then to its declared routines,
// fields and constructors.
func (w *walk) check(u *metadata.Unit, artifact string) {
	w.apply(u.Markers, metadata.Element{Name: u.Name, Kind: sunset.KindUnit, Artifact: artifact})

	for _, m := range u.Routines {
		w.apply(m.Markers, metadata.Element{Name: metadata.RoutineName(u.Name, m.Name), Kind: sunset.KindRoutine, Artifact: artifact})
	}
	for _, m := range u.Fields {
		w.apply(m.Markers, metadata.Element{Name: metadata.FieldName(u.Name, m.Name), Kind: sunset.KindField, Artifact: artifact})
	}
	for _, m := range u.Constructors {
		w.apply(m.Markers, metadata.Element{Name: metadata.ConstructorName(u.Name), Kind: sunset.KindConstructor, Artifact: artifact})
	}
}

func (w *walk) apply(markers []metadata.Marker, element metadata.Element) {
	if len(markers) == 0 {
		return
	}
	for _, r := range w.scanner.extractor.Evaluate(markers, element, w.version) {
		w.report.Markers = append(w.report.Markers, r)
		if r.Due {
			w.report.Violations = append(w.report.Violations, metadata.ToViolation(r))
		}
	}
}

// qualify appends segment to a dotted prefix.
func qualify(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + "." + segment
}

// Verify Scanner implements the interface at compile time
var _ sunset.Scanner = (*Scanner)(nil)
