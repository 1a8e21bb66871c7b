package loader

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/sunset/internal/files/filesystem"
	"github.com/vvka-141/sunset/internal/metadata"
)

func descriptor(name string, extra string) string {
	return "format: 1\nname: " + name + "\n" + extra
}

func openTestLoader(t *testing.T, mfs *filesystem.MemoryFileSystem, opts ...Option) *Loader {
	t.Helper()
	l, err := Open(mfs, "/out", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestOpen_NilProvider(t *testing.T) {
	assert.Panics(t, func() { Open(nil, "/out") })
}

func TestOpen_MissingRoot(t *testing.T) {
	_, err := Open(filesystem.NewMemoryFileSystem("/out"), "/out")
	require.Error(t, err)
}

func TestLoad_Success(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/out")
	mfs.AddFile("com/acme/Widget.unit.yaml", descriptor("com.acme.Widget", "routines:\n  - name: render\n"))

	l := openTestLoader(t, mfs)
	r := l.Load("com.acme.Widget")

	require.True(t, r.Loaded(), "skip=%s detail=%s", r.Skip, r.Detail)
	assert.Equal(t, "com/acme/Widget.unit.yaml", r.Artifact)
	assert.Equal(t, "render", r.Unit.Routines[0].Name)
}

func TestLoad_PrefersYAMLOverJSON(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/out")
	mfs.AddFile("a/B.unit.json", `{"format": 1, "name": "a.B"}`)
	mfs.AddFile("a/B.unit.yaml", descriptor("a.B", ""))

	r := openTestLoader(t, mfs).Load("a.B")
	require.True(t, r.Loaded())
	assert.Equal(t, "a/B.unit.yaml", r.Artifact)
}

func TestLoad_SkipReasons(t *testing.T) {
	readErr := errors.New("input/output error")

	tests := []struct {
		name   string
		setup  func(mfs *filesystem.MemoryFileSystem)
		unit   string
		reason SkipReason
	}{
		{
			name:   "not found",
			setup:  func(mfs *filesystem.MemoryFileSystem) { mfs.AddDir("a") },
			unit:   "a.Missing",
			reason: SkipNotFound,
		},
		{
			name: "unreadable",
			setup: func(mfs *filesystem.MemoryFileSystem) {
				mfs.AddFile("a/B.unit.yaml", descriptor("a.B", ""))
				mfs.FailRead("a/B.unit.yaml", readErr)
			},
			unit:   "a.B",
			reason: SkipUnreadable,
		},
		{
			name:   "malformed yaml",
			setup:  func(mfs *filesystem.MemoryFileSystem) { mfs.AddFile("a/B.unit.yaml", "format: 1\nname: [unclosed\n") },
			unit:   "a.B",
			reason: SkipMalformed,
		},
		{
			name: "oversized descriptor",
			setup: func(mfs *filesystem.MemoryFileSystem) {
				mfs.AddFile("a/B.unit.yaml", descriptor("a.B", strings.Repeat("#", metadata.MaxDescriptorSize)))
			},
			unit:   "a.B",
			reason: SkipMalformed,
		},
		{
			name:   "invalid descriptor",
			setup:  func(mfs *filesystem.MemoryFileSystem) { mfs.AddFile("a/B.unit.yaml", "format: 1\n") },
			unit:   "a.B",
			reason: SkipMalformed,
		},
		{
			name:   "unsupported format",
			setup:  func(mfs *filesystem.MemoryFileSystem) { mfs.AddFile("a/B.unit.yaml", "format: 7\nname: a.B\n") },
			unit:   "a.B",
			reason: SkipUnsupportedFormat,
		},
		{
			name:   "name mismatch",
			setup:  func(mfs *filesystem.MemoryFileSystem) { mfs.AddFile("a/B.unit.yaml", descriptor("other.B", "")) },
			unit:   "a.B",
			reason: SkipNameMismatch,
		},
		{
			name:   "not loadable",
			setup:  func(mfs *filesystem.MemoryFileSystem) { mfs.AddFile("a/B.unit.yaml", descriptor("a.B", "loadable: false\n")) },
			unit:   "a.B",
			reason: SkipNotLoadable,
		},
		{
			name: "missing dependency",
			setup: func(mfs *filesystem.MemoryFileSystem) {
				mfs.AddFile("a/B.unit.yaml", descriptor("a.B", "requires: [a.Gone]\n"))
			},
			unit:   "a.B",
			reason: SkipMissingDependency,
		},
		{
			name: "broken dependency",
			setup: func(mfs *filesystem.MemoryFileSystem) {
				mfs.AddFile("a/B.unit.yaml", descriptor("a.B", "requires: [a.C]\n"))
				mfs.AddFile("a/C.unit.yaml", "not: [valid\n")
			},
			unit:   "a.B",
			reason: SkipMissingDependency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mfs := filesystem.NewMemoryFileSystem("/out")
			tt.setup(mfs)

			r := openTestLoader(t, mfs).Load(tt.unit)
			assert.False(t, r.Loaded())
			assert.Nil(t, r.Unit)
			assert.Equal(t, tt.reason, r.Skip, "detail: %s", r.Detail)
			assert.NotEmpty(t, r.Detail)
		})
	}
}

func TestLoad_DependencyResolution(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/out")
	mfs.AddFile("a/Base.unit.yaml", descriptor("a.Base", "loadable: false\n"))
	mfs.AddFile("a/Impl.unit.yaml", descriptor("a.Impl", "requires: [a.Base, a.Peer, java.lang.Object]\n"))
	mfs.AddFile("a/Peer.unit.yaml", descriptor("a.Peer", "requires: [a.Impl]\n"))

	l := openTestLoader(t, mfs, WithAmbientPackages("java.", " kotlin "))

	r := l.Load("a.Impl")
	require.True(t, r.Loaded(), "skip=%s detail=%s", r.Skip, r.Detail)

	peer := l.Load("a.Peer")
	assert.True(t, peer.Loaded(), "cyclic requires must resolve")
}

func TestLoad_AmbientNotConfigured(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/out")
	mfs.AddFile("a/Impl.unit.yaml", descriptor("a.Impl", "requires: [java.lang.Object]\n"))

	r := openTestLoader(t, mfs).Load("a.Impl")
	assert.Equal(t, SkipMissingDependency, r.Skip)
	assert.Contains(t, r.Detail, "java.lang.Object")
}

func TestLoad_Memoized(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/out")
	mfs.AddFile("a/B.unit.yaml", descriptor("a.B", ""))

	l := openTestLoader(t, mfs)
	first := l.Load("a.B")
	require.True(t, first.Loaded())

	mfs.FailRead("a/B.unit.yaml", errors.New("gone"))
	second := l.Load("a.B")
	assert.True(t, second.Loaded(), "second load should come from the cache")
	assert.Same(t, first.Unit, second.Unit)
}

func TestClose_ReleasesRoot(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/out")
	mfs.AddFile("a/B.unit.yaml", descriptor("a.B", ""))

	l, err := Open(mfs, "/out")
	require.NoError(t, err)
	assert.Equal(t, 1, mfs.OpenRootCount())

	require.NoError(t, l.Close())
	require.NoError(t, l.Close())
	assert.Equal(t, 0, mfs.OpenRootCount())

	r := l.Load("a.B")
	assert.Equal(t, SkipUnreadable, r.Skip)
}

func TestArtifactPath(t *testing.T) {
	assert.Equal(t, "com/acme/Widget.unit.yaml", ArtifactPath("com.acme.Widget", ".unit.yaml"))
	assert.Equal(t, "Root.unit.json", ArtifactPath("Root", ".unit.json"))
}
