package filesystem

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFileSystem_MissingRoot(t *testing.T) {
	mfs := NewMemoryFileSystem("/build/classes")

	_, err := mfs.Stat("/build/classes")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemoryFileSystem_ReadDirSorted(t *testing.T) {
	mfs := NewMemoryFileSystem("/out")
	mfs.AddFile("b.unit.yaml", "b")
	mfs.AddFile("a.unit.yaml", "a")
	mfs.AddFile("com/acme/Widget.unit.yaml", "w")
	mfs.AddDir("empty")

	entries, err := mfs.ReadDir("/out")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"a.unit.yaml", "b.unit.yaml", "com", "empty"}, names)

	nested, err := mfs.ReadDir("com")
	require.NoError(t, err)
	require.Len(t, nested, 1)
	assert.True(t, nested[0].IsDir())
	assert.Equal(t, "acme", nested[0].Name())
}

func TestMemoryFileSystem_ReadDir_NotADirectory(t *testing.T) {
	mfs := NewMemoryFileSystem("/out")
	mfs.AddFile("a.txt", "x")

	_, err := mfs.ReadDir("a.txt")
	assert.ErrorIs(t, err, fs.ErrInvalid)
}

func TestMemoryFileSystem_ReadFile(t *testing.T) {
	mfs := NewMemoryFileSystem("/out")
	mfs.AddFile("root.unit.yaml", "name: a")

	content, err := mfs.ReadFile("/out/root.unit.yaml")
	require.NoError(t, err)
	assert.Equal(t, "name: a", string(content))

	_, err = mfs.ReadFile("missing.unit.yaml")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMemoryFileSystem_FailRead(t *testing.T) {
	mfs := NewMemoryFileSystem("/out")
	mfs.AddFile("a.unit.yaml", "x")
	boom := errors.New("disk on fire")
	mfs.FailRead("a.unit.yaml", boom)

	_, err := mfs.ReadFile("a.unit.yaml")
	assert.ErrorIs(t, err, boom)
}

func TestMemoryRoot_Lifecycle(t *testing.T) {
	mfs := NewMemoryFileSystem("/out")
	mfs.AddFile("com/acme/Widget.unit.yaml", "w")

	root, err := mfs.OpenRoot("/out")
	require.NoError(t, err)
	assert.Equal(t, 1, mfs.OpenRootCount())
	assert.Equal(t, "/out", root.Name())

	content, err := root.ReadFile("com/acme/Widget.unit.yaml", 0)
	require.NoError(t, err)
	assert.Equal(t, "w", string(content))

	info, err := root.Stat("com/acme")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	require.NoError(t, root.Close())
	require.NoError(t, root.Close(), "Close is idempotent")
	assert.Equal(t, 0, mfs.OpenRootCount())
	assert.Equal(t, 1, mfs.RootsOpened())

	_, err = root.ReadFile("com/acme/Widget.unit.yaml", 0)
	assert.ErrorIs(t, err, fs.ErrClosed)
}

func TestMemoryRoot_ReadFileLimit(t *testing.T) {
	mfs := NewMemoryFileSystem("/out")
	mfs.AddFile("a.unit.yaml", "0123456789")

	root, err := mfs.OpenRoot("/out")
	require.NoError(t, err)
	defer root.Close()

	content, err := root.ReadFile("a.unit.yaml", 4)
	require.NoError(t, err)
	assert.Equal(t, "0123", string(content))

	content, err = root.ReadFile("a.unit.yaml", 0)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(content))
}

func TestMemoryRoot_RejectsEscapingNames(t *testing.T) {
	mfs := NewMemoryFileSystem("/out")
	mfs.AddFile("a.unit.yaml", "x")
	mfs.AddFile("/secret.txt", "s")

	root, err := mfs.OpenRoot("/out")
	require.NoError(t, err)
	defer root.Close()

	_, err = root.ReadFile("../secret.txt", 0)
	assert.ErrorIs(t, err, fs.ErrInvalid)
	_, err = root.ReadFile("/secret.txt", 0)
	assert.ErrorIs(t, err, fs.ErrInvalid)
}

func TestMemoryFileSystem_OpenRootErrors(t *testing.T) {
	mfs := NewMemoryFileSystem("/out")

	_, err := mfs.OpenRoot("/out")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	mfs.AddFile("a.unit.yaml", "x")
	_, err = mfs.OpenRoot("a.unit.yaml")
	assert.ErrorIs(t, err, fs.ErrInvalid)

	injected := errors.New("permission denied")
	mfs.FailOpenRoot(injected)
	_, err = mfs.OpenRoot("/out")
	assert.ErrorIs(t, err, injected)
	assert.Equal(t, 0, mfs.RootsOpened())
}
