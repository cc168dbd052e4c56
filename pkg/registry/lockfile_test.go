package registry

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadLockfileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("hello"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "b.md"), []byte("world"), 0o644))

	require.NoError(t, writeLockfile(dir, "acme/bundle", "1.0.0", []string{"a.md", "nested/b.md"}))

	lf, err := readLockfile(dir)
	require.NoError(t, err)
	require.NotNil(t, lf)
	assert.Equal(t, "acme/bundle", lf.BundleID)
	assert.Equal(t, "1.0.0", lf.Version)
	assert.Len(t, lf.Files, 2)
}

func TestReadLockfileMissingIsNotAnError(t *testing.T) {
	lf, err := readLockfile(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, lf)
}

func TestDetectModifiedFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("world"), 0o644))
	require.NoError(t, writeLockfile(dir, "acme/bundle", "1.0.0", []string{"a.md", "b.md"}))

	// modify a.md, delete b.md, add c.md
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("modified"), 0o644))
	require.NoError(t, os.Remove(filepath.Join(dir, "b.md")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.md"), []byte("new"), 0o644))

	lf, err := readLockfile(dir)
	require.NoError(t, err)
	require.NotNil(t, lf)

	diffs, err := detectModifiedFiles(dir, lf)
	require.NoError(t, err)

	byPath := map[string]string{}
	for _, d := range diffs {
		byPath[d.Path] = d.Status
	}
	assert.Equal(t, "modified", byPath["a.md"])
	assert.Equal(t, "missing", byPath["b.md"])
	assert.Equal(t, "new", byPath["c.md"])
}

func TestDetectModifiedFilesNilLockfile(t *testing.T) {
	diffs, err := detectModifiedFiles(t.TempDir(), nil)
	require.NoError(t, err)
	assert.Nil(t, diffs)
}

func TestDetectModifiedFilesNoChanges(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("hello"), 0o644))
	require.NoError(t, writeLockfile(dir, "acme/bundle", "1.0.0", []string{"a.md"}))

	lf, err := readLockfile(dir)
	require.NoError(t, err)

	diffs, err := detectModifiedFiles(dir, lf)
	require.NoError(t, err)
	sort.Slice(diffs, func(i, j int) bool { return diffs[i].Path < diffs[j].Path })
	assert.Empty(t, diffs)
}
