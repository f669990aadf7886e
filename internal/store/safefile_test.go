package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeWrite_ReplacesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")

	require.NoError(t, SafeWrite(path, []byte("one"), 0644))
	require.NoError(t, SafeWrite(path, []byte("two"), 0644))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestSafeWrite_MissingDirectory(t *testing.T) {
	err := SafeWrite(filepath.Join(t.TempDir(), "missing", "file.txt"), []byte("x"), 0644)
	assert.Error(t, err)
}

func TestSafeWriteIn_TempFileStaysInTmpDir(t *testing.T) {
	dir := t.TempDir()
	tmpDir := filepath.Join(dir, ".meta")
	require.NoError(t, os.Mkdir(tmpDir, 0755))
	path := filepath.Join(dir, "file.txt")

	require.NoError(t, SafeWriteIn(tmpDir, path, []byte("data"), 0600))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	leftovers, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}
