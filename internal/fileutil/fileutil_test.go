package fileutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("creates new file with perm", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "new.md")
		require.NoError(t, WriteFileAtomic(path, []byte("hello"), OwnerReadWrite))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))

		if runtime.GOOS != "windows" {
			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, OwnerReadWrite, info.Mode().Perm())
		}
	})

	t.Run("replaces existing file and keeps its mode", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "existing.md")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o640))

		require.NoError(t, WriteFileAtomic(path, []byte("new"), ReadableByAll))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))

		if runtime.GOOS != "windows" {
			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
		}
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "doc.md")
		require.NoError(t, WriteFileAtomic(path, []byte("content"), ReadableByAll))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "doc.md", entries[0].Name())
	})

	t.Run("rejects directory target", func(t *testing.T) {
		dir := t.TempDir()
		err := WriteFileAtomic(dir, []byte("x"), ReadableByAll)
		assert.Error(t, err)
	})

	t.Run("missing parent directory fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "doc.md")
		err := WriteFileAtomic(path, []byte("x"), ReadableByAll)
		assert.Error(t, err)
	})
}

func TestRejectSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.md")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o600))

	assert.NoError(t, RejectSymlink(target))
	assert.NoError(t, RejectSymlink(filepath.Join(dir, "absent.md")))

	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}
	link := filepath.Join(dir, "link.md")
	require.NoError(t, os.Symlink(target, link))
	assert.Error(t, RejectSymlink(link))
}
