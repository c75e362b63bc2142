package fs

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHomeDir(t *testing.T) {
	t.Setenv("HOME", "/tmp")
	dir, err := New().UserHomeDir()
	assert.NoError(t, err)
	assert.NotEmpty(t, dir)
}

func TestGetwd(t *testing.T) {
	dir, err := New().Getwd()
	assert.NoError(t, err)
	assert.NotEmpty(t, dir)
}

func TestMkdirAll(t *testing.T) {
	dir := t.TempDir()
	fs := New()
	err := fs.MkdirAll(path.Join(dir, "foo/bar"), 0o700)
	assert.NoError(t, err)

	exists, err := fs.DirExists(path.Join(dir, "foo/bar"))
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestDirExists(t *testing.T) {
	t.Run("exists", func(t *testing.T) {
		dir := t.TempDir()
		result, err := New().DirExists(dir)
		assert.NoError(t, err)
		assert.True(t, result)
	})

	t.Run("does not exist", func(t *testing.T) {
		dir := t.TempDir()
		result, err := New().DirExists(dir + "foo")
		assert.NoError(t, err)
		assert.False(t, result)
	})

	t.Run("file", func(t *testing.T) {
		file := path.Join(t.TempDir(), "f")
		require.NoError(t, os.WriteFile(file, nil, 0o600))
		result, err := New().DirExists(file)
		assert.NoError(t, err)
		assert.False(t, result)
	})
}

func TestFileExists(t *testing.T) {
	t.Run("exists", func(t *testing.T) {
		file := path.Join(t.TempDir(), "f")
		require.NoError(t, os.WriteFile(file, nil, 0o600))
		result, err := New().FileExists(file)
		assert.NoError(t, err)
		assert.True(t, result)
	})

	t.Run("directory", func(t *testing.T) {
		result, err := New().FileExists(t.TempDir())
		assert.NoError(t, err)
		assert.False(t, result)
	})

	t.Run("does not exist", func(t *testing.T) {
		result, err := New().FileExists(path.Join(t.TempDir(), "missing"))
		assert.NoError(t, err)
		assert.False(t, result)
	})
}

func TestWriteReadRenameRemove(t *testing.T) {
	dir := t.TempDir()
	fs := New()

	src := path.Join(dir, "src")
	dst := path.Join(dir, "dst")
	require.NoError(t, fs.WriteFile(src, []byte("data"), 0o644))
	require.NoError(t, fs.Chmod(src, 0o600))
	require.NoError(t, fs.Rename(src, dst))

	data, err := fs.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	info, err := fs.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := fs.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, fs.Remove(dst))
	_, err = fs.Stat(dst)
	assert.True(t, os.IsNotExist(err))
}

func TestTempFile(t *testing.T) {
	f, err := New().TempFile(t.TempDir(), "tmp-*")
	require.NoError(t, err)
	assert.NoError(t, f.Close())
}
