package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	ws := New(t.TempDir())
	require.NoError(t, ws.WriteFile("f.txt", []byte("content")))
	assert.True(t, ws.Exists("f.txt"))

	got, err := ws.ReadFile("f.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), got)
}

func TestReadMissingFileReturnsErrNotExist(t *testing.T) {
	ws := New(t.TempDir())
	_, err := ws.ReadFile("absent.txt")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDeleteFileRefusesDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	ws := New(dir)
	err := ws.DeleteFile("sub")
	assert.Error(t, err)
}

func TestDeleteMissingFileIsNoOp(t *testing.T) {
	ws := New(t.TempDir())
	assert.NoError(t, ws.DeleteFile("never-existed.txt"))
}

func TestPlainFilesSkipsDirectoriesAndIgnored(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("y"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".gitlet"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	ws := New(dir, ".gitlet")
	files, err := ws.PlainFiles()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, files)
}
