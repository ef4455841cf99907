package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("Creates And Overwrites", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "01_singleton_pattern.ipynb")

		require.NoError(t, WriteFileAtomic(filename, []byte("first"), 0644))
		require.NoError(t, WriteFileAtomic(filename, []byte("second"), 0644))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, "second", string(got))
	})

	t.Run("Leaves No Staging Files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, WriteFileAtomic(filepath.Join(dir, "users.json"), []byte("{}"), 0644))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "users.json", entries[0].Name())
	})

	t.Run("Missing Directory", func(t *testing.T) {
		err := WriteFileAtomic(filepath.Join(t.TempDir(), "missing", "x.json"), []byte("{}"), 0644)
		assert.Error(t, err)
	})
}

func TestReplaceFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not preserved on windows")
	}
	filename := filepath.Join(t.TempDir(), "notebook.ipynb")
	require.NoError(t, os.WriteFile(filename, []byte("old"), 0600))

	require.NoError(t, ReplaceFile(filename, []byte("new")))

	assert.Equal(t, os.FileMode(0600), ModeOf(filename, 0644))
	got, _ := os.ReadFile(filename)
	assert.Equal(t, "new", string(got))

	assert.Equal(t, os.FileMode(0640), ModeOf(filepath.Join(t.TempDir(), "nope"), 0640))
}

func TestTouch(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "data_exists.marker")

	require.NoError(t, Touch(marker))
	assert.True(t, Exists(marker))
	assert.False(t, IsDir(marker))

	require.NoError(t, os.WriteFile(marker, []byte("keep"), 0644))
	require.NoError(t, Touch(marker))
	got, _ := os.ReadFile(marker)
	assert.Equal(t, "keep", string(got), "touch must not truncate")
}
