package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreSaveAndExists(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.Save("resumes", "resume-1.pdf", strings.NewReader("%PDF-1.4 test"))
	require.NoError(t, err)
	require.True(t, store.Exists(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "%PDF-1.4 test", string(content))
}

func TestFileStoreRemove(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.Save("logos", "logo.png", strings.NewReader("png"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(path))
	require.False(t, store.Exists(path))

	// Removing an already-missing file is not an error.
	require.NoError(t, store.Remove(path))
}

func TestFileStoreSanitizesFilename(t *testing.T) {
	base := t.TempDir()
	store, err := NewFileStore(base)
	require.NoError(t, err)

	path, err := store.Save("resumes", "../../escape.pdf", strings.NewReader("x"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(path, filepath.Join(base, "resumes")))
	require.Equal(t, "escape.pdf", filepath.Base(path))
}

func TestNewFileStoreRequiresPath(t *testing.T) {
	_, err := NewFileStore("  ")
	require.Error(t, err)
}
