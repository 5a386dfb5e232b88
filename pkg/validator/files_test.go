package validator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollectSQLFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_init.sql"), []byte("SELECT 1;"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "archive", "old.sql"), []byte("SELECT 1;"), 0o644))

	t.Run("directory expands to immediate sql files", func(t *testing.T) {
		files, bad := CollectSQLFiles([]string{dir})
		require.Empty(t, bad)
		require.Equal(t, []string{filepath.Join(dir, "001_init.sql")}, files)
	})

	t.Run("explicit file taken as-is", func(t *testing.T) {
		txt := filepath.Join(dir, "notes.txt")
		files, bad := CollectSQLFiles([]string{txt})
		require.Empty(t, bad)
		require.Equal(t, []string{txt}, files)
	})

	t.Run("missing path reported without aborting", func(t *testing.T) {
		files, bad := CollectSQLFiles([]string{filepath.Join(dir, "gone.sql"), dir})
		require.Len(t, bad, 1)
		require.Equal(t, filepath.Join(dir, "gone.sql"), bad[0].Path)
		require.Len(t, files, 1)
	})
}
