package generation

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWriteFileIfChanged verifies the gate creates missing directories, skips identical content without touching
// the modification time, and rewrites differing content.
func TestWriteFileIfChanged(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Library", "gen", "Demo.sln")

	written, err := writeFileIfChanged(path, "first", logging.GlobalLogger)
	require.NoError(t, err)
	assert.True(t, written)

	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, old, old))

	written, err = writeFileIfChanged(path, "first", logging.GlobalLogger)
	require.NoError(t, err)
	assert.False(t, written)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old))

	written, err = writeFileIfChanged(path, "second", logging.GlobalLogger)
	require.NoError(t, err)
	assert.True(t, written)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))
}

// TestWriteFileIfChangedReadFailure verifies a failure to read the existing file does not stop the write attempt.
func TestWriteFileIfChangedReadFailure(t *testing.T) {
	t.Parallel()

	// A directory cannot be read as a file, nor replaced by one
	path := filepath.Join(t.TempDir(), "Demo.sln")
	require.NoError(t, os.MkdirAll(filepath.Join(path, "child"), 0755))

	written, err := writeFileIfChanged(path, "content", logging.GlobalLogger)
	assert.Error(t, err)
	assert.False(t, written)
}
