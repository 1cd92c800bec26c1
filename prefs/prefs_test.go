package prefs

import (
	"path/filepath"
	"testing"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestStore opens a store in a temporary directory and closes it when the test ends.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", DefaultFileName))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// TestStoreDefaults verifies missing keys yield their defaults.
func TestStoreDefaults(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	flags, err := store.ProjectGenerationFlag()
	require.NoError(t, err)
	assert.Equal(t, config.FlagNone, flags)

	value, err := store.GetInt("missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, value)

	found, err := store.HasKey(ProjectGenerationFlagKey)
	require.NoError(t, err)
	assert.False(t, found)
}

// TestStoreRoundTrip verifies values survive closing and reopening the database.
func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultFileName)
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.SetProjectGenerationFlag(config.FlagGit|config.FlagOmniSharp))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	flags, err := store.ProjectGenerationFlag()
	require.NoError(t, err)
	assert.Equal(t, config.FlagGit|config.FlagOmniSharp, flags)

	assert.Equal(t, path, store.Path())
}

// TestStoreToggleAndDelete verifies toggling flips one bit and deleting restores the default.
func TestStoreToggleAndDelete(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	flags, err := store.ToggleProjectGenerationFlag(config.FlagEmbedded)
	require.NoError(t, err)
	assert.Equal(t, config.FlagEmbedded, flags)

	flags, err = store.ToggleProjectGenerationFlag(config.FlagLocal)
	require.NoError(t, err)
	assert.Equal(t, config.FlagEmbedded|config.FlagLocal, flags)

	flags, err = store.ToggleProjectGenerationFlag(config.FlagEmbedded)
	require.NoError(t, err)
	assert.Equal(t, config.FlagLocal, flags)

	require.NoError(t, store.Delete(ProjectGenerationFlagKey))
	flags, err = store.ProjectGenerationFlag()
	require.NoError(t, err)
	assert.Equal(t, config.FlagNone, flags)
}

// TestStoreTypeMismatch verifies decoding a value into the wrong type is reported.
func TestStoreTypeMismatch(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	require.NoError(t, store.Set("key", "text"))
	_, err := store.GetInt("key", 0)
	assert.Error(t, err)
}
