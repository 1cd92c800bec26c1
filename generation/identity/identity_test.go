package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestForProjectGolden pins identifiers so they stay stable across releases and platforms.
func TestForProjectGolden(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "01002260-ca47-de85-9fc3-2123cd5b3110", ForProject("DemoCore"))
	assert.Equal(t, "8ae58e4a-257f-ba51-9621-1a74a70fcda2", NewAllocator("Demo").ForAssembly("Game"))
}

// TestForProjectDeterministic verifies repeated derivations agree and distinct names differ.
func TestForProjectDeterministic(t *testing.T) {
	t.Parallel()

	allocator := NewAllocator("Demo")
	first := allocator.ForAssembly("Core")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, allocator.ForAssembly("Core"))
	}
	assert.NotEqual(t, first, allocator.ForAssembly("Core.Editor"))
	assert.NotEqual(t, first, NewAllocator("Other").ForAssembly("Core"))

	parsed, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, first, parsed.String())
}

// TestForSolutionEntry verifies the project type marker is constant.
func TestForSolutionEntry(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "FAE04EC0-301F-11D3-BF4B-00C04F79EFBC", ForSolutionEntry("Demo", "cs"))
	assert.Equal(t, ForSolutionEntry("Demo", "cs"), ForSolutionEntry("Other", "NA"))
}
