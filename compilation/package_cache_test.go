package compilation

import (
	"testing"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingHost wraps a SnapshotHost and counts package lookups.
type countingHost struct {
	*SnapshotHost
	lookups []string
}

func (h *countingHost) FindPackageForAssetPath(assetPath string) *types.PackageInfo {
	h.lookups = append(h.lookups, assetPath)
	return h.SnapshotHost.FindPackageForAssetPath(assetPath)
}

// TestResolvePotentialParentPackageAssetPath covers the package root derivation.
func TestResolvePotentialParentPackageAssetPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		root string
		ok   bool
	}{
		{"Packages/com.demo.tools/Runtime/A.cs", "packages/com.demo.tools", true},
		{"PACKAGES/Com.Demo.Tools", "packages/com.demo.tools", true},
		{"packages/", "packages/", true},
		{"Assets/Packages/x.cs", "", false},
		{"Pack", "", false},
	}
	for _, test := range tests {
		t.Run(test.path, func(t *testing.T) {
			root, ok := ResolvePotentialParentPackageAssetPath(test.path)
			assert.Equal(t, test.ok, ok)
			assert.Equal(t, test.root, root)
		})
	}
}

// TestPackageCache verifies lookups are shared per package root, misses are cached and Reset clears them.
func TestPackageCache(t *testing.T) {
	t.Parallel()

	host := &countingHost{SnapshotHost: newTestSnapshotHost(t)}
	cache := NewPackageCache(host)

	first := cache.FindForAssetPath("Packages/com.demo.tools/Runtime/A.cs")
	second := cache.FindForAssetPath("Packages/com.demo.tools/Editor/B.cs")
	require.NotNil(t, first)
	assert.Same(t, first, second)

	assert.Nil(t, cache.FindForAssetPath("Packages/com.unknown/A.cs"))
	assert.Nil(t, cache.FindForAssetPath("Packages/com.unknown/B.cs"))
	assert.Nil(t, cache.FindForAssetPath("Assets/A.cs"))

	assert.Equal(t, []string{"packages/com.demo.tools", "packages/com.unknown"}, host.lookups)
	assert.Equal(t, 2, cache.Len())

	cache.Reset()
	assert.Zero(t, cache.Len())
	cache.FindForAssetPath("Packages/com.demo.tools/Runtime/A.cs")
	assert.Len(t, host.lookups, 3)
}
