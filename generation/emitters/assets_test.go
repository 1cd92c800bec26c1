package emitters

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/utils/pathutils"
	"github.com/stretchr/testify/assert"
)

// fakeAssetFilter treats Packages/com.hidden as internalized and .uss/.shader files as non-source assets.
type fakeAssetFilter struct{}

func (fakeAssetFilter) IsInternalizedPackagePath(path string) bool {
	return strings.HasPrefix(path, "Packages/com.hidden/")
}

func (fakeAssetFilter) IsNonSourceAsset(path string) bool {
	return strings.HasSuffix(path, ".uss") || strings.HasSuffix(path, ".shader")
}

// TestGenerateAssetProjectParts verifies non-source assets are grouped under the assembly that owns them.
func TestGenerateAssetProjectParts(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	paths := pathutils.NewPathNormalizer(root)
	owners := map[string]string{
		"Assets/Core/Style.uss":          "Core.dll",
		"Assets/Core/Lit.shader":         "Core.dll",
		"Assets/Game/Menu.uss":           "Game.dll",
		"Packages/com.hidden/Hidden.uss": "Hidden.dll",
		"Assets/Core/Code.cs":            "Core.dll",
		"Assets/Orphan.uss":              "",
	}
	assets := []string{
		"Assets/Core/Style.uss",
		"Assets/Core/Code.cs",
		"Assets/Game/Menu.uss",
		"Packages/com.hidden/Hidden.uss",
		"Assets/Orphan.uss",
		"Assets/Core/Lit.shader",
	}

	parts := GenerateAssetProjectParts(assets, fakeAssetFilter{}, func(path string) string {
		return owners[path]
	}, paths, filepath.Join(root, "Library"))

	assert.Equal(t, map[string]string{
		"Core": `     <None Include="` + filepath.Join(root, "Assets", "Core", "Style.uss") + `" />` + WindowsNewline +
			`     <None Include="` + filepath.Join(root, "Assets", "Core", "Lit.shader") + `" />` + WindowsNewline,
		"Game": `     <None Include="` + filepath.Join(root, "Assets", "Game", "Menu.uss") + `" />` + WindowsNewline,
	}, parts)
}

// TestGenerateAssetProjectPartsEmpty verifies no assets yield an empty mapping.
func TestGenerateAssetProjectPartsEmpty(t *testing.T) {
	t.Parallel()

	parts := GenerateAssetProjectParts(nil, fakeAssetFilter{}, func(string) string { return "Core.dll" }, pathutils.NewPathNormalizer("/"), "/Library")
	assert.Empty(t, parts)
}
