package emitters

import (
	"strings"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/utils"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/utils/pathutils"
)

// AssetFilter decides which asset paths become non-source items.
type AssetFilter interface {
	// IsInternalizedPackagePath returns true if the path belongs to an excluded package.
	IsInternalizedPackagePath(path string) bool

	// IsNonSourceAsset returns true if the path has a supported extension that is not compiled.
	IsNonSourceAsset(path string) bool
}

// GenerateAssetProjectParts renders the non-source items of every assembly, keyed by assembly name. assemblyName
// resolves a path to an assembly binary name such as "Core.dll". Assets that resolve to no assembly are skipped.
func GenerateAssetProjectParts(assets []string, filter AssetFilter, assemblyName func(path string) string, paths pathutils.PathNormalizer, outputDirectory string) map[string]string {
	builders := make(map[string]*strings.Builder)
	for _, asset := range assets {
		if filter.IsInternalizedPackagePath(asset) || !filter.IsNonSourceAsset(asset) {
			continue
		}

		name := assemblyName(asset)
		if name == "" {
			continue
		}
		name = utils.GetFileNameWithoutExtension(name)

		builder, ok := builders[name]
		if !ok {
			builder = &strings.Builder{}
			builders[name] = builder
		}
		builder.WriteString(`     <None Include="` + paths.EscapedRelativePathFor(asset, outputDirectory) + `" />` + WindowsNewline)
	}

	result := make(map[string]string, len(builders))
	for name, builder := range builders {
		result[name] = builder.String()
	}
	return result
}
