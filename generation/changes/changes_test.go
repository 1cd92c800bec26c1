package changes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// sourceFilter includes .cs files outside of Packages/.
type sourceFilter struct{}

func (sourceFilter) ShouldInclude(path string) bool {
	return strings.HasSuffix(path, ".cs") && !strings.HasPrefix(path, "Packages/")
}

// ownerMap resolves paths through a fixed mapping.
type ownerMap map[string]string

func (m ownerMap) AssemblyNameFromScriptPath(path string) string {
	return m[path]
}

// newTestDetector creates a Detector over the Core and Game assemblies.
func newTestDetector() *Detector {
	return NewDetector(sourceFilter{}, ownerMap{
		"Assets/Core/A.cs":           "Core.dll",
		"Assets/Game/G.cs":           "Game.dll",
		"Assets/Game/Game.asmdef":    "Game.dll",
		"Assets/Plugins/Native.dll":  "",
		"Assets/Odd/Odd.cs":          "   ",
		"Packages/com.demo/Tools.cs": "Tools.dll",
	})
}

// TestNeedsResync covers the included-path and structural-extension triggers.
func TestNeedsResync(t *testing.T) {
	t.Parallel()
	detector := newTestDetector()

	tests := []struct {
		name       string
		affected   []string
		reimported []string
		expected   bool
	}{
		{"nothing", nil, nil, false},
		{"included source", []string{"Assets/Core/A.cs"}, nil, true},
		{"excluded source", []string{"Packages/com.demo/Tools.cs"}, nil, false},
		{"irrelevant affected", []string{"Assets/readme.txt"}, []string{"Assets/Core/A.cs"}, false},
		{"reimported binary", nil, []string{"Assets/Plugins/Native.dll"}, true},
		{"reimported module definition", nil, []string{"Assets/Game/Game.asmdef"}, true},
		{"structural extension is case sensitive", nil, []string{"Assets/Plugins/Native.DLL"}, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, detector.NeedsResync(test.affected, test.reimported))
		})
	}
}

// TestAffectedAssemblyNames verifies paths resolve to assembly names and unowned paths are skipped.
func TestAffectedAssemblyNames(t *testing.T) {
	t.Parallel()
	detector := newTestDetector()

	names := detector.AffectedAssemblyNames(
		[]string{"Assets/Core/A.cs", "Assets/Odd/Odd.cs", "Assets/Unknown.cs"},
		[]string{"Assets/Game/Game.asmdef", "Assets/Plugins/Native.dll", "Assets/Core/A.cs"},
	)
	assert.Equal(t, []string{"Core", "Game"}, names.Sorted())
	assert.True(t, names.Has("Core"))
	assert.False(t, names.Has("Tools"))
}

// TestEvaluate covers the three plans.
func TestEvaluate(t *testing.T) {
	t.Parallel()
	detector := newTestDetector()

	changeSet := detector.Evaluate([]string{"Assets/readme.txt"}, nil, true)
	assert.Equal(t, PlanNone, changeSet.Plan)
	assert.Empty(t, changeSet.Assemblies)

	changeSet = detector.Evaluate([]string{"Assets/Core/A.cs"}, nil, false)
	assert.Equal(t, PlanFull, changeSet.Plan)
	assert.Empty(t, changeSet.Assemblies)

	changeSet = detector.Evaluate([]string{"Assets/Core/A.cs"}, nil, true)
	assert.Equal(t, PlanPartial, changeSet.Plan)
	assert.Equal(t, []string{"Core"}, changeSet.Assemblies.Sorted())

	// A cold state with nothing to do still does nothing
	assert.Equal(t, PlanNone, detector.Evaluate(nil, nil, false).Plan)
}

// TestAssemblyNameFromBinaryName covers splitting binary names.
func TestAssemblyNameFromBinaryName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		binaryName string
		expected   string
		ok         bool
	}{
		{"Core.dll", "Core", true},
		{"Core", "Core", true},
		{".dllCore.dll", "Core", true},
		{"Core.dll.dll", "Core", true},
		{".dll", "", false},
		{"", "", false},
		{"  ", "", false},
	}
	for _, test := range tests {
		name, ok := AssemblyNameFromBinaryName(test.binaryName)
		assert.Equal(t, test.ok, ok, test.binaryName)
		assert.Equal(t, test.expected, name, test.binaryName)
	}
}

// TestPlanString verifies plan names.
func TestPlanString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", PlanNone.String())
	assert.Equal(t, "full", PlanFull.String())
	assert.Equal(t, "partial", PlanPartial.String())
	assert.Equal(t, "unknown", Plan(42).String())
}
