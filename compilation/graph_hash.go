package compilation

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation/types"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/logging"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/logging/colors"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/utils"
	"github.com/pkg/errors"
)

// GraphHashCacheFileName is the name of the file used to store the build graph hash.
const GraphHashCacheFileName = ".idesync-graph-hash"

// GraphHashCache stores the hash of a build graph along with metadata.
type GraphHashCache struct {
	// Hash is the SHA-256 hash of the build graph.
	Hash string `json:"hash"`
	// Timestamp is when a run first saw this build graph.
	Timestamp time.Time `json:"timestamp"`
}

// ComputeGraphHash computes a SHA-256 hash over the assemblies of a build graph. Assemblies are sorted by name and
// every list field is length-prefixed, so the hash is independent of assembly order and unambiguous.
func ComputeGraphHash(assemblies []*types.Assembly) string {
	sorted := make([]*types.Assembly, len(assemblies))
	copy(sorted, assemblies)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	hasher := sha256.New()
	writeField := func(value string) {
		hasher.Write([]byte(strconv.Itoa(len(value))))
		hasher.Write([]byte{':'})
		hasher.Write([]byte(value))
	}
	writeList := func(values []string) {
		writeField(strconv.Itoa(len(values)))
		for _, value := range values {
			writeField(value)
		}
	}

	for _, assembly := range sorted {
		writeField(assembly.Name)
		writeField(assembly.OutputPath)
		writeList(assembly.SourceFiles)
		writeList(assembly.Defines)
		writeList(assembly.CompiledAssemblyReferences)

		references := make([]string, len(assembly.AssemblyReferences))
		for i, reference := range assembly.AssemblyReferences {
			references[i] = reference.Name
		}
		writeList(references)

		options := assembly.CompilerOptions
		writeField(strconv.FormatBool(options.AllowUnsafeCode))
		writeField(options.LanguageVersion)
		writeList(options.ResponseFiles)
		writeList(options.RoslynAnalyzerDllPaths)
		writeField(options.RoslynAnalyzerRulesetPath)
		writeField(options.ApiCompatibilityLevel)
	}

	return hex.EncodeToString(hasher.Sum(nil))
}

// LoadGraphHashCache loads the graph hash cache from the specified directory.
// Returns nil if the cache file does not exist or cannot be parsed.
func LoadGraphHashCache(directory string) *GraphHashCache {
	data, exists, err := utils.ReadFileIfExists(filepath.Join(directory, GraphHashCacheFileName))
	if err != nil || !exists {
		return nil
	}

	var cache GraphHashCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil
	}
	return &cache
}

// SaveGraphHashCache saves the graph hash cache to the specified directory, creating it if needed.
func SaveGraphHashCache(directory string, cache *GraphHashCache) error {
	if err := utils.MakeDirectory(directory); err != nil {
		return errors.Wrap(err, "failed to create cache directory")
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal cache")
	}

	if err := utils.WriteFileAtomic(filepath.Join(directory, GraphHashCacheFileName), data); err != nil {
		return errors.Wrap(err, "failed to write cache file")
	}
	return nil
}

// NotifyGraphHashStatus compares the hash of the given assemblies with the cached hash and logs whether the tool runs
// against a new or the same build graph as last time. The cache is only written when the graph is new, so repeated
// runs against the same graph leave the cache directory untouched. The notice is informational only.
func NotifyGraphHashStatus(assemblies []*types.Assembly, cacheDirectory string, logger *logging.Logger) {
	if len(assemblies) == 0 {
		return
	}

	currentHash := ComputeGraphHash(assemblies)
	cachedHash := LoadGraphHashCache(cacheDirectory)

	if cachedHash != nil && cachedHash.Hash == currentHash {
		logger.Info(
			colors.Bold, "graph: ", colors.Reset,
			"generating from the ", colors.YellowBold, "same", colors.Reset,
			" build graph as previously (unchanged for ", formatDuration(time.Since(cachedHash.Timestamp)), ")",
		)
		return
	}

	logger.Info(
		colors.Bold, "graph: ", colors.Reset,
		"generating from a ", colors.GreenBold, "new", colors.Reset, " build graph",
	)
	newCache := &GraphHashCache{
		Hash:      currentHash,
		Timestamp: time.Now(),
	}
	if err := SaveGraphHashCache(cacheDirectory, newCache); err != nil {
		logger.Warn("Failed to save graph hash cache", err)
	}
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		minutes := int(d.Minutes())
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}
	if d < 24*time.Hour {
		hours := int(d.Hours())
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	days := int(d.Hours() / 24)
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
