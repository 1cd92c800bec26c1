package compilation

import (
	"strings"
	"sync"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation/types"
)

// packagesPrefix is the case-insensitive prefix of every asset path which may belong to a package.
const packagesPrefix = "packages/"

// PackageCache memoizes package lookups against a Host. Lookups are keyed by the package root of a path, so every
// file of a package shares one entry. The cache is reset whenever the host's package set may have changed.
type PackageCache struct {
	// host is the Host lookups are delegated to on a cache miss.
	host Host

	// cache maps a lower-cased package root ("packages/<name>") to the package found there, or nil.
	cache map[string]*types.PackageInfo

	// cacheLock guards cache.
	cacheLock sync.Mutex
}

// NewPackageCache creates an empty PackageCache backed by the given Host.
func NewPackageCache(host Host) *PackageCache {
	return &PackageCache{
		host:  host,
		cache: make(map[string]*types.PackageInfo),
	}
}

// FindForAssetPath returns the package the given asset path belongs to, or nil if the path is not inside a package.
func (c *PackageCache) FindForAssetPath(assetPath string) *types.PackageInfo {
	packageRoot, ok := ResolvePotentialParentPackageAssetPath(assetPath)
	if !ok {
		return nil
	}

	c.cacheLock.Lock()
	defer c.cacheLock.Unlock()

	if cached, ok := c.cache[packageRoot]; ok {
		return cached
	}

	// Misses are cached too, so a path outside any registered package is only looked up once
	result := c.host.FindPackageForAssetPath(packageRoot)
	c.cache[packageRoot] = result
	return result
}

// Reset clears every cached lookup.
func (c *PackageCache) Reset() {
	c.cacheLock.Lock()
	defer c.cacheLock.Unlock()
	c.cache = make(map[string]*types.PackageInfo)
}

// Len returns the number of cached lookups.
func (c *PackageCache) Len() int {
	c.cacheLock.Lock()
	defer c.cacheLock.Unlock()
	return len(c.cache)
}

// ResolvePotentialParentPackageAssetPath returns the lower-cased package root ("packages/<name>") of an asset path.
// The boolean is false if the path does not start with the packages prefix.
func ResolvePotentialParentPackageAssetPath(assetPath string) (string, bool) {
	if len(assetPath) < len(packagesPrefix) || !strings.EqualFold(assetPath[:len(packagesPrefix)], packagesPrefix) {
		return "", false
	}

	separator := strings.IndexByte(assetPath[len(packagesPrefix):], '/')
	if separator == -1 {
		return strings.ToLower(assetPath), true
	}
	return strings.ToLower(assetPath[:len(packagesPrefix)+separator]), true
}
