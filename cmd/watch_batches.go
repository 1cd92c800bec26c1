package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/config"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/logging/colors"
	"golang.org/x/exp/slices"
)

// packageManifestPaths are the project-relative files whose change may alter the package set of the host.
var packageManifestPaths = []string{"Packages/manifest.json", "Packages/packages-lock.json"}

// watchBatchHandler forwards watcher batches to the generator of a session. Before each batch it picks up a changed
// extension allow-list from the configuration file, and a batch touching the package manifest drops the cached
// package lookups and runs a full sync.
type watchBatchHandler struct {
	session *projectSession

	// configModTime is the modification time of the configuration file when it was last read, or the zero time if
	// the file did not exist.
	configModTime time.Time
}

// newWatchBatchHandler creates a watchBatchHandler for the session.
func newWatchBatchHandler(session *projectSession) *watchBatchHandler {
	handler := &watchBatchHandler{session: session}
	if info, err := os.Stat(session.configPath); err == nil {
		handler.configModTime = info.ModTime()
	}
	return handler
}

// handle implements watcher.SyncFunc.
func (h *watchBatchHandler) handle(affected []string, reimported []string) error {
	h.reloadUserExtensions()

	if touchesPackageManifest(affected) || touchesPackageManifest(reimported) {
		cmdLogger.Info("The package manifest changed, regenerating every artifact")
		h.session.settings.ResetPackageCache()
		return h.session.generator.Sync()
	}
	return h.session.generator.SyncIfNeeded(affected, reimported)
}

// reloadUserExtensions re-reads the configuration file if it changed since it was last read and applies its
// extension allow-list. An unreadable or invalid file is logged and the current allow-list kept.
func (h *watchBatchHandler) reloadUserExtensions() {
	info, err := os.Stat(h.session.configPath)
	if err != nil || !info.ModTime().After(h.configModTime) {
		return
	}
	h.configModTime = info.ModTime()

	projectConfig, err := config.ReadProjectConfigFromFile(h.session.configPath)
	if err == nil {
		err = projectConfig.ResolvePaths(h.session.configDirectory)
	}
	if err == nil {
		err = projectConfig.Validate()
	}
	if err != nil {
		cmdLogger.Warn("Ignoring the changed configuration file, it could not be loaded", err)
		return
	}

	extensions := projectConfig.Generation.UserExtensions
	if slices.Equal(extensions, h.session.config.Generation.UserExtensions) {
		return
	}
	h.session.config.Generation.UserExtensions = extensions
	h.session.settings.SetUserExtensions(extensions)
	cmdLogger.Info("Using the extension allow-list ", colors.Bold, strings.Join(extensions, ", "), colors.Reset)
}

// touchesPackageManifest returns true if any path is one of packageManifestPaths, ignoring case.
func touchesPackageManifest(paths []string) bool {
	for _, path := range paths {
		for _, manifestPath := range packageManifestPaths {
			if strings.EqualFold(path, manifestPath) {
				return true
			}
		}
	}
	return false
}
