package compilation

import (
	"path/filepath"

	"github.com/pkg/errors"
)

// SnapshotConfig describes where the host build graph snapshot is read from.
type SnapshotConfig struct {
	// Format is one of GetSupportedSnapshotFormats. An empty format is inferred from the file extension of Path.
	Format string `json:"format"`

	// Path is the snapshot file. Relative paths are resolved against the directory of the project config.
	Path string `json:"path"`
}

// NewSnapshotConfig returns a SnapshotConfig for the given path with the format inferred from its extension.
func NewSnapshotConfig(path string) *SnapshotConfig {
	return &SnapshotConfig{Path: path}
}

// ResolvedPath returns Path made absolute against baseDirectory.
func (c *SnapshotConfig) ResolvedPath(baseDirectory string) string {
	if filepath.IsAbs(c.Path) {
		return c.Path
	}
	return filepath.Join(baseDirectory, c.Path)
}

// Validate checks the path is set and the format, if given, is supported.
func (c *SnapshotConfig) Validate() error {
	if c.Path == "" {
		return errors.New("compilation.snapshot.path must be set")
	}
	if c.Format != "" && !IsSupportedSnapshotFormat(c.Format) {
		return errors.Errorf("compilation.snapshot.format '%s' is unsupported (options: %v)", c.Format, GetSupportedSnapshotFormats())
	}
	return nil
}

// Load reads the snapshot and returns a Host serving it. Relative paths are resolved against baseDirectory.
func (c *SnapshotConfig) Load(baseDirectory string) (*SnapshotHost, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return LoadSnapshotHost(c.ResolvedPath(baseDirectory), c.Format)
}
