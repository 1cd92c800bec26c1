package compilation

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SnapshotDecoder decodes serialized snapshot data into a Snapshot.
type SnapshotDecoder func(data []byte, snapshot *Snapshot) error

// snapshotFormat couples a format identifier with its decoder and the file extensions it is inferred from.
type snapshotFormat struct {
	id         string
	extensions []string
	decoder    SnapshotDecoder
}

// snapshotDecoders maps a snapshot format identifier to its decoder. Every format with an entry is supported by
// ReadSnapshotFromFile. Items are populated in the init method.
var snapshotDecoders map[string]SnapshotDecoder

// snapshotFormatExtensions maps a lower-cased file extension to the snapshot format it implies.
var snapshotFormatExtensions map[string]string

// init registers the supported snapshot formats.
func init() {
	formats := []snapshotFormat{
		{
			id:         "json",
			extensions: []string{".json"},
			decoder:    func(data []byte, snapshot *Snapshot) error { return json.Unmarshal(data, snapshot) },
		},
		{
			id:         "yaml",
			extensions: []string{".yaml", ".yml"},
			decoder:    func(data []byte, snapshot *Snapshot) error { return yaml.Unmarshal(data, snapshot) },
		},
		{
			id:         "toml",
			extensions: []string{".toml"},
			decoder:    func(data []byte, snapshot *Snapshot) error { return toml.Unmarshal(data, snapshot) },
		},
	}

	snapshotDecoders = make(map[string]SnapshotDecoder)
	snapshotFormatExtensions = make(map[string]string)
	for _, format := range formats {
		// Each format and each extension must be registered once
		if _, exists := snapshotDecoders[format.id]; exists {
			panic(fmt.Errorf("the snapshot format '%s' is registered with more than one decoder", format.id))
		}
		snapshotDecoders[format.id] = format.decoder

		for _, extension := range format.extensions {
			if existing, exists := snapshotFormatExtensions[extension]; exists {
				panic(fmt.Errorf("the snapshot extension '%s' is claimed by both '%s' and '%s'", extension, existing, format.id))
			}
			snapshotFormatExtensions[extension] = format.id
		}
	}
}

// GetSupportedSnapshotFormats returns the identifiers of the supported snapshot formats, sorted.
func GetSupportedSnapshotFormats() []string {
	return sortedKeys(snapshotDecoders)
}

// IsSupportedSnapshotFormat returns true if the format identifier has a registered decoder.
func IsSupportedSnapshotFormat(format string) bool {
	_, ok := snapshotDecoders[format]
	return ok
}

// SnapshotFormatForPath infers the snapshot format from a file extension.
func SnapshotFormatForPath(path string) (string, error) {
	extension := strings.ToLower(filepath.Ext(path))
	if format, ok := snapshotFormatExtensions[extension]; ok {
		return format, nil
	}
	return "", errors.Errorf("cannot infer the snapshot format of '%s' (supported formats: %v)", path, GetSupportedSnapshotFormats())
}
