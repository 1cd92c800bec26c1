package utils

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// MakeDirectory creates a directory at the given path, including any missing parents. Returns an error if the path
// exists but refers to a file.
func MakeDirectory(dirToMake string) error {
	dirInfo, err := os.Stat(dirToMake)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.WithStack(os.MkdirAll(dirToMake, 0755))
		}
		return errors.WithStack(err)
	}

	if !dirInfo.IsDir() {
		return errors.Errorf("there is a file with the same name as the directory %s", dirToMake)
	}
	return nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames it into place, so readers never observe
// a partially written file. The parent directory is created if needed.
func WriteFileAtomic(path string, data []byte) error {
	if err := MakeDirectory(filepath.Dir(path)); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return errors.WithStack(err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WithStack(err)
	}
	return nil
}

// ReadFileIfExists reads the file at path. The boolean is false if the file does not exist, in which case no error
// is returned.
func ReadFileIfExists(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.WithStack(err)
	}
	return data, true, nil
}

// GetFileNameWithoutExtension obtains a filename without the extension. This does not contain any preceding directory
// paths.
func GetFileNameWithoutExtension(filePath string) string {
	return GetFilePathWithoutExtension(filepath.Base(filePath))
}

// GetFilePathWithoutExtension obtains a file path without the extension. This retains all preceding directory paths.
func GetFilePathWithoutExtension(filePath string) string {
	return filePath[:len(filePath)-len(filepath.Ext(filePath))]
}
