package generation

import (
	"bytes"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/logging"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/utils"
)

// writeFileIfChanged writes content to path unless the file already holds exactly that content, in which case the
// file and its modification time are left untouched. A failure to read the existing file is logged and treated as
// if the file were absent. Returns true if the file was written.
func writeFileIfChanged(path string, content string, logger *logging.Logger) (bool, error) {
	existing, exists, err := utils.ReadFileIfExists(path)
	if err != nil {
		logger.Warn("Failed to read existing artifact ", path, ", it will be rewritten", err)
	} else if exists && bytes.Equal(existing, []byte(content)) {
		return false, nil
	}

	if err = utils.WriteFileAtomic(path, []byte(content)); err != nil {
		return false, err
	}
	return true, nil
}
