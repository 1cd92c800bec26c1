package logging

import (
	"io"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileWriterConfig describes how the rotating log file is laid out on disk.
type FileWriterConfig struct {
	// Directory is the directory the log file is created in.
	Directory string

	// MaxSizeMegabytes is the size a log file may grow to before it is rotated.
	MaxSizeMegabytes int

	// MaxBackups is the number of rotated log files that are retained.
	MaxBackups int
}

// NewFileWriter creates a rotating log file writer in the configured directory. The caller owns the returned writer
// and must close it once logging is done.
func NewFileWriter(config FileWriterConfig) (io.WriteCloser, error) {
	if config.Directory == "" {
		return nil, errors.Errorf("a log directory must be provided to create a log file")
	}
	if config.MaxSizeMegabytes < 0 || config.MaxBackups < 0 {
		return nil, errors.Errorf("log rotation limits cannot be negative")
	}

	directory, err := filepath.Abs(config.Directory)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// lumberjack creates the directory on first write
	return &lumberjack.Logger{
		Filename:   filepath.Join(directory, DefaultLogFileName),
		MaxSize:    config.MaxSizeMegabytes,
		MaxBackups: config.MaxBackups,
	}, nil
}
