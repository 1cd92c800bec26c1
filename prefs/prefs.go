// Package prefs persists host-owned preferences, such as the generation policy, between runs. Values are stored
// CBOR-encoded in a bbolt database, one key per preference.
package prefs

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fxamacker/cbor"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/config"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/logging"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/utils"
	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
)

const (
	// DefaultFileName is the file name of the preference database.
	DefaultFileName = "prefs.db"

	// ProjectGenerationFlagKey stores the generation policy bitmask.
	ProjectGenerationFlagKey = "unity_project_generation_flag"
)

// bucketName is the bucket holding every preference.
var bucketName = []byte("editor_prefs")

// openTimeout bounds how long Open waits for another process holding the database.
const openTimeout = time.Second

// Store is a preference database.
type Store struct {
	// db is the underlying database.
	db *bbolt.DB

	// path is the path of the database file.
	path string

	// logger describes the Store's logger
	logger *logging.Logger
}

// DefaultPath returns the path of the preference database in the user configuration directory.
func DefaultPath() (string, error) {
	configDirectory, err := os.UserConfigDir()
	if err != nil {
		return "", errors.WithStack(err)
	}
	return filepath.Join(configDirectory, "idesync", DefaultFileName), nil
}

// Open opens the preference database at path, creating it and its directory if needed.
func Open(path string) (*Store, error) {
	if err := utils.MakeDirectory(filepath.Dir(path)); err != nil {
		return nil, err
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, errors.Wrapf(err, "could not open preference database %s", path)
	}

	// Create the bucket up front so reads never have to
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.WithStack(err)
	}

	return &Store{
		db:     db,
		path:   path,
		logger: logging.GlobalLogger.NewSubLogger("module", logging.PREFS_SERVICE),
	}, nil
}

// Path returns the path of the database file.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	return errors.WithStack(s.db.Close())
}

// HasKey returns true if a value is stored under the key.
func (s *Store) HasKey(key string) (bool, error) {
	found := false
	err := s.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket(bucketName).Get([]byte(key)) != nil
		return nil
	})
	return found, errors.WithStack(err)
}

// Get decodes the value stored under the key into value. The boolean is false if nothing is stored, in which case
// value is left untouched.
func (s *Store) Get(key string, value any) (bool, error) {
	found := false
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketName).Get([]byte(key))
		if data == nil {
			return nil
		}
		found = true
		return cbor.Unmarshal(data, value)
	})
	if err != nil {
		return false, errors.Wrapf(err, "could not read preference %s", key)
	}
	return found, nil
}

// Set encodes value and stores it under the key.
func (s *Store) Set(key string, value any) error {
	data, err := cbor.Marshal(value, cbor.EncOptions{})
	if err != nil {
		return errors.WithStack(err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), data)
	})
	if err != nil {
		return errors.Wrapf(err, "could not write preference %s", key)
	}
	s.logger.Debug("Stored preference ", key)
	return nil
}

// Delete removes the value stored under the key, if any.
func (s *Store) Delete(key string) error {
	return errors.WithStack(s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	}))
}

// GetInt returns the integer stored under the key, or defaultValue if there is none.
func (s *Store) GetInt(key string, defaultValue int) (int, error) {
	value := defaultValue
	if _, err := s.Get(key, &value); err != nil {
		return defaultValue, err
	}
	return value, nil
}

// ProjectGenerationFlag returns the stored generation policy, or FlagNone if none is stored.
func (s *Store) ProjectGenerationFlag() (config.ProjectGenerationFlag, error) {
	value, err := s.GetInt(ProjectGenerationFlagKey, int(config.FlagNone))
	if err != nil {
		return config.FlagNone, err
	}
	return config.ProjectGenerationFlag(value), nil
}

// SetProjectGenerationFlag stores the generation policy.
func (s *Store) SetProjectGenerationFlag(flags config.ProjectGenerationFlag) error {
	return s.Set(ProjectGenerationFlagKey, int(flags))
}

// ToggleProjectGenerationFlag toggles one bit of the stored generation policy and returns the new policy.
func (s *Store) ToggleProjectGenerationFlag(flag config.ProjectGenerationFlag) (config.ProjectGenerationFlag, error) {
	flags, err := s.ProjectGenerationFlag()
	if err != nil {
		return flags, err
	}
	flags = flags.Toggle(flag)
	return flags, s.SetProjectGenerationFlag(flags)
}
