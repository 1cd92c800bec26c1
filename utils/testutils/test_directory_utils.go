// Package testutils holds helpers shared by tests across packages.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// ExecuteInDirectory runs method with the working directory set to testPath, or to its parent when testPath is a
// file. The previous working directory is restored before returning, even if method fails the test.
func ExecuteInDirectory(t *testing.T, testPath string, method func()) {
	t.Helper()

	previous, err := os.Getwd()
	require.NoError(t, err)

	info, err := os.Stat(testPath)
	require.NoError(t, err)
	directory := testPath
	if !info.IsDir() {
		directory = filepath.Dir(testPath)
	}

	require.NoError(t, os.Chdir(directory))
	defer func() {
		require.NoError(t, os.Chdir(previous))
	}()
	method()
}
