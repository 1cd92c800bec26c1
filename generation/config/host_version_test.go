package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHostVersionGates covers the version constraints for compiler options and local tarball packages.
func TestHostVersionGates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		version         string
		compilerOptions bool
		localTarball    bool
	}{
		{"", true, true},
		{"2019.2.0f1", false, false},
		{"2019.3", false, true},
		{"2019.4.31f1", false, true},
		{"2020.1.17", false, true},
		{"2020.2.0b1", true, true},
		{"2022.3.10f1", true, true},
	}
	for _, test := range tests {
		t.Run(test.version, func(t *testing.T) {
			hostVersion, err := ParseHostVersion(test.version)
			require.NoError(t, err)
			assert.Equal(t, test.compilerOptions, hostVersion.SupportsCompilerOptions())
			assert.Equal(t, test.localTarball, hostVersion.SupportsLocalTarball())
		})
	}
}

// TestParseHostVersion verifies unparseable versions are rejected and the newest host reports "latest".
func TestParseHostVersion(t *testing.T) {
	t.Parallel()

	_, err := ParseHostVersion("not a version")
	assert.Error(t, err)

	newest, err := ParseHostVersion("")
	require.NoError(t, err)
	assert.Nil(t, newest)
	assert.Equal(t, "latest", newest.String())

	parsed, err := ParseHostVersion("2021.3.5f1")
	require.NoError(t, err)
	assert.Equal(t, "2021.3.5", parsed.String())
}
