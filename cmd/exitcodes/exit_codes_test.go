package exitcodes

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// TestGetInnerErrorAndExitCode verifies plain errors map to the general exit code and wrapped errors carry their own.
func TestGetInnerErrorAndExitCode(t *testing.T) {
	err, code := GetInnerErrorAndExitCode(nil)
	assert.NoError(t, err)
	assert.Equal(t, ExitCodeSuccess, code)

	plain := errors.New("boom")
	err, code = GetInnerErrorAndExitCode(plain)
	assert.Equal(t, plain, err)
	assert.Equal(t, ExitCodeGeneralError, code)

	err, code = GetInnerErrorAndExitCode(NewErrorWithExitCode(plain, ExitCodeSyncError))
	assert.Equal(t, plain, err)
	assert.Equal(t, ExitCodeSyncError, code)
	assert.Equal(t, "boom", NewErrorWithExitCode(plain, ExitCodeConfigError).Error())
	assert.Equal(t, "", NewErrorWithExitCode(nil, ExitCodeConfigError).Error())
}

// TestWrappedErrorWithExitCode verifies the exit code survives further wrapping and the inner error stays reachable.
func TestWrappedErrorWithExitCode(t *testing.T) {
	plain := errors.New("boom")
	withCode := NewErrorWithExitCode(plain, ExitCodeConfigError)
	wrapped := errors.Wrap(withCode, "loading project")

	err, code := GetInnerErrorAndExitCode(wrapped)
	assert.Equal(t, plain, err)
	assert.Equal(t, ExitCodeConfigError, code)
	assert.Equal(t, ExitCodeConfigError, withCode.ExitCode())
	assert.True(t, errors.Is(wrapped, plain))
}
