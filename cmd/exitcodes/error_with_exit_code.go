package exitcodes

import "github.com/pkg/errors"

// ErrorWithExitCode attaches the process exit code a command failure should produce.
type ErrorWithExitCode struct {
	err      error
	exitCode int
}

// NewErrorWithExitCode wraps err so that it terminates the process with exitCode once it reaches main.
func NewErrorWithExitCode(err error, exitCode int) *ErrorWithExitCode {
	return &ErrorWithExitCode{err: err, exitCode: exitCode}
}

// Error implements the error interface. A nil inner error yields an empty message.
func (e *ErrorWithExitCode) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

// Unwrap exposes the inner error to errors.Is and errors.As.
func (e *ErrorWithExitCode) Unwrap() error {
	return e.err
}

// ExitCode returns the exit code carried by the error.
func (e *ErrorWithExitCode) ExitCode() int {
	return e.exitCode
}

// GetInnerErrorAndExitCode resolves the error to report and the code to exit with. A nil error maps to
// ExitCodeSuccess and an error without an attached code maps to ExitCodeGeneralError. The attached code is found
// even when the ErrorWithExitCode was wrapped again on its way up, in which case its inner error is returned.
func GetInnerErrorAndExitCode(err error) (error, int) {
	if err == nil {
		return nil, ExitCodeSuccess
	}
	var withCode *ErrorWithExitCode
	if errors.As(err, &withCode) {
		return withCode.err, withCode.exitCode
	}
	return err, ExitCodeGeneralError
}
