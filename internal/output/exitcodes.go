// Package output maps export failures to process exit codes and prints
// status lines for the bookmarks-csv commands.
//
// A run either succeeds (an empty bookmark tree included), fails because of
// what the user pointed it at (a missing or malformed bookmark source, an
// invalid configuration), or fails while producing the CSV file.
package output

import "errors"

// Process exit codes
const (
	ExitSuccess = 0
	// ExitUserError: input not found, input not parseable, invalid configuration
	ExitUserError = 1
	// ExitSystemError: output not writable, other I/O failures
	ExitSystemError = 2
)

// ExitError carries the exit code a failed command should terminate with.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError reports a problem with the input or configuration.
func NewUserError(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
		Cause:   cause,
	}
}

// NewSystemError reports a failure while writing the export or running the preview.
func NewSystemError(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
		Cause:   cause,
	}
}

// GetExitCode returns the exit code for the error a command returned.
// Errors without a code, such as flag parsing failures, count as user errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUserError
}
