package cli

import (
	"errors"
	"fmt"

	"todolists/internal/core/service"
)

const (
	ExitFailure  = 1 // validation failure or storage error
	ExitNotFound = 2 // list or todo does not exist
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode returns ExitFailure for errors that are not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// classify maps service errors to exit codes. Validation and storage
// failures both exit with ExitFailure.
func classify(message string, err error) error {
	if errors.Is(err, service.ErrListNotFound) || errors.Is(err, service.ErrTodoNotFound) {
		return WrapExitError(ExitNotFound, message, err)
	}

	return WrapExitError(ExitFailure, message, err)
}
