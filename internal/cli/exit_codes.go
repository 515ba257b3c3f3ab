package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/ariel-frischer/sdk-lints/internal/errors"
)

// Exit codes for the sdk-lints CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitLintFailed indicates violations were reported (or a fix left some behind)
	ExitLintFailed = 1

	// ExitInvalidInput indicates a malformed pending changelog or config file
	ExitInvalidInput = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitEnvironment indicates the repository root or file inventory is unavailable
	ExitEnvironment = 4
)

// ExitError carries an exit code. Err, when set, is printed before exiting.
type ExitError struct {
	Code int
	Err  error
}

// NewExitError creates an ExitError without a message.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code for an error returned by Execute.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument:
			return ExitInvalidArguments
		case clierrors.Input, clierrors.Configuration:
			return ExitInvalidInput
		case clierrors.Environment:
			return ExitEnvironment
		}
	}
	return ExitLintFailed
}
