package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/ariel-frischer/whatsnew/internal/errors"
)

// Exit codes for the whatsnew CLI
// These codes let shell prompts and scripts react to unread entries
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates an unexpected runtime failure
	ExitFailure = 1

	// ExitHasUnread is returned by 'badge --check' when unread entries exist
	ExitHasUnread = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitConfigInvalid indicates the configuration failed to load or validate
	ExitConfigInvalid = 4

	// ExitChangelogInvalid indicates the changelog could not be loaded
	ExitChangelogInvalid = 5
)

// ExitError carries a specific exit code without an error message.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError creates an ExitError with the given code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// exitCodeFor maps an error returned by a command to a process exit code.
func exitCodeFor(err error) int {
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
		case clierrors.Configuration:
			return ExitConfigInvalid
		case clierrors.Content:
			return ExitChangelogInvalid
		}
	}
	return ExitFailure
}
