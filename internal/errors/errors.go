// Package errors provides the categorised errors the whatsnew CLI reports.
// Each error carries a category that decides the exit code and a list of
// steps that tell the user how to recover.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory classifies a CLIError.
type ErrorCategory int

const (
	// Argument errors come from bad flags or positional arguments.
	Argument ErrorCategory = iota
	// Configuration errors come from config files or WHATSNEW_* variables.
	Configuration
	// Content errors come from a catalogue that cannot be loaded or parsed.
	Content
	// Runtime covers everything else.
	Runtime
)

var categoryNames = map[ErrorCategory]string{
	Argument:      "Argument Error",
	Configuration: "Configuration Error",
	Content:       "Changelog Error",
	Runtime:       "Runtime Error",
}

func (c ErrorCategory) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Error"
}

// CLIError is an error shown to the user with recovery steps.
type CLIError struct {
	Category ErrorCategory
	Message  string
	// Usage is the correct command line, shown for argument errors.
	Usage       string
	Remediation []string
	// Err is the underlying cause, if any.
	Err error
}

func (e *CLIError) Error() string { return e.Message }

func (e *CLIError) Unwrap() error { return e.Err }

// ArgumentError reports a bad invocation. usage may be empty.
func ArgumentError(message, usage string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Usage: usage, Remediation: remediation}
}

// ConfigError reports a configuration that cannot serve the command.
func ConfigError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Configuration, Message: message, Remediation: remediation}
}

// Wrap attaches a category and recovery steps to err. A non-empty context
// is prefixed to the cause's message. Wrap returns nil for a nil err.
func Wrap(err error, category ErrorCategory, context string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if context != "" {
		msg = fmt.Sprintf("%s: %v", context, err)
	}
	return &CLIError{Category: category, Message: msg, Remediation: remediation, Err: err}
}

// AsCLIError returns the first CLIError in err's chain, or nil.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
