package errorhandler

import (
	"errors"

	"github.com/spf13/cobra"
)

// Process exit code constants.
// Each command failure maps to exactly one of them.
const (
	// ExitOK signals success.
	ExitOK = 0
	// ExitFailure signals a runtime failure, such as an unreadable file.
	ExitFailure = 1
	// ExitUsage signals bad flags, arguments or subcommands.
	ExitUsage = 2
	// ExitInvalid signals that the input was read but rejected, such as a
	// profile with error-level diagnostics.
	ExitInvalid = 3
)

// ExitCoder is implemented by errors that select their own exit code.
type ExitCoder interface {
	ExitCode() int
}

// ExitError represents an error carrying the exit code the process should end with.
type ExitError struct {
	// Code is the process exit code reported by ExitCode.
	Code int
	// Err is the wrapped error. Its message is used verbatim.
	Err error
}

// WithExitCode wraps err so that ExitCode reports code. A nil err stays nil.
func WithExitCode(err error, code int) error {
	if err == nil {
		return nil
	}

	return &ExitError{Code: code, Err: err}
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}

	return e.Err.Error()
}

// Unwrap exposes the wrapped error for errors.Is/errors.As consumers.
func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the attached code.
func (e *ExitError) ExitCode() int { return e.Code }

// ExitCode maps err to a process exit code: ExitOK for nil, the code of the
// first ExitCoder in the chain, or ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var coder ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}

	return ExitFailure
}

// UsageArgs wraps a positional argument validator so its errors exit with ExitUsage.
func UsageArgs(validator cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if validator == nil {
			return nil
		}

		return WithExitCode(validator(cmd, args), ExitUsage)
	}
}

// flagError classifies cobra flag parsing errors as usage errors.
func flagError(_ *cobra.Command, err error) error {
	return WithExitCode(err, ExitUsage)
}
