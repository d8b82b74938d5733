package errorhandler

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Executor type.

// Executor coordinates Cobra execution, classifying failures by exit code and
// surfacing them once through the returned error instead of Cobra's own printing.
type Executor struct{}

// NewExecutor constructs an Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Execute runs the provided command tree with ctx while silencing Cobra's error printing.
// It returns nil on success, or a *CommandError carrying the path of the command that
// failed and the original error to preserve error-chain semantics.
//
// Flag parsing errors and unknown commands are classified as usage errors (exit code 2).
// Output written by commands to their stderr is left untouched.
func (e *Executor) Execute(ctx context.Context, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	// Errors are reported by the caller, once
	cmd.SilenceErrors = true
	cmd.SetFlagErrorFunc(flagError)

	failed, err := cmd.ExecuteContextC(ctx)
	if err == nil {
		return nil
	}

	// Cobra returns unknown subcommands as plain errors
	if strings.HasPrefix(err.Error(), "unknown command") {
		err = WithExitCode(err, ExitUsage)
	}

	// Prefer the subcommand that failed over the root
	commandPath := cmd.CommandPath()
	if failed != nil {
		commandPath = failed.CommandPath()
	}

	return &CommandError{commandPath: commandPath, cause: err}
}

// CommandError type.

// CommandError represents a Cobra execution failure augmented with the path of the
// command that returned it.
type CommandError struct {
	commandPath string
	cause       error
}

// NewCommandError wraps cause as the failure of the command at commandPath.
func NewCommandError(commandPath string, cause error) *CommandError {
	return &CommandError{commandPath: commandPath, cause: cause}
}

// Error implements the error interface. Usage errors are followed by a hint
// pointing at the failed command's help.
func (e *CommandError) Error() string {
	if e == nil || e.cause == nil {
		return ""
	}

	message := e.cause.Error()
	if ExitCode(e.cause) == ExitUsage && e.commandPath != "" {
		message += fmt.Sprintf("\nRun '%s --help' for usage.", e.commandPath)
	}

	return message
}

// Unwrap exposes the underlying cause for errors.Is/errors.As consumers.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// CommandPath returns the path of the failed command, such as "devkit profile resolve".
func (e *CommandError) CommandPath() string {
	if e == nil {
		return ""
	}

	return e.commandPath
}

// ExitCode returns the process exit code for the failure, delegating to the
// cause. A nil CommandError maps to ExitOK.
func (e *CommandError) ExitCode() int {
	if e == nil {
		return ExitOK
	}

	return ExitCode(e.cause)
}
