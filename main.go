// Package main is the entry point for the devkit CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/kb-labs/devkit/internal/buildmeta"
	"github.com/kb-labs/devkit/pkg/cli/cmd"
	"github.com/kb-labs/devkit/pkg/cli/ui/errorhandler"
	"github.com/kb-labs/devkit/pkg/utils/notify"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	exitCode := runSafely(os.Args[1:], func(args []string) int {
		return runWithArgs(ctx, args)
	}, os.Stderr)

	stop()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

//nolint:nonamedreturns // Named return simplifies panic recovery logic.
func runSafely(args []string, runner func([]string) int, errWriter io.Writer) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			notify.WriteMessage(notify.Message{
				Type:    notify.ErrorType,
				Content: fmt.Sprintf("panic recovered: %v\n%s", r, debug.Stack()),
				Writer:  errWriter,
			})

			exitCode = errorhandler.ExitFailure
		}
	}()

	return runner(args)
}

func runWithArgs(ctx context.Context, args []string) int {
	info := buildmeta.Current()

	rootCmd := cmd.NewRootCmd(info.Version, info.Commit, info.Date)
	rootCmd.SetArgs(args)

	err := cmd.Execute(ctx, rootCmd)
	if err != nil {
		notify.Errorf(rootCmd.ErrOrStderr(), "%v", err)
	}

	return errorhandler.ExitCode(err)
}
