package cmd

import (
	"context"
	"fmt"

	"github.com/kb-labs/devkit/pkg/cli/cmd/perms"
	"github.com/kb-labs/devkit/pkg/cli/cmd/profile"
	"github.com/kb-labs/devkit/pkg/cli/flags"
	"github.com/kb-labs/devkit/pkg/cli/ui/errorhandler"
	"github.com/kb-labs/devkit/pkg/di"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	runtimeContainer := di.NewRuntime()

	cmd := &cobra.Command{
		Use:   "devkit",
		Short: "Resolve repository profiles and combine permission presets",
		Long: `devkit resolves layered repository profiles (source globs and policies with
inheritance) and combines permission presets into explicit runtime
permission sets.`,
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.PersistentFlags().Bool(flags.VerboseFlagName, false, "Enable debug logging on stderr")

	cmd.AddCommand(profile.NewProfileCmd(runtimeContainer))
	cmd.AddCommand(perms.NewPermsCmd(runtimeContainer))

	return cmd
}

// Execute runs the provided root command. The returned error carries an
// exit code, see [errorhandler.ExitCode].
func Execute(ctx context.Context, cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.Execute(ctx, cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

func handleRootRunE(cmd *cobra.Command, _ []string) error {
	// Help can only fail on write errors to a buffer-backed writer.
	_ = cmd.Help()

	return nil
}
