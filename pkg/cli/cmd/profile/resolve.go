package profile

import (
	"github.com/kb-labs/devkit/pkg/cli/flags"
	"github.com/kb-labs/devkit/pkg/cli/output"
	"github.com/kb-labs/devkit/pkg/cli/ui/errorhandler"
	"github.com/kb-labs/devkit/pkg/di"
	devkitconfig "github.com/kb-labs/devkit/pkg/io/config-manager/devkit"
	profilepkg "github.com/kb-labs/devkit/pkg/profile"
	"github.com/spf13/cobra"
)

const resolveLongDesc = `Resolve a profile through its extends chain and print the result.

The output contains the merged profile, the files that contributed to it and
any diagnostics. Diagnostics are also printed to stderr; error-level
diagnostics fail the command.

Settings are read from devkit.yaml, DEVKIT_* environment variables and flags,
in increasing order of precedence. Profile values can be overridden through
DEVKIT_PROFILE_* variables (see --env-prefix) and --set.

Examples:
  # Resolve the profile configured in devkit.yaml, or "default"
  devkit profile resolve

  # Resolve a profile as YAML with an overridden policy
  devkit profile resolve backend --output yaml --set policies.maxBytes=2000000

  # Fail on warnings such as missing parents
  devkit profile resolve backend --strict`

// NewResolveCmd creates the profile resolve command.
func NewResolveCmd(runtimeContainer *di.Runtime) *cobra.Command {
	manager := devkitconfig.NewManager(devkitconfig.DefaultSearchDirs()...)

	var (
		assignments []string
		strict      bool
	)

	cmd := &cobra.Command{
		Use:          "resolve [id]",
		Short:        "Resolve a profile",
		Long:         resolveLongDesc,
		Args:         errorhandler.UsageArgs(cobra.MaximumNArgs(1)),
		SilenceUsage: true,
	}

	manager.AddFlags(cmd.Flags(), resolveKeys...)
	cmd.Flags().StringArrayVar(&assignments, "set", nil,
		"Override a profile value as key.path=value (repeatable)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as errors")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runtimeContainer.Invoke(func(injector di.Injector) error {
			return handleResolveRunE(cmd, injector, manager, args, assignments, strict)
		}, flags.LoggerModule(cmd))
	}

	return cmd
}

func handleResolveRunE(
	cmd *cobra.Command,
	injector di.Injector,
	manager *devkitconfig.Manager,
	args []string,
	assignments []string,
	strict bool,
) error {
	cfg, err := loadConfig(manager)
	if err != nil {
		return err
	}

	logger, err := di.ResolveLogger(injector)
	if err != nil {
		return err
	}

	resolve, err := di.ResolveProfileResolver(injector)
	if err != nil {
		return err
	}

	override, err := profilepkg.ParseAssignments(assignments)
	if err != nil {
		return errorhandler.WithExitCode(err, errorhandler.ExitUsage)
	}

	opts := resolveOptions(cfg, args, override, logger)
	logger.WithField("dir", opts.ProfilesPath()).Debug("resolving profile")

	result, err := withVersionCheck(resolve(cmd.Context(), opts))
	if err != nil {
		return err
	}

	err = reportDiagnostics(cmd, result.Diagnostics, strict)
	if err != nil {
		return err
	}

	return output.Write(cmd.OutOrStdout(), cfg.Output, result)
}
