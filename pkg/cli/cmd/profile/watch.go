package profile

import (
	"time"

	"github.com/kb-labs/devkit/pkg/cli/flags"
	"github.com/kb-labs/devkit/pkg/cli/output"
	"github.com/kb-labs/devkit/pkg/cli/ui/errorhandler"
	"github.com/kb-labs/devkit/pkg/di"
	devkitconfig "github.com/kb-labs/devkit/pkg/io/config-manager/devkit"
	profilepkg "github.com/kb-labs/devkit/pkg/profile"
	"github.com/kb-labs/devkit/pkg/svc/profilewatch"
	"github.com/kb-labs/devkit/pkg/utils/notify"
	"github.com/spf13/cobra"
)

const watchLongDesc = `Resolve a profile and resolve it again whenever a file in the profiles
directory changes. Each resolution is printed as in "devkit profile resolve";
invalid resolutions print their diagnostics and the watch continues.

Stop with Ctrl+C.`

// NewWatchCmd creates the profile watch command.
func NewWatchCmd(runtimeContainer *di.Runtime) *cobra.Command {
	manager := devkitconfig.NewManager(devkitconfig.DefaultSearchDirs()...)

	var debounce time.Duration

	cmd := &cobra.Command{
		Use:          "watch [id]",
		Short:        "Re-resolve a profile on every change",
		Long:         watchLongDesc,
		Args:         errorhandler.UsageArgs(cobra.MaximumNArgs(1)),
		SilenceUsage: true,
	}

	manager.AddFlags(cmd.Flags(), resolveKeys...)
	cmd.Flags().DurationVar(&debounce, "debounce", profilewatch.DefaultDebounceInterval,
		"Time to wait for changes to settle before resolving")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runtimeContainer.Invoke(func(injector di.Injector) error {
			return handleWatchRunE(cmd, injector, manager, args, debounce)
		}, flags.LoggerModule(cmd))
	}

	return cmd
}

func handleWatchRunE(
	cmd *cobra.Command,
	injector di.Injector,
	manager *devkitconfig.Manager,
	args []string,
	debounce time.Duration,
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

	watcher := profilewatch.New(
		resolveOptions(cfg, args, nil, logger),
		profilewatch.WithDebounceInterval(debounce),
		profilewatch.WithResolver(profilewatch.ResolveFunc(resolve)),
		profilewatch.WithLogger(logger),
	)

	notify.Activityf(cmd.ErrOrStderr(), "watching %s", watcher.Dir())

	return watcher.Run(cmd.Context(), func(result profilepkg.Result) {
		result, err := withVersionCheck(result)
		if err == nil {
			err = reportDiagnostics(cmd, result.Diagnostics, false)
		}

		if err == nil {
			err = output.Write(cmd.OutOrStdout(), cfg.Output, result)
		}

		if err != nil {
			notify.Errorf(cmd.ErrOrStderr(), "%v", err)
		}
	})
}
