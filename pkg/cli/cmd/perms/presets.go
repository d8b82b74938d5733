package perms

import (
	"github.com/kb-labs/devkit/pkg/cli/flags"
	"github.com/kb-labs/devkit/pkg/cli/output"
	"github.com/kb-labs/devkit/pkg/cli/ui/errorhandler"
	"github.com/kb-labs/devkit/pkg/di"
	devkitconfig "github.com/kb-labs/devkit/pkg/io/config-manager/devkit"
	"github.com/kb-labs/devkit/pkg/permissions"
	"github.com/spf13/cobra"
)

// NewPresetsCmd creates the perms presets command.
func NewPresetsCmd(runtimeContainer *di.Runtime) *cobra.Command {
	manager := devkitconfig.NewManager(devkitconfig.DefaultSearchDirs()...)

	cmd := &cobra.Command{
		Use:          "presets",
		Short:        "List permission presets",
		Long:         "List the built-in presets followed by the presets of any catalogs, with their permissions.",
		Args:         errorhandler.UsageArgs(cobra.NoArgs),
		SilenceUsage: true,
	}

	manager.AddFlags(cmd.Flags(), devkitconfig.KeyCatalogs, devkitconfig.KeyOutput)

	cmd.RunE = di.RunEWithRuntime(runtimeContainer, di.WithPresetRegistry(
		func(cmd *cobra.Command, injector di.Injector, registry *permissions.Registry) error {
			cfg, err := loadConfig(manager)
			if err != nil {
				return err
			}

			logger, err := di.ResolveLogger(injector)
			if err != nil {
				return err
			}

			err = registerCatalogs(registry, cfg.Catalogs, logger)
			if err != nil {
				return err
			}

			return output.Write(cmd.OutOrStdout(), cfg.Output, registry.List())
		},
	), flags.LoggerModule)

	return cmd
}
