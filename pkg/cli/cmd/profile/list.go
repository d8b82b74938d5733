package profile

import (
	"github.com/kb-labs/devkit/pkg/cli/output"
	"github.com/kb-labs/devkit/pkg/cli/ui/errorhandler"
	devkitconfig "github.com/kb-labs/devkit/pkg/io/config-manager/devkit"
	profilepkg "github.com/kb-labs/devkit/pkg/profile"
	"github.com/kb-labs/devkit/pkg/utils/notify"
	"github.com/spf13/cobra"
)

// NewListCmd creates the profile list command.
func NewListCmd() *cobra.Command {
	manager := devkitconfig.NewManager(devkitconfig.DefaultSearchDirs()...)

	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List the profiles of a repository",
		Long:         "List the ids of every profile in the profiles directory, sorted.",
		Args:         errorhandler.UsageArgs(cobra.NoArgs),
		SilenceUsage: true,
	}

	manager.AddFlags(cmd.Flags(), devkitconfig.KeyRepoRoot, devkitconfig.KeyProfilesDir, devkitconfig.KeyOutput)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(manager)
		if err != nil {
			return err
		}

		dir := profilepkg.Options{RepoRoot: cfg.RepoRoot, ProfilesDir: cfg.ProfilesDir}.ProfilesPath()

		ids, err := profilepkg.List(dir)
		if err != nil {
			return err
		}

		if len(ids) == 0 {
			notify.Infof(cmd.ErrOrStderr(), "no profiles found in %s", dir)

			ids = []string{}
		}

		return output.Write(cmd.OutOrStdout(), cfg.Output, ids)
	}

	return cmd
}
