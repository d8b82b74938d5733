// Package perms implements the `devkit perms` commands.
package perms

import (
	"github.com/kb-labs/devkit/pkg/di"
	"github.com/spf13/cobra"
)

// NewPermsCmd creates the perms command group.
func NewPermsCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "perms",
		Short: "Combine permission presets",
		Long: `Permission presets are named bundles of declarative permissions: readable
environment variables, file system globs, fetchable hosts, shell commands,
platform service grants and quotas. Presets combine into the explicit runtime
form consumed by sandboxes.

Built-in presets can be extended with YAML catalogs (--catalog).`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewPresetsCmd(runtimeContainer))
	cmd.AddCommand(NewCombineCmd(runtimeContainer))

	return cmd
}
