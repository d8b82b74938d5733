// Package profile implements the `devkit profile` commands.
package profile

import (
	"github.com/kb-labs/devkit/pkg/di"
	"github.com/spf13/cobra"
)

// NewProfileCmd creates the profile command group.
func NewProfileCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Resolve and validate repository profiles",
		Long: `Profiles are named bundles of source globs and policies stored in the
profiles directory of a repository, either as <id>/profile.json or
<id>.profile.json. A profile may extend other profiles; resolution merges the
chain over a built-in default.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewResolveCmd(runtimeContainer))
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewSchemaCmd())
	cmd.AddCommand(NewWatchCmd(runtimeContainer))

	return cmd
}
