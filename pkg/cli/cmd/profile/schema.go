package profile

import (
	"fmt"

	"github.com/kb-labs/devkit/pkg/cli/ui/errorhandler"
	profilepkg "github.com/kb-labs/devkit/pkg/profile"
	"github.com/spf13/cobra"
)

// NewSchemaCmd creates the profile schema command.
func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "schema",
		Short:        "Print the JSON schema of profile files",
		Long:         "Print the JSON schema that profile files are validated against, for use in editors.",
		Args:         errorhandler.UsageArgs(cobra.NoArgs),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := profilepkg.JSONSchema()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(schema))
			if err != nil {
				return fmt.Errorf("write schema: %w", err)
			}

			return nil
		},
	}
}
