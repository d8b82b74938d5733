package profile

import (
	"errors"
	"fmt"
	"os"

	"github.com/kb-labs/devkit/pkg/cli/ui/errorhandler"
	profilepkg "github.com/kb-labs/devkit/pkg/profile"
	"github.com/kb-labs/devkit/pkg/utils/notify"
	"github.com/spf13/cobra"
)

const validateLongDesc = `Validate profile files against the profile JSON schema and the profile rules.

Every file is checked; the command fails if any file has error-level
diagnostics. Files may contain comments and trailing commas.

Examples:
  devkit profile validate profiles/default.profile.json profiles/*/profile.json`

// NewValidateCmd creates the profile validate command.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "validate <file>...",
		Short:        "Validate profile files",
		Long:         validateLongDesc,
		Args:         errorhandler.UsageArgs(cobra.MinimumNArgs(1)),
		SilenceUsage: true,
		RunE:         handleValidateRunE,
	}
}

func handleValidateRunE(cmd *cobra.Command, files []string) error {
	var failed []error

	for _, file := range files {
		err := validateFile(cmd, file)
		if err != nil {
			failed = append(failed, err)
		}
	}

	return errors.Join(failed...)
}

func validateFile(cmd *cobra.Command, file string) error {
	data, err := os.ReadFile(file) //nolint:gosec // user-supplied path is the point
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}

	result, err := profilepkg.LintDocument(data)
	if err != nil {
		return fmt.Errorf("failed to validate %s: %w", file, err)
	}

	diags := append(result.Diagnostics, versionDiagnostics(data)...)

	if len(diags) == 0 {
		notify.Successf(cmd.OutOrStdout(), "%s is valid", file)

		return nil
	}

	notify.Titlef(cmd.ErrOrStderr(), "📄", "%s", file)

	err = reportDiagnostics(cmd, diags, false)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	notify.Successf(cmd.OutOrStdout(), "%s is valid", file)

	return nil
}

// versionDiagnostics runs the advisory schema version check on content that
// decodes to a profile. Decode problems are already reported by the lint.
func versionDiagnostics(data []byte) []profilepkg.Diagnostic {
	document, err := profilepkg.ParseDocument(data)
	if err != nil {
		return nil
	}

	decoded, err := profilepkg.Decode(document)
	if err != nil {
		return nil
	}

	diags, _ := profilepkg.CheckSchemaVersion(decoded, "")

	return diags
}
