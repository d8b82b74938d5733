package profile

import (
	"errors"
	"fmt"

	"github.com/kb-labs/devkit/pkg/cli/diagnostics"
	"github.com/kb-labs/devkit/pkg/cli/ui"
	"github.com/kb-labs/devkit/pkg/cli/ui/errorhandler"
	configmanager "github.com/kb-labs/devkit/pkg/io/config-manager"
	devkitconfig "github.com/kb-labs/devkit/pkg/io/config-manager/devkit"
	profilepkg "github.com/kb-labs/devkit/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ErrProfileInvalid is returned when a profile has error-level diagnostics.
var ErrProfileInvalid = errors.New("profile is invalid")

// resolveKeys are the settings shared by commands that resolve a profile.
var resolveKeys = []string{
	devkitconfig.KeyRepoRoot,
	devkitconfig.KeyProfilesDir,
	devkitconfig.KeyProfile,
	devkitconfig.KeyEnvPrefix,
	devkitconfig.KeyOutput,
}

func loadConfig(manager *devkitconfig.Manager) (*devkitconfig.Config, error) {
	cfg, err := manager.Load(configmanager.LoadOptions{})
	if err != nil {
		return nil, errorhandler.WithExitCode(err, errorhandler.ExitUsage)
	}

	return cfg, nil
}

// resolveOptions builds resolver options from the loaded settings. A
// positional id wins over the configured profile.
func resolveOptions(
	cfg *devkitconfig.Config,
	args []string,
	override *profilepkg.Profile,
	logger logrus.FieldLogger,
) profilepkg.Options {
	id := cfg.Profile
	if len(args) > 0 {
		id = args[0]
	}

	return profilepkg.Options{
		RepoRoot:    cfg.RepoRoot,
		ProfileID:   id,
		ProfilesDir: cfg.ProfilesDir,
		Override:    override,
		EnvMapper:   profilepkg.EnvOverrides(cfg.EnvPrefix, logger),
		Logger:      logger,
	}
}

// reportDiagnostics prints diagnostics to stderr and fails when any is an
// error, or a warning when strict is set.
func reportDiagnostics(cmd *cobra.Command, diags []profilepkg.Diagnostic, strict bool) error {
	stderr := cmd.ErrOrStderr()
	diagnostics.Print(stderr, diags, ui.Width(stderr))

	fatal := profilepkg.HasErrors(diags)
	if strict && len(profilepkg.Filter(diags, profilepkg.LevelWarn)) > 0 {
		fatal = true
	}

	if !fatal {
		return nil
	}

	return errorhandler.WithExitCode(
		fmt.Errorf("%w: %s", ErrProfileInvalid, diagnostics.Summary(diags)),
		errorhandler.ExitInvalid,
	)
}

// withVersionCheck appends schema version warnings for the resolved profile.
func withVersionCheck(result profilepkg.Result) (profilepkg.Result, error) {
	versionDiags, err := profilepkg.CheckSchemaVersion(result.Profile, "")
	if err != nil {
		return result, err
	}

	result.Diagnostics = append(result.Diagnostics, versionDiags...)

	return result, nil
}
