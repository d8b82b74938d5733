package configmanager_test

import (
	"os"
	"path/filepath"
	"testing"

	configmanagerinterface "github.com/kb-labs/devkit/pkg/io/config-manager"
	devkitconfig "github.com/kb-labs/devkit/pkg/io/config-manager/devkit"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "devkit.yaml"), []byte(content), 0o600))
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	manager := devkitconfig.NewManager(t.TempDir())

	config, err := manager.Load(configmanagerinterface.LoadOptions{})
	require.NoError(t, err)

	assert.Empty(t, config.RepoRoot)
	assert.Equal(t, "profiles", config.ProfilesDir)
	assert.Equal(t, "default", config.Profile)
	assert.Equal(t, "DEVKIT_PROFILE", config.EnvPrefix)
	assert.Equal(t, devkitconfig.OutputAuto, config.Output)
	assert.Empty(t, config.Catalogs)
	assert.Empty(t, manager.ConfigFileUsed())
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, "profilesDir: .kb/profiles\noutput: yaml\ncatalogs: [team.yaml]\n")

	manager := devkitconfig.NewManager(dir)

	config, err := manager.Load(configmanagerinterface.LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, ".kb/profiles", config.ProfilesDir)
	assert.Equal(t, devkitconfig.OutputYAML, config.Output)
	assert.Equal(t, []string{"team.yaml"}, config.Catalogs)
	assert.Equal(t, filepath.Join(dir, "devkit.yaml"), manager.ConfigFileUsed())
}

func TestLoadSearchOrder(t *testing.T) {
	t.Parallel()

	first, second := t.TempDir(), t.TempDir()
	writeConfig(t, first, "profile: from-first\n")
	writeConfig(t, second, "profile: from-second\n")

	config, err := devkitconfig.NewManager(first, second).Load(configmanagerinterface.LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "from-first", config.Profile)
}

func TestLoadPrefersRepoRootConfig(t *testing.T) {
	t.Parallel()

	repo, fallback := t.TempDir(), t.TempDir()
	writeConfig(t, repo, "profile: from-repo\n")
	writeConfig(t, fallback, "profile: from-search-dir\n")

	manager := devkitconfig.NewManager(fallback)
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	manager.AddFlags(flags, devkitconfig.KeyRepoRoot)

	require.NoError(t, flags.Set("repo-root", repo))

	config, err := manager.Load(configmanagerinterface.LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "from-repo", config.Profile)
	assert.Equal(t, repo, config.RepoRoot)
	assert.Equal(t, filepath.Join(repo, "devkit.yaml"), manager.ConfigFileUsed())
}

func TestLoadRepoRootWithoutConfigFallsBack(t *testing.T) {
	t.Parallel()

	repo, fallback := t.TempDir(), t.TempDir()
	writeConfig(t, fallback, "profile: from-search-dir\n")

	manager := devkitconfig.NewManager(fallback)
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	manager.AddFlags(flags, devkitconfig.KeyRepoRoot)

	require.NoError(t, flags.Set("repo-root", repo))

	config, err := manager.Load(configmanagerinterface.LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "from-search-dir", config.Profile)
}

func TestLoadRepoRootFromEnvironment(t *testing.T) {
	repo := t.TempDir()
	writeConfig(t, repo, "output: yaml\n")

	t.Setenv("DEVKIT_REPO_ROOT", repo)

	config, err := devkitconfig.NewManager(t.TempDir()).Load(configmanagerinterface.LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, devkitconfig.OutputYAML, config.Output)
}

func TestLoadIgnoreConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, "output: yaml\n")

	config, err := devkitconfig.NewManager(dir).Load(configmanagerinterface.LoadOptions{IgnoreConfigFile: true})
	require.NoError(t, err)

	assert.Equal(t, devkitconfig.OutputAuto, config.Output)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "output: yaml\nprofile: from-file\nprofilesDir: file-profiles\n")

	t.Setenv("DEVKIT_OUTPUT", "json")
	t.Setenv("DEVKIT_PROFILE", "from-env")

	manager := devkitconfig.NewManager(dir)
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	manager.AddFlags(flags, devkitconfig.KeyProfile, devkitconfig.KeyOutput)

	require.NoError(t, flags.Set("profile", "from-flag"))

	config, err := manager.Load(configmanagerinterface.LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "from-flag", config.Profile)
	assert.Equal(t, devkitconfig.OutputJSON, config.Output)
	assert.Equal(t, "file-profiles", config.ProfilesDir)
}

func TestAddFlagsRegistersOnlyRequestedKeys(t *testing.T) {
	t.Parallel()

	manager := devkitconfig.NewManager()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	manager.AddFlags(flags, devkitconfig.KeyCatalogs, devkitconfig.KeyRepoRoot)

	assert.NotNil(t, flags.Lookup("catalog"))
	assert.NotNil(t, flags.Lookup("repo-root"))
	assert.Nil(t, flags.Lookup("output"))

	require.NoError(t, flags.Set("catalog", "a.yaml"))
	require.NoError(t, flags.Set("catalog", "b.yaml"))

	config, err := manager.Load(configmanagerinterface.LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.yaml", "b.yaml"}, config.Catalogs)
}

func TestLoadIsCached(t *testing.T) {
	t.Parallel()

	manager := devkitconfig.NewManager(t.TempDir())

	first, err := manager.Load(configmanagerinterface.LoadOptions{})
	require.NoError(t, err)

	manager.Viper.Set(devkitconfig.KeyProfile, "changed")

	second, err := manager.Load(configmanagerinterface.LoadOptions{})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, "default", second.Profile)
}

func TestLoadRejectsUnknownOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, "output: xml\n")

	_, err := devkitconfig.NewManager(dir).Load(configmanagerinterface.LoadOptions{})

	require.ErrorIs(t, err, devkitconfig.ErrInvalidOutput)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, "output: [unclosed\n")

	_, err := devkitconfig.NewManager(dir).Load(configmanagerinterface.LoadOptions{})

	require.Error(t, err)
}

func TestFieldByFlag(t *testing.T) {
	t.Parallel()

	field, ok := devkitconfig.FieldByFlag("profiles-dir")

	require.True(t, ok)
	assert.Equal(t, devkitconfig.KeyProfilesDir, field.Key)

	_, ok = devkitconfig.FieldByFlag("nope")
	assert.False(t, ok)
}
