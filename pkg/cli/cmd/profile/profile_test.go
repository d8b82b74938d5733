package profile_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	profilecmd "github.com/kb-labs/devkit/pkg/cli/cmd/profile"
	"github.com/kb-labs/devkit/pkg/cli/ui/errorhandler"
	"github.com/kb-labs/devkit/pkg/di"
	profilepkg "github.com/kb-labs/devkit/pkg/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	exitCode := m.Run()

	snaps.Clean(m, snaps.CleanOpts{Sort: true})

	os.Exit(exitCode)
}

type runResult struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, args ...string) runResult {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := profilecmd.NewProfileCmd(di.NewRuntime())
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := errorhandler.NewExecutor().Execute(context.Background(), cmd)

	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// newRepo creates a repository with an "app" profile extending "base".
func newRepo(t *testing.T) string {
	t.Helper()

	repo := t.TempDir()

	writeFile(t, filepath.Join(repo, "profiles", "base.profile.json"),
		`{"id":"base","schemaVersion":"1.0.0","policies":{"privacy":"private"}}`)
	writeFile(t, filepath.Join(repo, "profiles", "app", "profile.json"), `{
		// comments are allowed
		"id": "app",
		"schemaVersion": "1.0.0",
		"extends": ["base"],
		"sources": {"src": ["src/**"]},
	}`)

	return repo
}

func decodeResult(t *testing.T, out string) profilepkg.Result {
	t.Helper()

	var result profilepkg.Result

	require.NoError(t, json.Unmarshal([]byte(out), &result))

	return result
}

func TestResolve(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)

	res := run(t, "resolve", "app", "--repo-root", repo, "--output", "json")
	require.NoError(t, res.err)

	result := decodeResult(t, res.stdout)
	assert.Equal(t, "app", result.Profile.ID)
	assert.Equal(t, "private", result.Profile.Policies[profilepkg.PolicyPrivacy])
	assert.InDelta(t, profilepkg.DefaultMaxBytes, result.Profile.Policies[profilepkg.PolicyMaxBytes], 0)
	assert.Equal(t, []string{"src/**"}, result.Profile.Sources.Src)
	require.Len(t, result.Files, 2)
	assert.Equal(t, filepath.Join(repo, "profiles", "app", "profile.json"), result.Files[0].Path)
	assert.Empty(t, result.Diagnostics)
	assert.Empty(t, res.stderr)
}

func TestResolveSetOverridesWin(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)

	res := run(t, "resolve", "app", "--repo-root", repo, "--output", "json",
		"--set", "policies.maxBytes=42", "--set", "sources.tests=test/**,e2e/**")
	require.NoError(t, res.err)

	result := decodeResult(t, res.stdout)
	assert.InDelta(t, 42, result.Profile.Policies[profilepkg.PolicyMaxBytes], 0)
	assert.Equal(t, []string{"tests/**", "test/**", "e2e/**"}, result.Profile.Sources.Tests)
}

func TestResolveInvalidAssignmentIsUsageError(t *testing.T) {
	t.Parallel()

	res := run(t, "resolve", "--repo-root", t.TempDir(), "--set", "nope")

	require.ErrorIs(t, res.err, profilepkg.ErrInvalidAssignment)
	assert.Equal(t, errorhandler.ExitUsage, errorhandler.ExitCode(res.err))
}

func TestResolveMissingProfileFallsBack(t *testing.T) {
	t.Parallel()

	res := run(t, "resolve", "ghost", "--repo-root", t.TempDir(), "--output", "json")
	require.NoError(t, res.err)

	result := decodeResult(t, res.stdout)
	assert.Equal(t, "ghost", result.Profile.ID)
	assert.Contains(t, res.stderr, "ℹ Info PROFILE_FALLBACK_DEFAULT")
}

func TestResolveWarningsAreFatalWhenStrict(t *testing.T) {
	t.Parallel()

	repo := t.TempDir()
	writeFile(t, filepath.Join(repo, "profiles", "app.profile.json"),
		`{"id":"app","schemaVersion":"1.0.0","extends":["missing"]}`)

	lenient := run(t, "resolve", "app", "--repo-root", repo, "--output", "json")
	require.NoError(t, lenient.err)
	assert.Contains(t, lenient.stderr, "⚠ Warn PROFILE_PARENT_NOT_FOUND")

	strict := run(t, "resolve", "app", "--repo-root", repo, "--output", "json", "--strict")
	require.ErrorIs(t, strict.err, profilecmd.ErrProfileInvalid)
	assert.Equal(t, errorhandler.ExitInvalid, errorhandler.ExitCode(strict.err))
	assert.Empty(t, strict.stdout)
}

func TestResolveErrorDiagnosticsAreFatal(t *testing.T) {
	t.Parallel()

	repo := t.TempDir()
	writeFile(t, filepath.Join(repo, "profiles", "app.profile.json"),
		`{"id":"app","schemaVersion":"1.0.0","sources":{"src":"src/**"}}`)

	res := run(t, "resolve", "app", "--repo-root", repo)

	require.ErrorIs(t, res.err, profilecmd.ErrProfileInvalid)
	assert.Equal(t, "profile is invalid: 1 error", res.err.Error())
	assert.Equal(t, errorhandler.ExitInvalid, errorhandler.ExitCode(res.err))
	assert.Contains(t, res.stderr, "✗ Error SOURCES_SHAPE_INVALID")
	assert.Empty(t, res.stdout)
}

func TestResolveUnsupportedSchemaVersionWarns(t *testing.T) {
	t.Parallel()

	repo := t.TempDir()
	writeFile(t, filepath.Join(repo, "profiles", "app.profile.json"), `{"id":"app","schemaVersion":"2.0.0"}`)

	res := run(t, "resolve", "app", "--repo-root", repo, "--output", "json")
	require.NoError(t, res.err)

	result := decodeResult(t, res.stdout)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, profilepkg.CodeVersionUnsupported, result.Diagnostics[0].Code)
}

func TestResolveYAMLOutput(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)

	res := run(t, "resolve", "app", "--repo-root", repo, "--output", "yaml")
	require.NoError(t, res.err)

	assert.True(t, strings.HasPrefix(res.stdout, "diagnostics: []\nfiles:\n"), res.stdout)
	assert.Contains(t, res.stdout, "  id: app\n")
}

func TestResolveTooManyArgs(t *testing.T) {
	t.Parallel()

	res := run(t, "resolve", "a", "b")

	require.Error(t, res.err)
	assert.Equal(t, errorhandler.ExitUsage, errorhandler.ExitCode(res.err))
}

func TestResolveInvalidOutput(t *testing.T) {
	t.Parallel()

	res := run(t, "resolve", "--repo-root", t.TempDir(), "--output", "xml")

	require.Error(t, res.err)
	assert.Equal(t, errorhandler.ExitUsage, errorhandler.ExitCode(res.err))
}

func TestList(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)

	res := run(t, "list", "--repo-root", repo, "--output", "json")
	require.NoError(t, res.err)

	snaps.MatchSnapshot(t, res.stdout)
}

func TestListEmpty(t *testing.T) {
	t.Parallel()

	res := run(t, "list", "--repo-root", t.TempDir(), "--output", "json")
	require.NoError(t, res.err)

	assert.Equal(t, "[]\n", res.stdout)
	assert.Contains(t, res.stderr, "no profiles found in")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)
	app := filepath.Join(repo, "profiles", "app", "profile.json")
	base := filepath.Join(repo, "profiles", "base.profile.json")

	res := run(t, "validate", app, base)
	require.NoError(t, res.err)

	assert.Equal(t, "✔ "+app+" is valid\n✔ "+base+" is valid\n", res.stdout)
	assert.Empty(t, res.stderr)
}

func TestValidateReportsEveryFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	noID := filepath.Join(dir, "a.profile.json")
	badShape := filepath.Join(dir, "b.profile.json")
	oldVersion := filepath.Join(dir, "c.profile.json")

	writeFile(t, noID, `{"schemaVersion":"1.0.0"}`)
	writeFile(t, badShape, `{"id":"b","schemaVersion":"1.0.0","sources":{"docs":"x"}}`)
	writeFile(t, oldVersion, `{"id":"c","schemaVersion":"0.9.0"}`)

	res := run(t, "validate", noID, badShape, oldVersion)

	require.ErrorIs(t, res.err, profilecmd.ErrProfileInvalid)
	assert.Equal(t, errorhandler.ExitInvalid, errorhandler.ExitCode(res.err))
	assert.Contains(t, res.err.Error(), noID)
	assert.Contains(t, res.err.Error(), badShape)
	assert.NotContains(t, res.err.Error(), oldVersion)

	assert.Contains(t, res.stderr, "PROFILE_ID_INVALID")
	assert.Contains(t, res.stderr, "SOURCES_SHAPE_INVALID")
	assert.Contains(t, res.stderr, "SCHEMA_VERSION_UNSUPPORTED")
	assert.Equal(t, "✔ "+oldVersion+" is valid\n", res.stdout)
}

func TestValidateMissingFile(t *testing.T) {
	t.Parallel()

	res := run(t, "validate", filepath.Join(t.TempDir(), "missing.json"))

	require.ErrorIs(t, res.err, os.ErrNotExist)
	assert.Equal(t, errorhandler.ExitFailure, errorhandler.ExitCode(res.err))
}

func TestValidateRequiresFiles(t *testing.T) {
	t.Parallel()

	res := run(t, "validate")

	assert.Equal(t, errorhandler.ExitUsage, errorhandler.ExitCode(res.err))
}

func TestSchema(t *testing.T) {
	t.Parallel()

	res := run(t, "schema")
	require.NoError(t, res.err)

	var schema map[string]any

	require.NoError(t, json.Unmarshal([]byte(res.stdout), &schema))
	assert.Contains(t, schema, "properties")
}

func TestWatchStopsWithContext(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)

	var stdout, stderr bytes.Buffer

	cmd := profilecmd.NewProfileCmd(di.NewRuntime())
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"watch", "app", "--repo-root", repo, "--output", "json"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, errorhandler.NewExecutor().Execute(ctx, cmd))

	result := decodeResult(t, stdout.String())
	assert.Equal(t, "app", result.Profile.ID)
	assert.Contains(t, stderr.String(), "► watching "+filepath.Join(repo, "profiles"))
}

func TestWatchMissingDirectory(t *testing.T) {
	t.Parallel()

	res := run(t, "watch", "--repo-root", t.TempDir())

	require.Error(t, res.err)
	assert.Equal(t, errorhandler.ExitFailure, errorhandler.ExitCode(res.err))
}
