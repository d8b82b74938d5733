package profile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kb-labs/devkit/pkg/profile"
	"github.com/stretchr/testify/require"
)

const (
	dirPermissions  = 0o750
	filePermissions = 0o600
)

// writeProfileDir writes content to <root>/profiles/<id>/profile.json.
func writeProfileDir(t *testing.T, root, id, content string) string {
	t.Helper()

	dir := filepath.Join(root, profile.DefaultProfilesDir, id)
	require.NoError(t, os.MkdirAll(dir, dirPermissions))

	path := filepath.Join(dir, "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(content), filePermissions))

	return path
}

// writeProfileFile writes content to <root>/profiles/<id>.profile.json.
func writeProfileFile(t *testing.T, root, id, content string) string {
	t.Helper()

	dir := filepath.Join(root, profile.DefaultProfilesDir)
	require.NoError(t, os.MkdirAll(dir, dirPermissions))

	path := filepath.Join(dir, id+".profile.json")
	require.NoError(t, os.WriteFile(path, []byte(content), filePermissions))

	return path
}

func codes(diagnostics []profile.Diagnostic) []string {
	result := make([]string, 0, len(diagnostics))
	for _, diagnostic := range diagnostics {
		result = append(result, diagnostic.Code)
	}

	return result
}
