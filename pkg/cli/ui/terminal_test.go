package ui_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/kb-labs/devkit/pkg/cli/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferIsNotTerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	assert.False(t, ui.IsTerminal(&buf))
	assert.Equal(t, ui.DefaultWidth, ui.Width(&buf))
}

func TestRegularFileIsNotTerminal(t *testing.T) {
	t.Parallel()

	file, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)

	t.Cleanup(func() { _ = file.Close() })

	assert.False(t, ui.IsTerminal(file))
	assert.Equal(t, ui.DefaultWidth, ui.Width(file))
}
