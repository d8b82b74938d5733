package di_test

import (
	"errors"
	"testing"

	"github.com/kb-labs/devkit/pkg/di"
	"github.com/kb-labs/devkit/pkg/permissions"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errHandlerExecutionFailed = errors.New("handler execution failed")

func TestResolversReportMissingDependencies(t *testing.T) {
	t.Parallel()

	injector := do.New()

	_, err := di.ResolveLogger(injector)
	require.ErrorContains(t, err, "resolve logger dependency")

	_, err = di.ResolvePresetRegistry(injector)
	require.ErrorContains(t, err, "resolve preset registry dependency")

	_, err = di.ResolveProfileResolver(injector)
	require.ErrorContains(t, err, "resolve profile resolver dependency")
}

func TestWithPresetRegistry(t *testing.T) {
	t.Parallel()

	injector := do.New()
	expected := permissions.NewEmptyRegistry()
	do.ProvideValue(injector, expected)

	var received *permissions.Registry

	handler := di.WithPresetRegistry(func(_ *cobra.Command, _ di.Injector, registry *permissions.Registry) error {
		received = registry

		return errHandlerExecutionFailed
	})

	err := handler(&cobra.Command{}, injector)

	require.ErrorIs(t, err, errHandlerExecutionFailed)
	assert.Same(t, expected, received)
}

func TestWithPresetRegistryResolveError(t *testing.T) {
	t.Parallel()

	handler := di.WithPresetRegistry(func(*cobra.Command, di.Injector, *permissions.Registry) error {
		t.Fatal("handler should not run without a registry")

		return nil
	})

	err := handler(&cobra.Command{}, do.New())

	require.ErrorContains(t, err, "resolve preset registry dependency")
}
