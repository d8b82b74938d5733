package di

import (
	"context"
	"io"

	"github.com/kb-labs/devkit/pkg/permissions"
	"github.com/kb-labs/devkit/pkg/profile"
	"github.com/kb-labs/devkit/pkg/utils/logging"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
)

// ProfileResolver resolves a profile; [profile.Resolve] is the default.
type ProfileResolver func(ctx context.Context, opts profile.Options) profile.Result

// NewRuntime returns the runtime used by the CLI: the built-in preset
// registry and the profile resolver. The logger depends on command flags and
// is added per invocation with [LoggerModule].
func NewRuntime() *Runtime {
	return New(
		providePresetRegistry,
		provideProfileResolver,
	)
}

// LoggerModule provides a logrus logger writing to writer.
func LoggerModule(writer io.Writer, verbose bool) Module {
	return func(i Injector) error {
		do.Provide(i, func(Injector) (logrus.FieldLogger, error) {
			return logging.New(writer, verbose), nil
		})

		return nil
	}
}

func providePresetRegistry(i Injector) error {
	do.Provide(i, func(Injector) (*permissions.Registry, error) {
		return permissions.NewRegistry(), nil
	})

	return nil
}

func provideProfileResolver(i Injector) error {
	do.ProvideValue(i, ProfileResolver(profile.Resolve))

	return nil
}
