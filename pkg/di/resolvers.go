package di

import (
	"fmt"

	"github.com/kb-labs/devkit/pkg/permissions"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ResolveLogger returns the logger provided by [LoggerModule].
func ResolveLogger(injector Injector) (logrus.FieldLogger, error) {
	logger, err := do.Invoke[logrus.FieldLogger](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve logger dependency: %w", err)
	}

	return logger, nil
}

// ResolvePresetRegistry returns the preset registry.
func ResolvePresetRegistry(injector Injector) (*permissions.Registry, error) {
	registry, err := do.Invoke[*permissions.Registry](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve preset registry dependency: %w", err)
	}

	return registry, nil
}

// ResolveProfileResolver returns the profile resolver.
func ResolveProfileResolver(injector Injector) (ProfileResolver, error) {
	resolver, err := do.Invoke[ProfileResolver](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve profile resolver dependency: %w", err)
	}

	return resolver, nil
}

// WithPresetRegistry decorates a handler that needs the preset registry.
func WithPresetRegistry(
	handler func(cmd *cobra.Command, injector Injector, registry *permissions.Registry) error,
) func(cmd *cobra.Command, injector Injector) error {
	return func(cmd *cobra.Command, injector Injector) error {
		registry, err := ResolvePresetRegistry(injector)
		if err != nil {
			return err
		}

		return handler(cmd, injector, registry)
	}
}
