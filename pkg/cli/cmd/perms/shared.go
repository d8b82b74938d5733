package perms

import (
	"fmt"

	"github.com/kb-labs/devkit/pkg/cli/ui/errorhandler"
	configmanager "github.com/kb-labs/devkit/pkg/io/config-manager"
	devkitconfig "github.com/kb-labs/devkit/pkg/io/config-manager/devkit"
	"github.com/kb-labs/devkit/pkg/permissions"
	"github.com/sirupsen/logrus"
)

func loadConfig(manager *devkitconfig.Manager) (*devkitconfig.Config, error) {
	cfg, err := manager.Load(configmanager.LoadOptions{})
	if err != nil {
		return nil, errorhandler.WithExitCode(err, errorhandler.ExitUsage)
	}

	return cfg, nil
}

// registerCatalogs adds the presets of every catalog to registry, in order.
func registerCatalogs(registry *permissions.Registry, catalogs []string, logger logrus.FieldLogger) error {
	for _, path := range catalogs {
		presets, err := permissions.LoadCatalog(path)
		if err != nil {
			return err
		}

		err = registry.Register(presets...)
		if err != nil {
			return fmt.Errorf("register catalog %s: %w", path, err)
		}

		logger.WithField("catalog", path).WithField("presets", len(presets)).Debug("loaded preset catalog")
	}

	return nil
}
