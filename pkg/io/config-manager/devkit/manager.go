package configmanager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	configmanagerinterface "github.com/kb-labs/devkit/pkg/io/config-manager"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ConfigName is the config file name without extension.
const ConfigName = "devkit"

// ErrInvalidOutput is returned when the output setting is not a known format.
var ErrInvalidOutput = errors.New("invalid output format")

// Config holds the resolved CLI settings.
type Config struct {
	RepoRoot    string   `mapstructure:"repoRoot"`
	ProfilesDir string   `mapstructure:"profilesDir"`
	Profile     string   `mapstructure:"profile"`
	EnvPrefix   string   `mapstructure:"envPrefix"`
	Output      string   `mapstructure:"output"`
	Catalogs    []string `mapstructure:"catalogs"`
}

// Manager loads [Config] through viper.
type Manager struct {
	Viper *viper.Viper

	searchDirs []string
	config     *Config
	loaded     bool
	fileFound  bool
}

var _ configmanagerinterface.ConfigManager[Config] = (*Manager)(nil)

// NewManager returns a manager that looks for devkit.yaml in the configured
// repository root and then in searchDirs, in order.
func NewManager(searchDirs ...string) *Manager {
	viperInstance := viper.New()

	for _, field := range Fields() {
		viperInstance.SetDefault(field.Key, field.Default)
		_ = viperInstance.BindEnv(field.Key, field.Env)
	}

	return &Manager{Viper: viperInstance, searchDirs: searchDirs}
}

// DefaultSearchDirs returns the working directory followed by the user config
// directory ($XDG_CONFIG_HOME/devkit on Linux). The working directory is the
// repository root when none is configured.
func DefaultSearchDirs() []string {
	dirs := []string{"."}

	configHome, err := os.UserConfigDir()
	if err == nil {
		dirs = append(dirs, filepath.Join(configHome, ConfigName))
	}

	return dirs
}

// AddFlags registers the flags of the given keys on flags and binds them.
func (m *Manager) AddFlags(flags *pflag.FlagSet, keys ...string) {
	for _, field := range Fields() {
		if !slices.Contains(keys, field.Key) {
			continue
		}

		switch value := field.Default.(type) {
		case []string:
			flags.StringArray(field.Flag, value, field.Description)
		case string:
			flags.String(field.Flag, value, field.Description)
		}

		_ = m.Viper.BindPFlag(field.Key, flags.Lookup(field.Flag))
	}
}

// Load reads the config file, environment and bound flags. The result is
// cached, so later calls return the same value.
func (m *Manager) Load(opts configmanagerinterface.LoadOptions) (*Config, error) {
	if m.loaded {
		return m.config, nil
	}

	if !opts.IgnoreConfigFile {
		err := m.readConfig()
		if err != nil {
			return nil, err
		}
	}

	var config Config

	err := m.Viper.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	err = validate(config)
	if err != nil {
		return nil, err
	}

	m.config = &config
	m.loaded = true

	return m.config, nil
}

// ConfigFileUsed returns the path of the config file that was read, or "".
func (m *Manager) ConfigFileUsed() string {
	if !m.fileFound {
		return ""
	}

	return m.Viper.ConfigFileUsed()
}

func (m *Manager) readConfig() error {
	path := m.findConfigFile()
	if path == "" {
		return nil
	}

	m.Viper.SetConfigFile(path)

	err := m.Viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	m.fileFound = true

	return nil
}

// findConfigFile returns the first devkit config file in the repository root
// (from flags or environment) or the search directories.
func (m *Manager) findConfigFile() string {
	dirs := m.searchDirs
	if root := m.Viper.GetString(KeyRepoRoot); root != "" {
		dirs = append([]string{root}, dirs...)
	}

	for _, dir := range dirs {
		for _, ext := range viper.SupportedExts {
			path := filepath.Join(dir, ConfigName+"."+ext)

			info, err := os.Stat(path)
			if err == nil && !info.IsDir() {
				return path
			}
		}
	}

	return ""
}

func validate(config Config) error {
	switch config.Output {
	case OutputAuto, OutputJSON, OutputYAML:
		return nil
	default:
		return fmt.Errorf("%w %q: expected %s, %s or %s",
			ErrInvalidOutput, config.Output, OutputJSON, OutputYAML, OutputAuto)
	}
}
