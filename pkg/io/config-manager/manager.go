// Package configmanager defines how commands load their configuration.
//
// Implementations live in subpackages; devkit holds the viper-backed manager
// for the devkit CLI.
package configmanager

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// IgnoreConfigFile skips on-disk config files, leaving defaults, environment and flags.
	IgnoreConfigFile bool
}

// ConfigManager loads a configuration of type T.
type ConfigManager[T any] interface {
	// Load returns the configuration, loading it on first use and returning
	// the cached value afterwards.
	Load(opts LoadOptions) (*T, error)
}
