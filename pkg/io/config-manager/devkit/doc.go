// Package configmanager loads devkit CLI settings with viper.
//
// Precedence, lowest first: built-in defaults, devkit.yaml (searched in the
// working directory and then $XDG_CONFIG_HOME/devkit), DEVKIT_* environment
// variables, and command-line flags.
//
// It shares the configmanager name with its parent; import it with an alias:
//
//	import devkitconfig "github.com/kb-labs/devkit/pkg/io/config-manager/devkit"
package configmanager
