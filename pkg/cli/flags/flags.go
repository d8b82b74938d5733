package flags

import (
	"errors"
	"fmt"

	"github.com/kb-labs/devkit/pkg/di"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// VerboseFlagName is the persistent flag that enables debug logging.
const VerboseFlagName = "verbose"

var (
	// ErrNilCommand is returned when a flag is looked up on a nil command.
	ErrNilCommand = errors.New("command is nil")
	// ErrFlagNotFound is returned when neither the command nor its parents declare the flag.
	ErrFlagNotFound = errors.New("flag not found")
)

// IsVerbose reports the value of --verbose for cmd.
func IsVerbose(cmd *cobra.Command) (bool, error) {
	flag, err := lookup(cmd, VerboseFlagName)
	if err != nil {
		return false, err
	}

	return flag.Value.String() == "true", nil
}

// LoggerModule provides a logger that writes to the command's stderr, at
// debug level when --verbose is set.
func LoggerModule(cmd *cobra.Command) di.Module {
	if cmd == nil {
		return nil
	}

	verbose, _ := IsVerbose(cmd)

	return di.LoggerModule(cmd.ErrOrStderr(), verbose)
}

func lookup(cmd *cobra.Command, name string) (*pflag.Flag, error) {
	if cmd == nil {
		return nil, fmt.Errorf("lookup --%s: %w", name, ErrNilCommand)
	}

	for _, set := range []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags(), cmd.InheritedFlags()} {
		if flag := set.Lookup(name); flag != nil {
			return flag, nil
		}
	}

	return nil, fmt.Errorf("lookup --%s: %w", name, ErrFlagNotFound)
}
