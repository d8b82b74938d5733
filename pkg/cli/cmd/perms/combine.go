package perms

import (
	"fmt"

	"github.com/kb-labs/devkit/pkg/cli/flags"
	"github.com/kb-labs/devkit/pkg/cli/output"
	"github.com/kb-labs/devkit/pkg/cli/ui/errorhandler"
	"github.com/kb-labs/devkit/pkg/di"
	devkitconfig "github.com/kb-labs/devkit/pkg/io/config-manager/devkit"
	"github.com/kb-labs/devkit/pkg/permissions"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const combineLongDesc = `Combine presets and ad-hoc grants into a runtime permission set.

Presets are merged in argument order, then the ad-hoc flags. Lists are
unioned without duplicates, the file system mode of the last contributor
wins and quotas are replaced field by field.

The file system mode is shared by every allowed glob. --fs-write grants write
access to all of them, including those of the presets, and --fs-read globs
become writable as soon as any preset or --fs-write sets readWrite.

Examples:
  # Git and npm publishing
  devkit perms combine gitWorkflow npmPublish

  # CI defaults plus a custom variable and a timeout, with a digest
  devkit perms combine ciEnvironment --env DEPLOY_TOKEN --timeout-ms 300000 --digest`

// combineFlags holds the ad-hoc grants of the combine command.
type combineFlags struct {
	env       []string
	fsRead    []string
	fsWrite   []string
	fetch     []string
	shell     []string
	timeoutMs int
	memoryMb  int
	cpuMs     int
	digest    bool
}

// combineResult is printed with --digest.
type combineResult struct {
	Permissions permissions.RuntimeSpec `json:"permissions"`
	Digest      string                  `json:"digest"`
}

// NewCombineCmd creates the perms combine command.
func NewCombineCmd(runtimeContainer *di.Runtime) *cobra.Command {
	manager := devkitconfig.NewManager(devkitconfig.DefaultSearchDirs()...)

	var opts combineFlags

	cmd := &cobra.Command{
		Use:          "combine [preset]...",
		Short:        "Combine presets into runtime permissions",
		Long:         combineLongDesc,
		SilenceUsage: true,
	}

	manager.AddFlags(cmd.Flags(), devkitconfig.KeyCatalogs, devkitconfig.KeyOutput)

	flagSet := cmd.Flags()
	flagSet.StringArrayVar(&opts.env, "env", nil, "Readable environment variable or pattern (repeatable)")
	flagSet.StringArrayVar(&opts.fsRead, "fs-read", nil, "File system glob to allow; writable when any preset or --fs-write sets readWrite (repeatable)")
	flagSet.StringArrayVar(&opts.fsWrite, "fs-write", nil, "File system glob to allow; switches every allowed glob to readWrite (repeatable)")
	flagSet.StringArrayVar(&opts.fetch, "fetch", nil, "Fetchable host or host pattern (repeatable)")
	flagSet.StringArrayVar(&opts.shell, "shell", nil, "Allowed shell command pattern (repeatable)")
	flagSet.IntVar(&opts.timeoutMs, "timeout-ms", 0, "Timeout quota in milliseconds")
	flagSet.IntVar(&opts.memoryMb, "memory-mb", 0, "Memory quota in megabytes")
	flagSet.IntVar(&opts.cpuMs, "cpu-ms", 0, "CPU time quota in milliseconds")
	flagSet.BoolVar(&opts.digest, "digest", false, "Also print the SHA-256 digest of the canonical JSON form")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runtimeContainer.Invoke(func(injector di.Injector) error {
			registry, err := di.ResolvePresetRegistry(injector)
			if err != nil {
				return err
			}

			return handleCombineRunE(cmd, injector, registry, manager, args, opts)
		}, flags.LoggerModule(cmd))
	}

	return cmd
}

func handleCombineRunE(
	cmd *cobra.Command,
	injector di.Injector,
	registry *permissions.Registry,
	manager *devkitconfig.Manager,
	presetIDs []string,
	opts combineFlags,
) error {
	cfg, err := loadConfig(manager)
	if err != nil {
		return err
	}

	logger, err := di.ResolveLogger(injector)
	if err != nil {
		return err
	}

	err = registerCatalogs(registry, cfg.Catalogs, logger)
	if err != nil {
		return err
	}

	presets, err := registry.Lookup(presetIDs...)
	if err != nil {
		return errorhandler.WithExitCode(
			fmt.Errorf("%w (known presets: %v)", err, registry.IDs()),
			errorhandler.ExitUsage,
		)
	}

	builder := permissions.Combine()
	for _, preset := range presets {
		builder = builder.With(preset)
	}

	spec := applyFlags(builder, cmd.Flags(), opts).Build()

	if !opts.digest {
		return output.Write(cmd.OutOrStdout(), cfg.Output, spec)
	}

	digest, err := spec.Digest()
	if err != nil {
		return err
	}

	return output.Write(cmd.OutOrStdout(), cfg.Output, combineResult{Permissions: spec, Digest: digest})
}

// applyFlags folds the ad-hoc grants into builder after the presets.
func applyFlags(builder permissions.Builder, flagSet *pflag.FlagSet, opts combineFlags) permissions.Builder {
	if len(opts.env) > 0 {
		builder = builder.WithEnv(opts.env...)
	}

	if len(opts.fsRead) > 0 {
		builder = builder.WithFs(permissions.FsSpec{Allow: opts.fsRead})
	}

	if len(opts.fsWrite) > 0 {
		builder = builder.WithFs(permissions.FsSpec{Mode: permissions.FsReadWrite, Allow: opts.fsWrite})
	}

	if len(opts.fetch) > 0 {
		builder = builder.WithNetwork(permissions.NetworkSpec{Fetch: opts.fetch})
	}

	if len(opts.shell) > 0 {
		builder = builder.WithShell(permissions.ShellSpec{Allow: opts.shell})
	}

	var quotas permissions.Quotas

	if flagSet.Changed("timeout-ms") {
		quotas.TimeoutMs = &opts.timeoutMs
	}

	if flagSet.Changed("memory-mb") {
		quotas.MemoryMb = &opts.memoryMb
	}

	if flagSet.Changed("cpu-ms") {
		quotas.CPUMs = &opts.cpuMs
	}

	if !quotas.IsZero() {
		builder = builder.WithQuotas(quotas)
	}

	return builder
}
