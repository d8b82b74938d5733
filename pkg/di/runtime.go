// Package di wires devkit services with samber/do.
//
// A [Runtime] holds modules; each [Runtime.Invoke] builds a fresh injector,
// runs the modules in order and hands the injector to the handler.
package di

import (
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Injector is the dependency container passed to modules and handlers.
type Injector = do.Injector

// Module registers services on an injector.
type Module func(Injector) error

// Runtime is a reusable set of modules.
type Runtime struct {
	modules []Module
}

// New returns a runtime with the given modules.
func New(modules ...Module) *Runtime {
	return &Runtime{modules: modules}
}

// Invoke creates an injector, runs the runtime modules and then extraModules,
// and calls handler. Nil modules are skipped. The injector is shut down when
// handler returns.
func (r *Runtime) Invoke(handler func(Injector) error, extraModules ...Module) error {
	injector := do.New()
	defer injector.Shutdown()

	for _, module := range append(append([]Module{}, r.modules...), extraModules...) {
		if module == nil {
			continue
		}

		err := module(injector)
		if err != nil {
			return err
		}
	}

	return handler(injector)
}

// CommandModule builds a module from the command being run, once its flags
// are parsed.
type CommandModule func(cmd *cobra.Command) Module

// RunEWithRuntime adapts a handler to cobra's RunE. Command modules are
// evaluated on every run, after the runtime modules.
func RunEWithRuntime(
	runtime *Runtime,
	handler func(cmd *cobra.Command, injector Injector) error,
	commandModules ...CommandModule,
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		extra := make([]Module, 0, len(commandModules))
		for _, build := range commandModules {
			extra = append(extra, build(cmd))
		}

		return runtime.Invoke(func(injector Injector) error {
			return handler(cmd, injector)
		}, extra...)
	}
}
