package permissions

// Platform keys set by [Builder.WithStorage] and [Builder.WithDatabase].
const (
	PlatformStorage  = "storage"
	PlatformDatabase = "database"
)

// Builder accumulates permission intent. It is a value: every With method
// returns a new Builder and leaves the receiver untouched, so a partially
// built chain can be branched safely.
//
//	spec := permissions.Combine().
//		With(permissions.GitWorkflow()).
//		WithEnv("CI").
//		Build()
type Builder struct {
	acc Spec
}

// Combine starts an empty builder.
func Combine() Builder {
	return Builder{}
}

// With merges a preset or spec into the accumulator. A nil source is ignored.
func (b Builder) With(source Source) Builder {
	if source == nil {
		return b
	}

	return Builder{acc: MergeSpecs(b.acc, source.spec())}
}

// WithEnv adds readable environment variable names or patterns.
func (b Builder) WithEnv(names ...string) Builder {
	return b.With(Spec{Env: &EnvSpec{Read: names}})
}

// WithFs merges a file system grant.
func (b Builder) WithFs(fs FsSpec) Builder {
	return b.With(Spec{Fs: &fs})
}

// WithNetwork merges fetchable hosts.
func (b Builder) WithNetwork(network NetworkSpec) Builder {
	return b.With(Spec{Network: &network})
}

// WithPlatform merges platform grants.
func (b Builder) WithPlatform(platform Platform) Builder {
	return b.With(Spec{Platform: platform})
}

// WithShell merges allowed command patterns.
func (b Builder) WithShell(shell ShellSpec) Builder {
	return b.With(Spec{Shell: &shell})
}

// WithQuotas sets the quota fields that are non-nil in quotas.
func (b Builder) WithQuotas(quotas Quotas) Builder {
	return b.With(Spec{Quotas: &quotas})
}

// WithStorage merges the platform storage grant.
func (b Builder) WithStorage(grant Grant) Builder {
	return b.WithPlatform(Platform{PlatformStorage: grant})
}

// WithDatabase merges the platform database grant.
func (b Builder) WithDatabase(grant Grant) Builder {
	return b.WithPlatform(Platform{PlatformDatabase: grant})
}

// Spec returns a copy of the declarative accumulator.
func (b Builder) Spec() Spec {
	return b.acc.Clone()
}

// Build converts the accumulator with [ToRuntime].
func (b Builder) Build() RuntimeSpec {
	return ToRuntime(b.acc)
}
