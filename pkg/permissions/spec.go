package permissions

import "github.com/jinzhu/copier"

// FsMode is the declarative file system access mode.
type FsMode string

// File system modes.
const (
	FsRead      FsMode = "read"
	FsReadWrite FsMode = "readWrite"
)

// FsSpec grants access to the globs in Allow with the given Mode.
type FsSpec struct {
	Mode  FsMode   `json:"mode,omitempty"  yaml:"mode,omitempty"`
	Allow []string `json:"allow,omitempty" yaml:"allow,omitempty"`
}

// EnvSpec lists readable environment variables. Entries may be patterns such as GIT_*.
type EnvSpec struct {
	Read []string `json:"read,omitempty" yaml:"read,omitempty"`
}

// NetworkSpec lists hosts or host patterns that may be fetched.
type NetworkSpec struct {
	Fetch []string `json:"fetch,omitempty" yaml:"fetch,omitempty"`
}

// ShellSpec lists allowed command patterns.
type ShellSpec struct {
	Allow []string `json:"allow,omitempty" yaml:"allow,omitempty"`
}

// Quotas caps resource usage. Each field is merged independently.
type Quotas struct {
	TimeoutMs *int `json:"timeoutMs,omitempty" yaml:"timeoutMs,omitempty"`
	MemoryMb  *int `json:"memoryMb,omitempty"  yaml:"memoryMb,omitempty"`
	CPUMs     *int `json:"cpuMs,omitempty"     yaml:"cpuMs,omitempty"`
}

// IsZero reports whether no quota is set.
func (q Quotas) IsZero() bool {
	return q.TimeoutMs == nil && q.MemoryMb == nil && q.CPUMs == nil
}

// Platform holds per-service grants keyed by service name.
type Platform map[string]Grant

// Spec is the declarative permission intent of a preset.
type Spec struct {
	Fs       *FsSpec      `json:"fs,omitempty"       yaml:"fs,omitempty"`
	Env      *EnvSpec     `json:"env,omitempty"      yaml:"env,omitempty"`
	Network  *NetworkSpec `json:"network,omitempty"  yaml:"network,omitempty"`
	Shell    *ShellSpec   `json:"shell,omitempty"    yaml:"shell,omitempty"`
	Platform Platform     `json:"platform,omitempty" yaml:"platform,omitempty"`
	Quotas   *Quotas      `json:"quotas,omitempty"   yaml:"quotas,omitempty"`
}

// Clone returns a deep copy of the spec.
func (s Spec) Clone() Spec {
	var clone Spec

	err := copier.CopyWithOption(&clone, &s, copier.Option{DeepCopy: true, IgnoreEmpty: true})
	if err != nil {
		panic("permissions: clone spec: " + err.Error())
	}

	return clone
}

// RuntimeFs is the explicit file system grant.
type RuntimeFs struct {
	Read  []string `json:"read,omitempty"  yaml:"read,omitempty"`
	Write []string `json:"write,omitempty" yaml:"write,omitempty"`
}

// RuntimeSpec is the explicit permission set handed to an enforcement layer.
type RuntimeSpec struct {
	Fs       *RuntimeFs   `json:"fs,omitempty"       yaml:"fs,omitempty"`
	Env      *EnvSpec     `json:"env,omitempty"      yaml:"env,omitempty"`
	Network  *NetworkSpec `json:"network,omitempty"  yaml:"network,omitempty"`
	Shell    *ShellSpec   `json:"shell,omitempty"    yaml:"shell,omitempty"`
	Platform Platform     `json:"platform,omitempty" yaml:"platform,omitempty"`
	Quotas   *Quotas      `json:"quotas,omitempty"   yaml:"quotas,omitempty"`
}

// Preset is a named, reusable permission bundle.
type Preset struct {
	ID          string `json:"id"          yaml:"id"`
	Description string `json:"description" yaml:"description"`
	Permissions Spec   `json:"permissions" yaml:"permissions"`
}

// Source is anything a [Builder] can fold in.
type Source interface {
	spec() Spec
}

func (s Spec) spec() Spec { return s }

func (p Preset) spec() Spec { return p.Permissions }
