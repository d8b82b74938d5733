package permissions

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
	"github.com/kb-labs/devkit/pkg/merge"
)

// ToRuntime converts declarative intent into explicit read/write globs.
// fs.allow always becomes fs.read and also fs.write when the mode is
// readWrite. The other sections are copied unchanged.
func ToRuntime(spec Spec) RuntimeSpec {
	runtime := RuntimeSpec{
		Platform: copyPlatform(spec.Platform),
	}

	if spec.Fs != nil && len(spec.Fs.Allow) > 0 {
		runtime.Fs = &RuntimeFs{Read: merge.Strings(spec.Fs.Allow)}

		if spec.Fs.Mode == FsReadWrite {
			runtime.Fs.Write = merge.Strings(spec.Fs.Allow)
		}
	}

	if spec.Env != nil {
		runtime.Env = &EnvSpec{Read: merge.Strings(spec.Env.Read)}
	}

	if spec.Network != nil {
		runtime.Network = &NetworkSpec{Fetch: merge.Strings(spec.Network.Fetch)}
	}

	if spec.Shell != nil {
		runtime.Shell = &ShellSpec{Allow: merge.Strings(spec.Shell.Allow)}
	}

	if spec.Quotas != nil {
		runtime.Quotas = &Quotas{
			TimeoutMs: pick(nil, spec.Quotas.TimeoutMs),
			MemoryMb:  pick(nil, spec.Quotas.MemoryMb),
			CPUMs:     pick(nil, spec.Quotas.CPUMs),
		}
	}

	return runtime
}

// CombinePresets folds the sources in order and builds the result.
func CombinePresets(sources ...Source) RuntimeSpec {
	builder := Combine()
	for _, source := range sources {
		builder = builder.With(source)
	}

	return builder.Build()
}

// Digest returns the hex SHA-256 of the spec's RFC 8785 canonical JSON.
func (r RuntimeSpec) Digest() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshal runtime spec: %w", err)
	}

	canonical, err := jcs.Transform(data)
	if err != nil {
		return "", fmt.Errorf("canonicalize runtime spec: %w", err)
	}

	sum := sha256.Sum256(canonical)

	return hex.EncodeToString(sum[:]), nil
}
