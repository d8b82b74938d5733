package permissions

import "github.com/kb-labs/devkit/pkg/merge"

// MergeSpecs layers next on top of base and returns a new spec; neither input is modified.
//
// List sections (fs.allow, env.read, network.fetch, shell.allow) are unioned
// without duplicates. fs.mode and each quota take next's value when set.
// Platform grants merge per key: two lists are unioned, two objects are
// shallow-spread, anything else takes next's grant. Sections left empty are
// dropped.
func MergeSpecs(base, next Spec) Spec {
	return Spec{
		Fs:       mergeFs(base.Fs, next.Fs),
		Env:      mergeEnv(base.Env, next.Env),
		Network:  mergeNetwork(base.Network, next.Network),
		Shell:    mergeShell(base.Shell, next.Shell),
		Platform: mergePlatform(base.Platform, next.Platform),
		Quotas:   mergeQuotas(base.Quotas, next.Quotas),
	}
}

func mergeFs(base, next *FsSpec) *FsSpec {
	if base == nil {
		base = &FsSpec{}
	}

	if next == nil {
		next = &FsSpec{}
	}

	merged := &FsSpec{
		Mode:  base.Mode,
		Allow: merge.UnionOrNil(base.Allow, next.Allow),
	}

	if next.Mode != "" {
		merged.Mode = next.Mode
	}

	if merged.Mode == "" && len(merged.Allow) == 0 {
		return nil
	}

	return merged
}

func mergeEnv(base, next *EnvSpec) *EnvSpec {
	var baseRead, nextRead []string

	if base != nil {
		baseRead = base.Read
	}

	if next != nil {
		nextRead = next.Read
	}

	read := merge.UnionOrNil(baseRead, nextRead)
	if len(read) == 0 {
		return nil
	}

	return &EnvSpec{Read: read}
}

func mergeNetwork(base, next *NetworkSpec) *NetworkSpec {
	var baseFetch, nextFetch []string

	if base != nil {
		baseFetch = base.Fetch
	}

	if next != nil {
		nextFetch = next.Fetch
	}

	fetch := merge.UnionOrNil(baseFetch, nextFetch)
	if len(fetch) == 0 {
		return nil
	}

	return &NetworkSpec{Fetch: fetch}
}

func mergeShell(base, next *ShellSpec) *ShellSpec {
	var baseAllow, nextAllow []string

	if base != nil {
		baseAllow = base.Allow
	}

	if next != nil {
		nextAllow = next.Allow
	}

	allow := merge.UnionOrNil(baseAllow, nextAllow)
	if len(allow) == 0 {
		return nil
	}

	return &ShellSpec{Allow: allow}
}

func mergePlatform(base, next Platform) Platform {
	merged := Platform{}

	for key, grant := range base {
		if !grant.IsZero() {
			merged[key] = cloneGrant(grant)
		}
	}

	for key, grant := range next {
		if grant.IsZero() {
			continue
		}

		current, ok := merged[key]

		switch {
		case ok && current.Kind() == GrantList && grant.Kind() == GrantList:
			merged[key] = AllowList(merge.Union(current.Values, grant.Values)...)
		case ok && current.Kind() == GrantObject && grant.Kind() == GrantObject:
			merged[key] = Descriptor(merge.DeepCopyMap(merge.Shallow(current.Fields, grant.Fields)))
		default:
			merged[key] = cloneGrant(grant)
		}
	}

	if len(merged) == 0 {
		return nil
	}

	return merged
}

func cloneGrant(grant Grant) Grant {
	switch grant.Kind() {
	case GrantBool:
		return Allow(*grant.Enabled)
	case GrantList:
		return AllowList(merge.Strings(grant.Values)...)
	case GrantObject:
		return Descriptor(merge.DeepCopyMap(grant.Fields))
	case GrantNone:
		return Grant{}
	}

	return Grant{}
}

func mergeQuotas(base, next *Quotas) *Quotas {
	if base == nil {
		base = &Quotas{}
	}

	if next == nil {
		next = &Quotas{}
	}

	merged := &Quotas{
		TimeoutMs: pick(base.TimeoutMs, next.TimeoutMs),
		MemoryMb:  pick(base.MemoryMb, next.MemoryMb),
		CPUMs:     pick(base.CPUMs, next.CPUMs),
	}

	if merged.IsZero() {
		return nil
	}

	return merged
}

// pick returns a fresh pointer to next's value when set, otherwise to base's.
func pick(base, next *int) *int {
	chosen := base
	if next != nil {
		chosen = next
	}

	if chosen == nil {
		return nil
	}

	value := *chosen

	return &value
}

func copyPlatform(platform Platform) Platform {
	if platform == nil {
		return nil
	}

	copied := make(Platform, len(platform))
	for key, grant := range platform {
		copied[key] = cloneGrant(grant)
	}

	return copied
}
