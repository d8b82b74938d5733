package profile

import "github.com/kb-labs/devkit/pkg/merge"

// Merge layers over on top of base and returns a new profile; neither input is modified.
//
// Rules:
//   - ID and SchemaVersion: over wins only when non-empty
//   - Extends: base then over, deduplicated
//   - Sources: when over has sources, every category becomes the deduplicated
//     union of base and over, and all six categories are materialised
//   - Boundaries: replaced wholesale when over sets them
//   - Policies and Meta: shallow spread, over wins per key
func Merge(base, over Profile) Profile {
	result := Profile{
		ID:            base.ID,
		SchemaVersion: base.SchemaVersion,
		Extends:       merge.Strings(base.Extends),
		Sources:       cloneSources(base.Sources),
		Boundaries:    merge.DeepCopyMap(base.Boundaries),
		Policies:      merge.Shallow(base.Policies, over.Policies),
		Meta:          merge.Shallow(base.Meta, over.Meta),
	}

	if over.ID != "" {
		result.ID = over.ID
	}

	if over.SchemaVersion != "" {
		result.SchemaVersion = over.SchemaVersion
	}

	if base.Extends != nil || over.Extends != nil {
		result.Extends = merge.Union(base.Extends, over.Extends)
	}

	if over.Sources != nil {
		result.Sources = mergeSources(base.Sources, over.Sources)
	}

	if over.Boundaries != nil {
		result.Boundaries = merge.DeepCopyMap(over.Boundaries)
	}

	return result
}

func mergeSources(base, over *Sources) *Sources {
	merged := &Sources{}

	for _, category := range Categories() {
		merged.Set(category, merge.Union(base.Get(category), over.Get(category)))
	}

	return merged
}

func cloneSources(sources *Sources) *Sources {
	if sources == nil {
		return nil
	}

	cloned := &Sources{}

	for _, category := range Categories() {
		cloned.Set(category, merge.Strings(sources.Get(category)))
	}

	return cloned
}
