package profile_test

import (
	"testing"

	"github.com/kb-labs/devkit/pkg/profile"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeScalars(t *testing.T) {
	t.Parallel()

	base := profile.Profile{ID: "base", SchemaVersion: "1.0.0"}

	t.Run("empty strings do not override", func(t *testing.T) {
		t.Parallel()

		merged := profile.Merge(base, profile.Profile{})

		assert.Equal(t, "base", merged.ID)
		assert.Equal(t, "1.0.0", merged.SchemaVersion)
	})

	t.Run("non-empty strings override", func(t *testing.T) {
		t.Parallel()

		merged := profile.Merge(base, profile.Profile{ID: "over", SchemaVersion: "1.1.0"})

		assert.Equal(t, "over", merged.ID)
		assert.Equal(t, "1.1.0", merged.SchemaVersion)
	})
}

func TestMergeExtendsDeduplicates(t *testing.T) {
	t.Parallel()

	merged := profile.Merge(
		profile.Profile{Extends: []string{"a", "b"}},
		profile.Profile{Extends: []string{"b", "c", "a"}},
	)

	assert.Equal(t, []string{"a", "b", "c"}, merged.Extends)
	assert.Nil(t, profile.Merge(profile.Profile{}, profile.Profile{}).Extends)
}

func TestMergeSourcesMaterialisesEveryCategory(t *testing.T) {
	t.Parallel()

	base := profile.Profile{Sources: &profile.Sources{Rules: []string{"rules/**"}}}
	over := profile.Profile{Sources: &profile.Sources{Rules: []string{"rules/**", "more/**"}, Docs: []string{"d/**"}}}

	merged := profile.Merge(base, over)

	require.NotNil(t, merged.Sources)
	assert.Equal(t, []string{"rules/**", "more/**"}, merged.Sources.Rules)
	assert.Equal(t, []string{"d/**"}, merged.Sources.Docs)

	for _, category := range profile.Categories() {
		assert.NotNil(t, merged.Sources.Get(category), "category %s must be materialised", category)
	}
}

func TestMergeSourcesWithoutOverKeepsBaseShape(t *testing.T) {
	t.Parallel()

	base := profile.Profile{Sources: &profile.Sources{Rules: []string{"rules/**"}}}

	merged := profile.Merge(base, profile.Profile{ID: "x"})

	require.NotNil(t, merged.Sources)
	assert.Equal(t, []string{"rules/**"}, merged.Sources.Rules)
	assert.Nil(t, merged.Sources.Docs)
}

func TestMergeBoundaries(t *testing.T) {
	t.Parallel()

	base := profile.Profile{Boundaries: map[string]any{"a": 1, "b": 2}}

	assert.Equal(t, map[string]any{"a": 1, "b": 2}, profile.Merge(base, profile.Profile{}).Boundaries)
	assert.Equal(t,
		map[string]any{"c": 3},
		profile.Merge(base, profile.Profile{Boundaries: map[string]any{"c": 3}}).Boundaries,
		"boundaries are replaced wholesale",
	)
}

func TestMergePoliciesAndMetaLastWriterWins(t *testing.T) {
	t.Parallel()

	merged := profile.Merge(profile.Default(), profile.Profile{
		Policies: map[string]any{profile.PolicyMaxBytes: 1},
		Meta:     map[string]any{"owner": "team-a"},
	})

	assert.Equal(t, 1, merged.Policies[profile.PolicyMaxBytes])
	assert.Equal(t, profile.DefaultPrivacy, merged.Policies[profile.PolicyPrivacy])
	assert.Equal(t, map[string]any{"owner": "team-a"}, merged.Meta)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	base := profile.Default()
	over := profile.Profile{
		Extends:  []string{"parent"},
		Sources:  &profile.Sources{Rules: []string{"extra/**"}},
		Policies: map[string]any{profile.PolicyPrivacy: "public"},
	}

	merged := profile.Merge(base, over)
	merged.Sources.Rules[0] = "changed"
	merged.Policies[profile.PolicyMaxBytes] = 0

	assert.Equal(t, profile.Default(), base)
	assert.Equal(t, []string{"extra/**"}, over.Sources.Rules)
	assert.Len(t, over.Policies, 1)
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	original := profile.Profile{
		ID:            "clone-me",
		SchemaVersion: "1.0.0",
		Extends:       []string{"parent"},
		Sources:       &profile.Sources{Rules: []string{"rules/**"}},
		Boundaries:    map[string]any{"zone": "internal"},
		Policies:      map[string]any{"privacy": "team"},
		Meta:          map[string]any{"owner": "me"},
	}

	clone := original.Clone()
	require.Equal(t, original, clone)

	clone.Extends[0] = "other"
	clone.Sources.Rules[0] = "other/**"
	clone.Policies["privacy"] = "public"

	assert.Equal(t, "parent", original.Extends[0])
	assert.Equal(t, "rules/**", original.Sources.Rules[0])
	assert.Equal(t, "team", original.Policies["privacy"])
}

func TestMergeProperties(t *testing.T) {
	t.Parallel()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	globs := gen.SliceOf(gen.IntRange(0, 4).Map(func(index int) string {
		return string(rune('a'+index)) + "/**"
	}))

	properties.Property("array fields merge associatively", prop.ForAll(
		func(first, second, third []string) bool {
			profileA := profile.Profile{Extends: first, Sources: &profile.Sources{Rules: first}}
			profileB := profile.Profile{Extends: second, Sources: &profile.Sources{Rules: second}}
			profileC := profile.Profile{Extends: third, Sources: &profile.Sources{Rules: third}}

			left := profile.Merge(profile.Merge(profileA, profileB), profileC)
			right := profile.Merge(profileA, profile.Merge(profileB, profileC))

			return assert.ObjectsAreEqual(left.Extends, right.Extends) &&
				assert.ObjectsAreEqual(left.Sources.Rules, right.Sources.Rules)
		},
		globs, globs, globs,
	))

	properties.Property("policy scalars are last-writer-wins", prop.ForAll(
		func(baseValue, overValue int) bool {
			base := profile.Profile{Policies: map[string]any{"x": baseValue}}
			merged := profile.Merge(base, profile.Profile{Policies: map[string]any{"x": overValue}})

			return merged.Policies["x"] == overValue
		},
		gen.Int(), gen.Int(),
	))

	properties.TestingRun(t)
}
