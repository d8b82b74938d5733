package profile_test

import (
	"testing"

	"github.com/kb-labs/devkit/pkg/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides(t *testing.T) {
	t.Parallel()

	mapper := profile.EnvOverrides("TEST_PROFILE", nil)

	tests := []struct {
		name     string
		env      map[string]string
		expected *profile.Profile
	}{
		{
			name:     "no variables",
			env:      map[string]string{"UNRELATED": "1"},
			expected: nil,
		},
		{
			name: "json override",
			env:  map[string]string{"TEST_PROFILE_OVERRIDE": `{"policies":{"maxBytes":3000000}}`},
			expected: &profile.Profile{
				Policies: map[string]any{profile.PolicyMaxBytes: 3000000},
			},
		},
		{
			name: "scalar variables",
			env: map[string]string{
				"TEST_PROFILE_MAX_BYTES": "5",
				"TEST_PROFILE_PRIVACY":   "public",
			},
			expected: &profile.Profile{
				Policies: map[string]any{profile.PolicyMaxBytes: 5, profile.PolicyPrivacy: "public"},
			},
		},
		{
			name: "scalars win over json override",
			env: map[string]string{
				"TEST_PROFILE_OVERRIDE":  `{"policies":{"maxBytes":1,"privacy":"org"}}`,
				"TEST_PROFILE_MAX_BYTES": "2",
			},
			expected: &profile.Profile{
				Policies: map[string]any{profile.PolicyMaxBytes: 2, profile.PolicyPrivacy: "org"},
			},
		},
		{
			name:     "extends is not an environment knob",
			env:      map[string]string{"TEST_PROFILE_EXTENDS": "base"},
			expected: nil,
		},
		{
			name:     "invalid values are ignored",
			env:      map[string]string{"TEST_PROFILE_OVERRIDE": `[1,2]`, "TEST_PROFILE_MAX_BYTES": "lots"},
			expected: nil,
		},
	}

	for _, testCase := range tests {
		testCase := testCase

		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, mapper(testCase.env))
		})
	}
}

func TestParseAssignments(t *testing.T) {
	t.Parallel()

	partial, err := profile.ParseAssignments([]string{
		"id=custom",
		"sources.docs=docs/**, guides/**",
		"policies.maxBytes=4000000",
		"policies.ratio=0.5",
		"policies.privacy=public",
		"meta.reviewed=true",
		"boundaries.zone=internal",
	})

	require.NoError(t, err)
	require.NotNil(t, partial)
	assert.Equal(t, "custom", partial.ID)
	assert.Nil(t, partial.Extends)
	assert.Equal(t, []string{"docs/**", "guides/**"}, partial.Sources.Docs)
	assert.Equal(t, map[string]any{"maxBytes": 4000000, "ratio": 0.5, "privacy": "public"}, partial.Policies)
	assert.Equal(t, map[string]any{"reviewed": true}, partial.Meta)
	assert.Equal(t, map[string]any{"zone": "internal"}, partial.Boundaries)
}

func TestParseAssignmentsLaterWins(t *testing.T) {
	t.Parallel()

	partial, err := profile.ParseAssignments([]string{"policies.maxBytes=1", "policies.maxBytes=2"})

	require.NoError(t, err)
	assert.Equal(t, 2, partial.Policies["maxBytes"])
}

func TestParseAssignmentsEmpty(t *testing.T) {
	t.Parallel()

	partial, err := profile.ParseAssignments(nil)

	require.NoError(t, err)
	assert.Nil(t, partial)
}

func TestParseAssignmentsErrors(t *testing.T) {
	t.Parallel()

	for _, assignment := range []string{"novalue", "=x", "unknown.key=1", "sources.bogus=x", "policies.=1", "sources=x", "extends=base"} {
		assignment := assignment

		t.Run(assignment, func(t *testing.T) {
			t.Parallel()

			_, err := profile.ParseAssignments([]string{assignment})

			require.ErrorIs(t, err, profile.ErrInvalidAssignment)
		})
	}
}
