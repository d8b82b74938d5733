package profile

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// DefaultSchemaConstraint is the range of profile schema versions this module understands.
const DefaultSchemaConstraint = "^1.0.0"

// CheckSchemaVersion reports a SCHEMA_VERSION_UNSUPPORTED warning when the
// profile's schemaVersion is not a semantic version or falls outside
// constraint. An empty constraint means [DefaultSchemaConstraint]. The check is
// advisory and separate from [Validate]; an empty schemaVersion is left to
// [Validate].
func CheckSchemaVersion(profile Profile, constraint string) ([]Diagnostic, error) {
	if constraint == "" {
		constraint = DefaultSchemaConstraint
	}

	accepted, err := semver.NewConstraint(constraint)
	if err != nil {
		return nil, fmt.Errorf("invalid schema version constraint %q: %w", constraint, err)
	}

	if profile.SchemaVersion == "" {
		return nil, nil
	}

	version, err := semver.NewVersion(profile.SchemaVersion)
	if err != nil {
		return []Diagnostic{warn(CodeVersionUnsupported, err.Error(),
			"schemaVersion %q is not a semantic version", profile.SchemaVersion)}, nil
	}

	if !accepted.Check(version) {
		return []Diagnostic{warn(CodeVersionUnsupported, constraint,
			"schemaVersion %q is outside the supported range", profile.SchemaVersion)}, nil
	}

	return nil, nil
}
