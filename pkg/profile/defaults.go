package profile

// Built-in defaults.
const (
	// DefaultID is the id of the built-in default profile and the id resolved when none is given.
	DefaultID = "default"
	// DefaultSchemaVersion is the schema version of the built-in default profile.
	DefaultSchemaVersion = "1.0.0"
	// DefaultProfilesDir is the profiles directory, relative to the repository root.
	DefaultProfilesDir = "profiles"
	// DefaultMaxBytes is the default value of the maxBytes policy.
	DefaultMaxBytes = 1500000
	// DefaultPrivacy is the default value of the privacy policy.
	DefaultPrivacy = "team"
)

// Policy keys set by the default profile.
const (
	PolicyMaxBytes = "maxBytes"
	PolicyPrivacy  = "privacy"
)

// Default returns a fresh copy of the built-in default profile, the floor of every resolution.
func Default() Profile {
	return Profile{
		ID:            DefaultID,
		SchemaVersion: DefaultSchemaVersion,
		Sources: &Sources{
			Rules: []string{"rules/**"},
			ADR:   []string{"adr/**"},
			Docs:  []string{"docs/**"},
			API:   []string{"api/**"},
			Src:   []string{"src/**"},
			Tests: []string{"tests/**"},
		},
		Policies: map[string]any{
			PolicyMaxBytes: DefaultMaxBytes,
			PolicyPrivacy:  DefaultPrivacy,
		},
	}
}
