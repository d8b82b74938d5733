package profile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultEnvPrefix is the environment variable prefix read by [EnvOverrides] in the CLI.
const DefaultEnvPrefix = "DEVKIT_PROFILE"

// Environment variable suffixes understood by [EnvOverrides].
const (
	envOverride = "_OVERRIDE"
	envMaxBytes = "_MAX_BYTES"
	envPrivacy  = "_PRIVACY"
)

// ErrInvalidAssignment is returned for malformed key=value profile assignments.
var ErrInvalidAssignment = errors.New("invalid profile assignment")

// envScalars are the convenience variables decoded from strings.
type envScalars struct {
	MaxBytes *int   `json:"maxBytes"`
	Privacy  string `json:"privacy"`
}

// EnvOverrides returns an [EnvMapper] reading variables with the given prefix:
//   - <PREFIX>_OVERRIDE: a JSON partial profile
//   - <PREFIX>_MAX_BYTES: the maxBytes policy
//   - <PREFIX>_PRIVACY: the privacy policy
//
// The scalar variables are layered over the JSON override. Invalid values are
// logged and skipped. A nil logger discards log output.
func EnvOverrides(prefix string, logger logrus.FieldLogger) EnvMapper {
	if logger == nil {
		logger = discardLogger()
	}

	return func(env map[string]string) *Profile {
		var (
			partial Profile
			found   bool
		)

		if raw := strings.TrimSpace(env[prefix+envOverride]); raw != "" {
			document, err := ParseDocument([]byte(raw))
			if err == nil {
				partial, err = decode(document)
			}

			if err != nil {
				logger.WithError(err).WithField("variable", prefix+envOverride).Warn("ignoring invalid profile override")
			} else {
				found = true
			}
		}

		scalars, ok := decodeEnvScalars(prefix, env, logger)
		if ok {
			partial = Merge(partial, scalars)
			found = true
		}

		if !found {
			return nil
		}

		return &partial
	}
}

func decodeEnvScalars(prefix string, env map[string]string, logger logrus.FieldLogger) (Profile, bool) {
	input := map[string]any{}

	if value, ok := env[prefix+envMaxBytes]; ok && value != "" {
		input["maxBytes"] = value
	}

	if value, ok := env[prefix+envPrivacy]; ok && value != "" {
		input["privacy"] = value
	}

	if len(input) == 0 {
		return Profile{}, false
	}

	var scalars envScalars

	err := decodeWeak(input, &scalars)
	if err != nil {
		logger.WithError(err).WithField("prefix", prefix).Warn("ignoring invalid profile environment variables")

		return Profile{}, false
	}

	var partial Profile

	policies := map[string]any{}
	if scalars.MaxBytes != nil {
		policies[PolicyMaxBytes] = *scalars.MaxBytes
	}

	if scalars.Privacy != "" {
		policies[PolicyPrivacy] = scalars.Privacy
	}

	if len(policies) > 0 {
		partial.Policies = policies
	}

	return partial, true
}

// ParseAssignments turns key=value assignments into a partial profile.
//
// Supported keys: id, schemaVersion, sources.<category> (comma list), and
// policies.<key>, meta.<key>, boundaries.<key> (scalar, inferred as int,
// float, bool, or string). Later assignments win. Parents cannot be assigned
// because extends is only followed from profile files.
func ParseAssignments(assignments []string) (*Profile, error) {
	if len(assignments) == 0 {
		return nil, nil //nolint:nilnil // no assignments means no override
	}

	document := map[string]any{}

	for _, assignment := range assignments {
		key, value, ok := strings.Cut(assignment, "=")
		key = strings.TrimSpace(key)

		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q (expected key=value)", ErrInvalidAssignment, assignment)
		}

		err := assign(document, key, value)
		if err != nil {
			return nil, err
		}
	}

	var partial Profile

	err := decodeWeak(document, &partial)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAssignment, err)
	}

	return &partial, nil
}

func assign(document map[string]any, key, value string) error {
	section, field, nested := strings.Cut(key, ".")

	switch {
	case !nested && (section == "id" || section == "schemaVersion"):
		document[section] = value
	case nested && section == "sources" && isCategory(field):
		sources, _ := document["sources"].(map[string]any)
		if sources == nil {
			sources = map[string]any{}
			document["sources"] = sources
		}

		sources[field] = trimAll(strings.Split(value, ","))
	case nested && field != "" && (section == "policies" || section == "meta" || section == "boundaries"):
		values, _ := document[section].(map[string]any)
		if values == nil {
			values = map[string]any{}
			document[section] = values
		}

		values[field] = parseScalar(value)
	default:
		return fmt.Errorf("%w: unsupported key %q", ErrInvalidAssignment, key)
	}

	return nil
}

func isCategory(name string) bool {
	for _, category := range Categories() {
		if string(category) == name {
			return true
		}
	}

	return false
}

func parseScalar(value string) any {
	if integer, err := strconv.Atoi(value); err == nil {
		return integer
	}

	if float, err := strconv.ParseFloat(value, 64); err == nil {
		return float
	}

	switch value {
	case "true":
		return true
	case "false":
		return false
	default:
		return value
	}
}

func trimAll(values []string) []string {
	if values == nil {
		return nil
	}

	trimmed := make([]string, 0, len(values))

	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			trimmed = append(trimmed, value)
		}
	}

	return trimmed
}
