package profile

import (
	"fmt"
	"maps"
)

// ValidationResult is the outcome of validating a profile.
type ValidationResult struct {
	// OK is true when no diagnostic is error-level.
	OK          bool         `json:"ok"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

func newValidationResult(diagnostics []Diagnostic) ValidationResult {
	if diagnostics == nil {
		diagnostics = []Diagnostic{}
	}

	return ValidationResult{OK: !HasErrors(diagnostics), Diagnostics: diagnostics}
}

// Validate checks a typed profile. Every check runs; nothing short-circuits.
func Validate(profile Profile) ValidationResult {
	var diagnostics []Diagnostic

	if profile.ID == "" {
		diagnostics = append(diagnostics, errorf(CodeIDInvalid, "",
			"profile id must be a non-empty string"))
	}

	if profile.SchemaVersion == "" {
		diagnostics = append(diagnostics, errorf(CodeSchemaVersion, "",
			"schemaVersion must be a non-empty string"))
	}

	return newValidationResult(diagnostics)
}

// ValidateDocument checks a raw, decoded-but-untyped profile document such as
// the contents of a profile file. In addition to the checks of [Validate] it
// reports one SOURCES_SHAPE_INVALID error per source category that is not a
// list.
func ValidateDocument(document map[string]any) ValidationResult {
	shape, cleaned := checkSourcesShape(document)

	profile, err := decode(cleaned)
	if err != nil {
		diagnostics := []Diagnostic{
			errorf(CodeDecodeFailed, err.Error(), "profile document does not match the profile structure"),
		}

		return newValidationResult(append(diagnostics, shape...))
	}

	diagnostics := Validate(profile).Diagnostics

	return newValidationResult(append(diagnostics, shape...))
}

// checkSourcesShape reports every source category of document that is not a
// list and returns a copy of document with those categories removed.
func checkSourcesShape(document map[string]any) ([]Diagnostic, map[string]any) {
	raw, present := document["sources"]
	if !present || raw == nil {
		return nil, document
	}

	sources, isObject := raw.(map[string]any)
	if !isObject {
		cleaned := shallowCopy(document)
		delete(cleaned, "sources")

		return []Diagnostic{
			errorf(CodeSourcesShape, "sources", "sources must be an object, got %s", describe(raw)),
		}, cleaned
	}

	var diagnostics []Diagnostic

	keptSources := shallowCopy(sources)

	for _, category := range Categories() {
		value, ok := sources[string(category)]
		if !ok || isList(value) {
			continue
		}

		diagnostics = append(diagnostics, errorf(CodeSourcesShape, "sources."+string(category),
			"sources.%s must be an array, got %s", category, describe(value)))

		delete(keptSources, string(category))
	}

	if len(diagnostics) == 0 {
		return nil, document
	}

	cleaned := shallowCopy(document)
	cleaned["sources"] = keptSources

	return diagnostics, cleaned
}

func isList(value any) bool {
	switch value.(type) {
	case []any, []string:
		return true
	default:
		return false
	}
}

func describe(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case int, int64, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func shallowCopy(document map[string]any) map[string]any {
	copied := make(map[string]any, len(document))
	maps.Copy(copied, document)

	return copied
}
