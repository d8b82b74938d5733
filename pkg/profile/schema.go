package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"
	santhosh "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/jsonc"
)

// SchemaURL identifies the profile file schema.
const SchemaURL = "https://kb-labs.dev/schemas/profile.schema.json"

var compiledSchema = sync.OnceValues(compileSchema) //nolint:gochecknoglobals // compiled once per process

// JSONSchema returns the JSON Schema describing a profile file.
func JSONSchema() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}

	schema := reflector.Reflect(&Profile{})
	schema.ID = ""
	schema.Title = "Profile"
	schema.Description = "A named bundle of source globs and policy settings. " +
		"Stored as <profilesDir>/<id>/profile.json or <profilesDir>/<id>.profile.json."

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal profile schema: %w", err)
	}

	return data, nil
}

func compileSchema() (*santhosh.Schema, error) {
	data, err := JSONSchema()
	if err != nil {
		return nil, err
	}

	compiler := santhosh.NewCompiler()
	compiler.Draft = santhosh.Draft2020

	err = compiler.AddResource(SchemaURL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load profile schema: %w", err)
	}

	schema, err := compiler.Compile(SchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile profile schema: %w", err)
	}

	return schema, nil
}

// LintDocument validates profile file content against [JSONSchema] and then
// with [ValidateDocument]. Schema violations are reported as
// PROFILE_SCHEMA_VIOLATION errors, one per failing location. Content that is
// not parseable yields a single PROFILE_DECODE_FAILED error.
func LintDocument(data []byte) (ValidationResult, error) {
	schema, err := compiledSchema()
	if err != nil {
		return ValidationResult{}, err
	}

	var instance any

	err = json.Unmarshal(jsonc.ToJSON(data), &instance)
	if err != nil {
		return newValidationResult([]Diagnostic{
			errorf(CodeDecodeFailed, err.Error(), "profile document is not valid JSON"),
		}), nil
	}

	var diagnostics []Diagnostic

	err = schema.Validate(instance)
	if err != nil {
		var validationErr *santhosh.ValidationError
		if !errors.As(err, &validationErr) {
			return ValidationResult{}, fmt.Errorf("validate profile document: %w", err)
		}

		for _, leaf := range leafErrors(validationErr) {
			location := leaf.InstanceLocation
			if location == "" {
				location = "/"
			}

			diagnostics = append(diagnostics, errorf(CodeSchemaViolation, location, "%s", leaf.Message))
		}
	}

	document, err := ParseDocument(data)
	if err != nil {
		return newValidationResult(append(diagnostics,
			errorf(CodeDecodeFailed, err.Error(), "profile document must be a JSON object"))), nil
	}

	return newValidationResult(append(diagnostics, ValidateDocument(document).Diagnostics...)), nil
}

func leafErrors(err *santhosh.ValidationError) []*santhosh.ValidationError {
	if len(err.Causes) == 0 {
		return []*santhosh.ValidationError{err}
	}

	var leaves []*santhosh.ValidationError
	for _, cause := range err.Causes {
		leaves = append(leaves, leafErrors(cause)...)
	}

	return leaves
}
