package permissions

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kb-labs/devkit/pkg/utils/envvar"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk shape of a preset catalog:
//
//	presets:
//	  - id: deploy
//	    description: Push images
//	    permissions:
//	      env: {read: [REGISTRY_TOKEN]}
//	      network: {fetch: ["${REGISTRY_HOST:-ghcr.io}"]}
type catalogFile struct {
	Presets []Preset `yaml:"presets"`
}

// LoadCatalog reads a YAML preset catalog, expanding ${VAR} and
// ${VAR:-default} placeholders from the process environment first.
func LoadCatalog(path string) ([]Preset, error) {
	data, err := os.ReadFile(path) //nolint:gosec // catalog path is supplied by the user
	if err != nil {
		return nil, fmt.Errorf("read preset catalog %s: %w", path, err)
	}

	presets, err := ParseCatalog(data, os.LookupEnv)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return presets, nil
}

// ParseCatalog decodes catalog content, expanding placeholders with lookup.
// Placeholders are expanded inside scalar values after the YAML is parsed, so
// a substituted value can never change the document structure. A quoted
// placeholder stays a string; a plain one is typed by its expanded value.
// Unknown keys, empty or repeated ids and unknown fs modes are reported as
// [ErrInvalidPreset].
func ParseCatalog(data []byte, lookup envvar.LookupFunc) ([]Preset, error) {
	var document yaml.Node

	err := yaml.Unmarshal(data, &document)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPreset, err)
	}

	if len(document.Content) == 0 {
		return nil, nil //nolint:nilnil // an empty catalog has no presets
	}

	expandPlaceholders(&document, lookup)

	expanded, err := yaml.Marshal(&document)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPreset, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(expanded))
	decoder.KnownFields(true)

	var catalog catalogFile

	err = decoder.Decode(&catalog)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPreset, err)
	}

	seen := make(map[string]struct{}, len(catalog.Presets))

	for index, preset := range catalog.Presets {
		err = validatePreset(preset)
		if err != nil {
			return nil, fmt.Errorf("presets[%d]: %w", index, err)
		}

		if _, dup := seen[preset.ID]; dup {
			return nil, fmt.Errorf("%w: presets[%d]: id %q repeated", ErrInvalidPreset, index, preset.ID)
		}

		seen[preset.ID] = struct{}{}
	}

	return catalog.Presets, nil
}

// expandPlaceholders expands ${VAR} in every scalar value below node. Mapping
// keys are left alone.
func expandPlaceholders(node *yaml.Node, lookup envvar.LookupFunc) {
	switch node.Kind {
	case yaml.ScalarNode:
		if !strings.Contains(node.Value, "${") {
			return
		}

		node.Value = envvar.ExpandWith(node.Value, lookup)

		// Plain scalars are re-resolved from the expanded value.
		if node.Style == 0 {
			node.Tag = ""
		}
	case yaml.MappingNode:
		for index := 1; index < len(node.Content); index += 2 {
			expandPlaceholders(node.Content[index], lookup)
		}
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, child := range node.Content {
			expandPlaceholders(child, lookup)
		}
	}
}

func validatePreset(preset Preset) error {
	if preset.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidPreset)
	}

	fs := preset.Permissions.Fs
	if fs != nil && fs.Mode != "" && fs.Mode != FsRead && fs.Mode != FsReadWrite {
		return fmt.Errorf("%w: %s: fs.mode must be %q or %q, got %q",
			ErrInvalidPreset, preset.ID, FsRead, FsReadWrite, fs.Mode)
	}

	for key, grant := range preset.Permissions.Platform {
		if grant.IsZero() {
			return fmt.Errorf("%w: %s: platform.%s is empty", ErrInvalidPreset, preset.ID, key)
		}
	}

	return nil
}
