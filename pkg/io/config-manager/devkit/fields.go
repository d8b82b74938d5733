package configmanager

import (
	"github.com/kb-labs/devkit/pkg/profile"
)

// Configuration keys as written in devkit.yaml.
const (
	KeyRepoRoot    = "repoRoot"
	KeyProfilesDir = "profilesDir"
	KeyProfile     = "profile"
	KeyEnvPrefix   = "envPrefix"
	KeyOutput      = "output"
	KeyCatalogs    = "catalogs"
)

// EnvPrefix prefixes the environment variables read for each setting.
const EnvPrefix = "DEVKIT"

// Output formats.
const (
	OutputAuto = "auto"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Field describes one setting and the flag that overrides it.
type Field struct {
	Key         string
	Flag        string
	Env         string
	Default     any
	Description string
}

// Fields lists every setting the manager knows.
func Fields() []Field {
	return []Field{
		{
			Key:         KeyRepoRoot,
			Flag:        "repo-root",
			Env:         EnvPrefix + "_REPO_ROOT",
			Default:     "",
			Description: "Repository root; profiles are looked up relative to it (default: working directory)",
		},
		{
			Key:         KeyProfilesDir,
			Flag:        "profiles-dir",
			Env:         EnvPrefix + "_PROFILES_DIR",
			Default:     profile.DefaultProfilesDir,
			Description: "Profiles directory, relative to the repository root unless absolute",
		},
		{
			Key:         KeyProfile,
			Flag:        "profile",
			Env:         EnvPrefix + "_PROFILE",
			Default:     profile.DefaultID,
			Description: "Profile id to resolve when none is given as an argument",
		},
		{
			Key:         KeyEnvPrefix,
			Flag:        "env-prefix",
			Env:         EnvPrefix + "_ENV_PREFIX",
			Default:     profile.DefaultEnvPrefix,
			Description: "Prefix of the environment variables that override profile settings",
		},
		{
			Key:         KeyOutput,
			Flag:        "output",
			Env:         EnvPrefix + "_OUTPUT",
			Default:     OutputAuto,
			Description: "Output format: json, yaml or auto (yaml on a terminal, json otherwise)",
		},
		{
			Key:         KeyCatalogs,
			Flag:        "catalog",
			Env:         EnvPrefix + "_CATALOGS",
			Default:     []string{},
			Description: "YAML preset catalog to load in addition to the built-in presets (repeatable)",
		},
	}
}

// FieldByFlag returns the field bound to a flag name.
func FieldByFlag(flag string) (Field, bool) {
	for _, field := range Fields() {
		if field.Flag == flag {
			return field, true
		}
	}

	return Field{}, false
}
