package permissions

// Built-in preset ids.
const (
	PresetMinimal       = "minimal"
	PresetGitWorkflow   = "gitWorkflow"
	PresetNpmPublish    = "npmPublish"
	PresetFullEnv       = "fullEnv"
	PresetKBPlatform    = "kbPlatform"
	PresetLLMAccess     = "llmAccess"
	PresetVectorStore   = "vectorStore"
	PresetCIEnvironment = "ciEnvironment"
)

// Builtins returns fresh copies of every built-in preset, in a stable order.
func Builtins() []Preset {
	return []Preset{
		Minimal(),
		GitWorkflow(),
		NpmPublish(),
		FullEnv(),
		KBPlatform(),
		LLMAccess(),
		VectorStore(),
		CIEnvironment(),
	}
}

// Minimal grants the locale and path variables most tools need.
func Minimal() Preset {
	return Preset{
		ID:          PresetMinimal,
		Description: "Process basics: PATH, locale and timezone",
		Permissions: Spec{
			Env: &EnvSpec{Read: []string{"PATH", "LANG", "LC_ALL", "TZ", "NODE_ENV"}},
		},
	}
}

// GitWorkflow grants git identity variables, git commands and the common forges.
func GitWorkflow() Preset {
	return Preset{
		ID:          PresetGitWorkflow,
		Description: "Run git against the working tree and push to common forges",
		Permissions: Spec{
			Env:     &EnvSpec{Read: []string{"HOME", "USER", "GIT_*", "SSH_AUTH_SOCK"}},
			Shell:   &ShellSpec{Allow: []string{"git *"}},
			Network: &NetworkSpec{Fetch: []string{"github.com", "gitlab.com", "bitbucket.org"}},
		},
	}
}

// NpmPublish grants registry credentials and publish commands.
func NpmPublish() Preset {
	return Preset{
		ID:          PresetNpmPublish,
		Description: "Publish packages to the npm registry",
		Permissions: Spec{
			Env:     &EnvSpec{Read: []string{"HOME", "NPM_TOKEN", "NODE_AUTH_TOKEN", "npm_config_*"}},
			Shell:   &ShellSpec{Allow: []string{"npm publish *", "pnpm publish *"}},
			Network: &NetworkSpec{Fetch: []string{"registry.npmjs.org"}},
		},
	}
}

// FullEnv grants every environment variable.
func FullEnv() Preset {
	return Preset{
		ID:          PresetFullEnv,
		Description: "Read the whole environment",
		Permissions: Spec{
			Env: &EnvSpec{Read: []string{"*"}},
		},
	}
}

// KBPlatform grants the core platform services.
func KBPlatform() Preset {
	return Preset{
		ID:          PresetKBPlatform,
		Description: "Use the platform cache, state, events and artifacts services",
		Permissions: Spec{
			Platform: Platform{
				"cache":     Allow(true),
				"state":     Allow(true),
				"events":    Allow(true),
				"artifacts": Allow(true),
			},
		},
	}
}

// LLMAccess grants the platform LLM service for any model.
func LLMAccess() Preset {
	return Preset{
		ID:          PresetLLMAccess,
		Description: "Call the platform LLM service",
		Permissions: Spec{
			Platform: Platform{
				"llm": Descriptor(map[string]any{"models": []any{"*"}}),
			},
		},
	}
}

// VectorStore grants the platform vector store for any collection.
func VectorStore() Preset {
	return Preset{
		ID:          PresetVectorStore,
		Description: "Read and write platform vector store collections",
		Permissions: Spec{
			Platform: Platform{
				"vectorStore": Descriptor(map[string]any{"collections": []any{"*"}}),
			},
		},
	}
}

// CIEnvironment grants the variables CI providers set and a ten minute timeout.
func CIEnvironment() Preset {
	timeout := 600000

	return Preset{
		ID:          PresetCIEnvironment,
		Description: "Read CI provider variables",
		Permissions: Spec{
			Env: &EnvSpec{Read: []string{"CI", "GITHUB_*", "GITLAB_*", "RUNNER_*", "BUILD_*"}},
			Quotas: &Quotas{
				TimeoutMs: &timeout,
			},
		},
	}
}
