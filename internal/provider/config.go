package provider

import (
	"fmt"
	"os"
	"strings"

	"github.com/sanix-darker/ghrev/internal/config"
)

// ProviderConfig holds the resolved configuration for instantiating a
// provider, so the CLI layer does not need to know about config paths.
type ProviderConfig struct {
	// Name is the provider name as it appears in the registry.
	Name string

	// Store is a sub-tree scoped to the provider's config block.
	Store *config.Store
}

// ConfigKeyProvider is the config key that holds the active provider name.
const ConfigKeyProvider = "provider"

// ResolveProvider reads the active provider name and its config block from
// the config store. The lookup order is:
//
//  1. --provider CLI flag (already set on the store)
//  2. GHREV_PROVIDER environment variable
//  3. "provider" key in the config file (~/.config/ghrev/config.yml)
//  4. Fallback to "openai"
func ResolveProvider(v *config.Store) ProviderConfig {
	name := v.GetString(ConfigKeyProvider)
	if name == "" {
		name = os.Getenv("GHREV_PROVIDER")
	}
	if name == "" {
		name = "openai"
	}
	name = strings.ToLower(strings.TrimSpace(name))

	sub := v.Sub(fmt.Sprintf("providers.%s", name))
	if sub == nil {
		// No config file entry; create an empty store so that env-var
		// bindings still work.
		sub = config.NewStore()
	}

	bindProviderEnvVars(name, sub)

	return ProviderConfig{Name: name, Store: sub}
}

// bindProviderEnvVars sets up well-known environment variables for each
// provider so that users can configure ghrev entirely through the shell.
func bindProviderEnvVars(name string, v *config.Store) {
	switch name {
	case "openai":
		v.SetDefault("model", "gpt-4o")
		v.SetDefault("base_url", "https://api.openai.com/v1")
		overrideFromEnv(v, "api_key", "OPENAI_API_KEY")
		overrideFromEnv(v, "model", "OPENAI_API_MODEL")
		overrideFromEnv(v, "base_url", "OPENAI_API_BASE")
	case "anthropic", "claude":
		v.SetDefault("model", "claude-sonnet-4-20250514")
		v.SetDefault("base_url", "https://api.anthropic.com")
		overrideFromEnv(v, "api_key", "ANTHROPIC_API_KEY")
		overrideFromEnv(v, "model", "ANTHROPIC_MODEL")
		overrideFromEnv(v, "base_url", "ANTHROPIC_API_BASE")
	default:
		// Generic / OpenAI-compatible: GHREV_<PROVIDER>_* env vars.
		prefix := strings.ToUpper(name)
		overrideFromEnv(v, "api_key", fmt.Sprintf("GHREV_%s_API_KEY", prefix))
		overrideFromEnv(v, "model", fmt.Sprintf("GHREV_%s_MODEL", prefix))
		overrideFromEnv(v, "base_url", fmt.Sprintf("GHREV_%s_BASE_URL", prefix))
	}
}

func overrideFromEnv(v *config.Store, key, envName string) {
	if value := strings.TrimSpace(os.Getenv(envName)); value != "" {
		v.Set(key, value)
	}
}

// SampleConfigYAML returns an example config.yml that documents the
// settings. It is written by "ghrev config init".
func SampleConfigYAML() string {
	return `# ghrev configuration
# Active AI provider: openai, anthropic, or any OpenAI-compatible name.
provider: openai

github:
  # Personal access token used for the GitHub API. The GITHUB_TOKEN
  # environment variable takes precedence.
  token: ""
  # Override for GitHub Enterprise, e.g. https://github.example.com/api/v3
  base_url: ""

providers:
  openai:
    api_key: ""
    model: gpt-4o
  anthropic:
    api_key: ""
    model: claude-sonnet-4-20250514

review:
  # Review lenses applied by the reviewer.
  lenses: [bugs, security, performance, quality]
  # Per-file character budgets.
  max_patch_chars: 20000
  max_content_chars: 30000
  # Group limits per review pass.
  max_group_files: 8
  max_group_chars: 60000
  # PR size breakpoints for depth selection.
  small_max_files: 10
  small_max_changes: 300
  medium_max_files: 20
  medium_max_changes: 1500
  # Extra paths to skip, added to the built-in set.
  skip_patterns: []
`
}
