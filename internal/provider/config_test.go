package provider

import (
	"testing"

	"github.com/sanix-darker/ghrev/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProvider_DefaultsToOpenAI(t *testing.T) {
	t.Setenv("GHREV_PROVIDER", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_API_MODEL", "")
	t.Setenv("OPENAI_API_BASE", "")

	pc := ResolveProvider(config.NewStore())
	assert.Equal(t, "openai", pc.Name)
	require.NotNil(t, pc.Store)
	assert.Equal(t, "gpt-4o", pc.Store.GetString("model"))
}

func TestResolveProvider_FromStore(t *testing.T) {
	t.Setenv("GHREV_PROVIDER", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("ANTHROPIC_MODEL", "")
	t.Setenv("ANTHROPIC_API_BASE", "")

	v := config.NewStore()
	v.Set("provider", "Anthropic")
	v.Set("providers.anthropic.api_key", "sk-ant-test")

	pc := ResolveProvider(v)
	assert.Equal(t, "anthropic", pc.Name)
	assert.Equal(t, "sk-ant-test", pc.Store.GetString("api_key"))
	assert.Equal(t, "claude-sonnet-4-20250514", pc.Store.GetString("model"))
}

func TestResolveProvider_EnvOverridesFile(t *testing.T) {
	t.Setenv("GHREV_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	t.Setenv("OPENAI_API_MODEL", "")
	t.Setenv("OPENAI_API_BASE", "")

	v := config.NewStore()
	v.Set("providers.openai.api_key", "sk-from-file")

	pc := ResolveProvider(v)
	assert.Equal(t, "openai", pc.Name)
	assert.Equal(t, "sk-from-env", pc.Store.GetString("api_key"))
}

func TestResolveProvider_GenericEnvVars(t *testing.T) {
	t.Setenv("GHREV_PROVIDER", "groq")
	t.Setenv("GHREV_GROQ_API_KEY", "gsk-test")
	t.Setenv("GHREV_GROQ_MODEL", "llama-3.1-70b")

	pc := ResolveProvider(config.NewStore())
	assert.Equal(t, "groq", pc.Name)
	assert.Equal(t, "gsk-test", pc.Store.GetString("api_key"))
	assert.Equal(t, "llama-3.1-70b", pc.Store.GetString("model"))
}

func TestSampleConfigYAML_Parses(t *testing.T) {
	v := config.NewStore()
	require.NoError(t, v.LoadYAML([]byte(SampleConfigYAML())))
	assert.Equal(t, "openai", v.GetString("provider"))
	assert.Equal(t, 20000, v.GetInt("review.max_patch_chars"))
	assert.Equal(t, "gpt-4o", v.GetString("providers.openai.model"))
}
