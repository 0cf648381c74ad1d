package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Neutralize ambient credentials so the provider default holds.
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "genelab", cfg.Source.Driver)
	assert.Equal(t, "static", cfg.Summarizer.Provider)
	assert.True(t, cfg.Cache.Enabled)
}

func TestServerEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9123, cfg.Server.Port)
}

func TestServerPortEnvOverrideInvalid(t *testing.T) {
	// A malformed port keeps the default instead of corrupting config.
	t.Setenv("SERVER_PORT", "not-a-port")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
}

func TestOpenAIKeyFlipsProvider(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Summarizer.Provider)
	assert.Equal(t, "sk-test", cfg.Summarizer.APIKey)
}

func TestSourceEnvOverrides(t *testing.T) {
	t.Setenv("SOURCE_DRIVER", "local")
	t.Setenv("GENELAB_SEARCH_URL", "http://localhost:9999/search")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Source.Driver)
	assert.Equal(t, "http://localhost:9999/search", cfg.Source.SearchURL)
}
