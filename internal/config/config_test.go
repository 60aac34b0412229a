package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable this package reads and restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvLogLevel, EnvFormsDir, EnvAddr, EnvProvider, EnvModel, EnvSessionCapacity,
		EnvOpenAIKey, EnvOpenAIBaseURL, EnvGeminiKey, EnvGeminiBaseURL,
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, &Config{
		LogLevel:        "info",
		FormsDir:        DefaultFormsDir,
		Addr:            DefaultAddr,
		SessionCapacity: DefaultSessionCapacity,
	}, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvProvider, " OpenAI ")
	t.Setenv(EnvModel, "gpt-4o")
	t.Setenv(EnvOpenAIKey, "sk-test")
	t.Setenv(EnvSessionCapacity, "16")
	t.Setenv(EnvAddr, ":9090")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, 16, cfg.SessionCapacity)
	assert.Equal(t, ":9090", cfg.Addr)
}

func TestFromEnv_BadCapacity(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvSessionCapacity, "lots")

	_, err := FromEnv()
	assert.ErrorContains(t, err, EnvSessionCapacity)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Provider: "claude", SessionCapacity: 1}
	assert.ErrorContains(t, cfg.Validate(), `unknown provider "claude"`)

	cfg = &Config{Provider: ProviderGemini}
	assert.ErrorContains(t, cfg.Validate(), "session capacity must be positive")
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvModel, "from-env")

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("AIFORMS_PROVIDER=gemini\nGEMINI_API_KEY=g-key\nAIFORMS_MODEL=from-file\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "g-key", cfg.Gemini.APIKey)
	assert.Equal(t, "from-env", cfg.Model)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.ErrorContains(t, err, "failed to load env file")

	t.Chdir(t.TempDir())
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultAddr, cfg.Addr)
}
