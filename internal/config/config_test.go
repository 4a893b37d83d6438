package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LOANWISE_API_ADDR", "LOANWISE_SERVE_STATIC", "LOANWISE_STATIC_DIR", "LOANWISE_MAX_UPLOAD_MB",
		"LOANWISE_HTTP_TIMEOUT_SECONDS", "LOANWISE_DOCS_POLL_INTERVAL_MS", "LOANWISE_LOG_LEVEL",
		"LOANWISE_LOG_FORMAT", "LOANWISE_OPENAI_TEMPERATURE",
		"AZURE_OPENAI_ENDPOINT", "AZURE_OPENAI_API_KEY", "AZURE_OPENAI_DEPLOYMENT", "AZURE_OPENAI_API_VERSION",
		"AZURE_DOCS_ENDPOINT", "AZURE_DOCS_API_KEY", "AZURE_DOCS_API_VERSION",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()

	assert.Equal(t, ":5000", cfg.APIAddr)
	assert.False(t, cfg.ServeStatic)
	assert.Equal(t, "./public", cfg.StaticDir)
	assert.Equal(t, DefaultOpenAIDeployment, cfg.OpenAIDeployment)
	assert.Equal(t, DefaultDocsAPIVersion, cfg.DocsAPIVersion)
	assert.InDelta(t, 0.7, cfg.OpenAITemperature, 1e-9)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
	assert.Equal(t, 60*time.Second, cfg.HTTPTimeout())
	assert.Equal(t, time.Second, cfg.DocsPollInterval())
	assert.Empty(t, cfg.OpenAIEndpoint)
	assert.Empty(t, cfg.DocsAPIKey)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOANWISE_API_ADDR", ":9000")
	t.Setenv("LOANWISE_SERVE_STATIC", "true")
	t.Setenv("LOANWISE_MAX_UPLOAD_MB", "2")
	t.Setenv("LOANWISE_DOCS_POLL_INTERVAL_MS", "25")
	t.Setenv("AZURE_OPENAI_ENDPOINT", " https://example.openai.azure.com ")
	t.Setenv("AZURE_OPENAI_API_KEY", "k")
	t.Setenv("AZURE_OPENAI_DEPLOYMENT", "gpt-4o")

	cfg := Load()
	require.Equal(t, "k", cfg.OpenAIAPIKey)
	assert.Empty(t, cfg.DocsEndpoint)
	assert.Equal(t, ":9000", cfg.APIAddr)
	assert.True(t, cfg.ServeStatic)
	assert.Equal(t, "https://example.openai.azure.com", cfg.OpenAIEndpoint)
	assert.Equal(t, "gpt-4o", cfg.OpenAIDeployment)
	assert.Equal(t, int64(2<<20), cfg.MaxUploadBytes())
	assert.Equal(t, 25*time.Millisecond, cfg.DocsPollInterval())
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOANWISE_MAX_UPLOAD_MB", "ten")
	t.Setenv("LOANWISE_SERVE_STATIC", "maybe")
	t.Setenv("LOANWISE_OPENAI_TEMPERATURE", "hot")

	cfg := Load()
	assert.Equal(t, 10, cfg.MaxUploadMB)
	assert.False(t, cfg.ServeStatic)
	assert.InDelta(t, 0.7, cfg.OpenAITemperature, 1e-9)
}
