package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckConfigReadsEnvFile(t *testing.T) {
	for _, k := range []string{"AZURE_OPENAI_ENDPOINT", "AZURE_OPENAI_API_KEY", "AZURE_OPENAI_DEPLOYMENT", "AZURE_DOCS_ENDPOINT", "AZURE_DOCS_API_KEY"} {
		// godotenv never overrides variables already present, even empty ones.
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("AZURE_DOCS_ENDPOINT=https://docs.example.com\nAZURE_DOCS_API_KEY=abc\n"), 0o600))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"check-config", "--env-file", envFile})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "openai (gpt-4): missing credentials")
	assert.Contains(t, out.String(), "document intelligence: configured")
	assert.Contains(t, out.String(), "local fallbacks")
}

func TestServeFlagsRegistered(t *testing.T) {
	cmd := newRootCmd()
	serve, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)
	for _, name := range []string{"addr", "serve-static", "static-dir"} {
		assert.NotNil(t, serve.Flags().Lookup(name), name)
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("env-file"))
}
