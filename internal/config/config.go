package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultOpenAIDeployment = "gpt-4"
	DefaultOpenAIAPIVersion = "2024-02-15-preview"
	DefaultDocsAPIVersion   = "2023-07-31"
)

type Config struct {
	APIAddr         string
	ServeStatic     bool
	StaticDir       string
	MaxUploadMB     int
	HTTPTimeoutSecs int
	DocsPollMillis  int
	LogLevel        string
	LogFormat       string

	OpenAIEndpoint   string
	OpenAIAPIKey     string
	OpenAIDeployment string
	OpenAIAPIVersion string
	// OpenAITemperature applies to both chat calls.
	OpenAITemperature float64

	DocsEndpoint   string
	DocsAPIKey     string
	DocsAPIVersion string
}

func Load() Config {
	return Config{
		APIAddr:         getenv("LOANWISE_API_ADDR", ":5000"),
		ServeStatic:     getenvBool("LOANWISE_SERVE_STATIC", false),
		StaticDir:       getenv("LOANWISE_STATIC_DIR", "./public"),
		MaxUploadMB:     getenvInt("LOANWISE_MAX_UPLOAD_MB", 10),
		HTTPTimeoutSecs: getenvInt("LOANWISE_HTTP_TIMEOUT_SECONDS", 60),
		DocsPollMillis:  getenvInt("LOANWISE_DOCS_POLL_INTERVAL_MS", 1000),
		LogLevel:        getenv("LOANWISE_LOG_LEVEL", "info"),
		LogFormat:       getenv("LOANWISE_LOG_FORMAT", "json"),

		OpenAIEndpoint:    strings.TrimSpace(os.Getenv("AZURE_OPENAI_ENDPOINT")),
		OpenAIAPIKey:      strings.TrimSpace(os.Getenv("AZURE_OPENAI_API_KEY")),
		OpenAIDeployment:  getenv("AZURE_OPENAI_DEPLOYMENT", DefaultOpenAIDeployment),
		OpenAIAPIVersion:  getenv("AZURE_OPENAI_API_VERSION", DefaultOpenAIAPIVersion),
		OpenAITemperature: getenvFloat("LOANWISE_OPENAI_TEMPERATURE", 0.7),

		DocsEndpoint:   strings.TrimSpace(os.Getenv("AZURE_DOCS_ENDPOINT")),
		DocsAPIKey:     strings.TrimSpace(os.Getenv("AZURE_DOCS_API_KEY")),
		DocsAPIVersion: getenv("AZURE_DOCS_API_VERSION", DefaultDocsAPIVersion),
	}
}

func (c Config) MaxUploadBytes() int64 {
	mb := c.MaxUploadMB
	if mb <= 0 {
		mb = 10
	}
	return int64(mb) << 20
}

func (c Config) HTTPTimeout() time.Duration {
	if c.HTTPTimeoutSecs <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.HTTPTimeoutSecs) * time.Second
}

func (c Config) DocsPollInterval() time.Duration {
	if c.DocsPollMillis <= 0 {
		return time.Second
	}
	return time.Duration(c.DocsPollMillis) * time.Millisecond
}

func getenv(k, fallback string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(k string, fallback bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return b
}

func getenvFloat(k string, fallback float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fallback
	}
	return f
}
