package providers

import (
	"net/http"

	"loanwise/internal/config"
)

// ServiceStatus reports which upstream services have credentials configured.
type ServiceStatus struct {
	OpenAI               bool `json:"openai"`
	DocumentIntelligence bool `json:"documentIntelligence"`
}

type Manager struct {
	chat ChatProvider
	docs DocumentAnalyzer
}

// NewManager builds the Azure clients from cfg. Both share one HTTP client with
// the configured timeout.
func NewManager(cfg config.Config) *Manager {
	client := &http.Client{Timeout: cfg.HTTPTimeout()}
	return &Manager{
		chat: NewAzureOpenAIProvider(AzureOpenAIConfig{
			Endpoint:   cfg.OpenAIEndpoint,
			APIKey:     cfg.OpenAIAPIKey,
			Deployment: cfg.OpenAIDeployment,
			APIVersion: cfg.OpenAIAPIVersion,
			Client:     client,
		}),
		docs: NewAzureDocsProvider(AzureDocsConfig{
			Endpoint:     cfg.DocsEndpoint,
			APIKey:       cfg.DocsAPIKey,
			APIVersion:   cfg.DocsAPIVersion,
			PollInterval: cfg.DocsPollInterval(),
			Client:       client,
		}),
	}
}

func NewManagerWith(chat ChatProvider, docs DocumentAnalyzer) *Manager {
	return &Manager{chat: chat, docs: docs}
}

func (m *Manager) Chat() ChatProvider { return m.chat }

func (m *Manager) Documents() DocumentAnalyzer { return m.docs }

func (m *Manager) Status() ServiceStatus {
	return ServiceStatus{
		OpenAI:               m.chat != nil && m.chat.Configured(),
		DocumentIntelligence: m.docs != nil && m.docs.Configured(),
	}
}
