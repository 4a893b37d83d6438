package providers

import (
	"context"

	"loanwise/internal/documents"
)

type ProviderInfo struct {
	Name  string `json:"name"`
	Model string `json:"model"`
}

type ChatRequest struct {
	Operation   string  `json:"operation"`
	System      string  `json:"system"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"maxTokens"`
	Temperature float64 `json:"temperature"`
}

type ChatResponse struct {
	Text string `json:"text"`
}

type AnalyzeRequest struct {
	Data        []byte
	ContentType string
}

// ChatProvider sends one system+user message pair to a chat-completion service.
type ChatProvider interface {
	Complete(ctx context.Context, req ChatRequest) (ChatResponse, ProviderInfo, error)
	// Configured reports whether credentials are present. It does not contact
	// the service.
	Configured() bool
}

// DocumentAnalyzer submits document bytes to an analysis service and waits for
// the result.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (*documents.AnalyzeResult, ProviderInfo, error)
	Configured() bool
}
