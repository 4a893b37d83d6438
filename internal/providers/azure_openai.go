package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const azureOpenAIName = "azure-openai"

type AzureOpenAIConfig struct {
	Endpoint   string
	APIKey     string
	Deployment string
	APIVersion string
	Client     *http.Client
}

// AzureOpenAIProvider calls the Azure OpenAI chat-completions REST API.
type AzureOpenAIProvider struct {
	endpoint   string
	apiKey     string
	deployment string
	apiVersion string
	client     *http.Client
}

func NewAzureOpenAIProvider(cfg AzureOpenAIConfig) *AzureOpenAIProvider {
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &AzureOpenAIProvider{
		endpoint:   strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		deployment: cfg.Deployment,
		apiVersion: cfg.APIVersion,
		client:     client,
	}
}

func (a *AzureOpenAIProvider) Configured() bool {
	return a.endpoint != "" && a.apiKey != ""
}

func (a *AzureOpenAIProvider) info() ProviderInfo {
	return ProviderInfo{Name: azureOpenAIName, Model: a.deployment}
}

func (a *AzureOpenAIProvider) completionsURL() string {
	return a.endpoint + "/openai/deployments/" + url.PathEscape(a.deployment) +
		"/chat/completions?api-version=" + url.QueryEscape(a.apiVersion)
}

func (a *AzureOpenAIProvider) Complete(ctx context.Context, req ChatRequest) (ChatResponse, ProviderInfo, error) {
	info := a.info()
	if !a.Configured() {
		return ChatResponse{}, info, fmt.Errorf("%w: azure openai: %w", ErrUpstreamUnavailable, ErrNotConfigured)
	}
	payload, err := json.Marshal(map[string]any{
		"messages": []map[string]string{
			{"role": "system", "content": req.System},
			{"role": "user", "content": req.Prompt},
		},
		"max_tokens":  req.MaxTokens,
		"temperature": req.Temperature,
	})
	if err != nil {
		return ChatResponse{}, info, fmt.Errorf("%w: encode chat request: %w", ErrUpstreamUnavailable, err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.completionsURL(), bytes.NewReader(payload))
	if err != nil {
		return ChatResponse{}, info, fmt.Errorf("%w: build chat request: %w", ErrUpstreamUnavailable, err)
	}
	httpReq.Header.Set("api-key", a.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := a.client.Do(httpReq)
	if err != nil {
		return ChatResponse{}, info, fmt.Errorf("%w: azure openai request failed: %w", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return ChatResponse{}, info, fmt.Errorf("%w: azure openai error %d: %s", ErrUpstreamUnavailable, resp.StatusCode, string(body))
	}
	var parsed struct {
		Choices []struct {
			Message struct {
				Content *string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ChatResponse{}, info, fmt.Errorf("%w: decode chat response: %w", ErrUpstreamUnavailable, err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == nil {
		return ChatResponse{}, info, fmt.Errorf("%w: azure openai returned empty choices", ErrUpstreamUnavailable)
	}
	return ChatResponse{Text: *parsed.Choices[0].Message.Content}, info, nil
}
