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

	"loanwise/internal/documents"
)

const (
	azureDocsName         = "azure-document-intelligence"
	DefaultDocsModelID    = "prebuilt-document"
	defaultPollInterval   = time.Second
	subscriptionKeyHeader = "Ocp-Apim-Subscription-Key"
)

type AzureDocsConfig struct {
	Endpoint     string
	APIKey       string
	APIVersion   string
	ModelID      string
	PollInterval time.Duration
	Client       *http.Client
}

// AzureDocsProvider submits documents to Azure Document Intelligence and polls
// the returned operation until it reaches a terminal status.
type AzureDocsProvider struct {
	endpoint     string
	apiKey       string
	apiVersion   string
	modelID      string
	pollInterval time.Duration
	client       *http.Client
}

func NewAzureDocsProvider(cfg AzureDocsConfig) *AzureDocsProvider {
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	modelID := cfg.ModelID
	if modelID == "" {
		modelID = DefaultDocsModelID
	}
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &AzureDocsProvider{
		endpoint:     strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/"),
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiVersion:   cfg.APIVersion,
		modelID:      modelID,
		pollInterval: interval,
		client:       client,
	}
}

func (d *AzureDocsProvider) Configured() bool {
	return d.endpoint != "" && d.apiKey != ""
}

func (d *AzureDocsProvider) info() ProviderInfo {
	return ProviderInfo{Name: azureDocsName, Model: d.modelID}
}

func (d *AzureDocsProvider) analyzeURL() string {
	return d.endpoint + "/formrecognizer/documentModels/" + url.PathEscape(d.modelID) +
		":analyze?api-version=" + url.QueryEscape(d.apiVersion)
}

func (d *AzureDocsProvider) Analyze(ctx context.Context, req AnalyzeRequest) (*documents.AnalyzeResult, ProviderInfo, error) {
	info := d.info()
	if !d.Configured() {
		return nil, info, fmt.Errorf("%w: document intelligence: %w", ErrUpstreamUnavailable, ErrNotConfigured)
	}
	operation, err := d.submit(ctx, req)
	if err != nil {
		return nil, info, err
	}
	result, err := d.poll(ctx, operation)
	if err != nil {
		return nil, info, err
	}
	return result, info, nil
}

func (d *AzureDocsProvider) submit(ctx context.Context, req AnalyzeRequest) (string, error) {
	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, d.analyzeURL(), bytes.NewReader(req.Data))
	if err != nil {
		return "", fmt.Errorf("%w: build analyze request: %w", ErrUpstreamUnavailable, err)
	}
	httpReq.Header.Set(subscriptionKeyHeader, d.apiKey)
	httpReq.Header.Set("Content-Type", contentType)
	resp, err := d.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: document analyze request failed: %w", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%w: document analyze error %d: %s", ErrUpstreamUnavailable, resp.StatusCode, string(body))
	}
	operation := strings.TrimSpace(resp.Header.Get("Operation-Location"))
	if operation == "" {
		return "", fmt.Errorf("%w: document analyze response missing Operation-Location", ErrUpstreamUnavailable)
	}
	return operation, nil
}

type analyzeOperation struct {
	Status        string                   `json:"status"`
	AnalyzeResult *documents.AnalyzeResult `json:"analyzeResult"`
	Error         *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (d *AzureDocsProvider) poll(ctx context.Context, operation string) (*documents.AnalyzeResult, error) {
	for {
		op, err := d.fetchOperation(ctx, operation)
		if err != nil {
			return nil, err
		}
		switch strings.ToLower(op.Status) {
		case "succeeded":
			if op.AnalyzeResult == nil {
				return &documents.AnalyzeResult{}, nil
			}
			return op.AnalyzeResult, nil
		case "failed", "canceled":
			msg := op.Status
			if op.Error != nil {
				msg = fmt.Sprintf("%s: %s %s", op.Status, op.Error.Code, op.Error.Message)
			}
			return nil, fmt.Errorf("%w: document analysis %s", ErrUpstreamUnavailable, msg)
		}

		timer := time.NewTimer(d.pollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("%w: document analysis polling: %w", ErrUpstreamUnavailable, ctx.Err())
		case <-timer.C:
		}
	}
}

func (d *AzureDocsProvider) fetchOperation(ctx context.Context, operation string) (analyzeOperation, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, operation, nil)
	if err != nil {
		return analyzeOperation{}, fmt.Errorf("%w: build poll request: %w", ErrUpstreamUnavailable, err)
	}
	httpReq.Header.Set(subscriptionKeyHeader, d.apiKey)
	resp, err := d.client.Do(httpReq)
	if err != nil {
		return analyzeOperation{}, fmt.Errorf("%w: document poll request failed: %w", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return analyzeOperation{}, fmt.Errorf("%w: document poll error %d: %s", ErrUpstreamUnavailable, resp.StatusCode, string(body))
	}
	var op analyzeOperation
	if err := json.Unmarshal(body, &op); err != nil {
		return analyzeOperation{}, fmt.Errorf("%w: decode poll response: %w", ErrUpstreamUnavailable, err)
	}
	return op, nil
}
