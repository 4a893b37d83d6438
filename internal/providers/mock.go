package providers

import (
	"context"
	"sync"

	"loanwise/internal/documents"
)

// MockChat returns a canned reply or error and records every request.
type MockChat struct {
	Text         string
	Err          error
	Unconfigured bool

	mu       sync.Mutex
	requests []ChatRequest
}

func (m *MockChat) Complete(ctx context.Context, req ChatRequest) (ChatResponse, ProviderInfo, error) {
	_ = ctx
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	info := ProviderInfo{Name: "mock", Model: "mock-chat-v1"}
	if m.Err != nil {
		return ChatResponse{}, info, m.Err
	}
	return ChatResponse{Text: m.Text}, info, nil
}

func (m *MockChat) Configured() bool { return !m.Unconfigured }

func (m *MockChat) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func (m *MockChat) Requests() []ChatRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ChatRequest(nil), m.requests...)
}

// MockDocuments returns a canned analysis result or error.
type MockDocuments struct {
	Result       *documents.AnalyzeResult
	Err          error
	Unconfigured bool

	mu       sync.Mutex
	requests []AnalyzeRequest
}

func (m *MockDocuments) Analyze(ctx context.Context, req AnalyzeRequest) (*documents.AnalyzeResult, ProviderInfo, error) {
	_ = ctx
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	info := ProviderInfo{Name: "mock", Model: "mock-docs-v1"}
	if m.Err != nil {
		return nil, info, m.Err
	}
	return m.Result, info, nil
}

func (m *MockDocuments) Configured() bool { return !m.Unconfigured }

func (m *MockDocuments) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func (m *MockDocuments) Requests() []AnalyzeRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]AnalyzeRequest(nil), m.requests...)
}
