package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/spirulina/internal/llm"
)

// MockLLMClient returns a canned response or error and records requests.
type MockLLMClient struct {
	Response string
	Err      error
	Down     bool

	mu       sync.Mutex
	requests []llm.GenerateRequest
}

func (m *MockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return &llm.GenerateResponse{Text: m.Response, Model: "mock"}, nil
}

func (m *MockLLMClient) Available(context.Context) bool { return !m.Down }

// Requests returns the requests received so far.
func (m *MockLLMClient) Requests() []llm.GenerateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]llm.GenerateRequest(nil), m.requests...)
}
