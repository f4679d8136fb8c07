package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiTestConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	cfg.APIKey = "test-key"
	return cfg
}

func geminiReply(text string) geminiResponse {
	var r geminiResponse
	r.ModelVersion = "gemini-2.5-flash-001"
	r.Candidates = append(r.Candidates, struct {
		Content geminiContent `json:"content"`
	}{Content: geminiContent{Role: "model", Parts: []geminiPart{{Text: text}}}})
	return r
}

func TestGeminiClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.SystemInstruction)
		assert.Equal(t, "system prompt", req.SystemInstruction.Parts[0].Text)
		require.Len(t, req.Contents, 3)
		assert.Equal(t, "user", req.Contents[0].Role)
		assert.Equal(t, "model", req.Contents[1].Role)
		assert.Equal(t, "why is it yellow?", req.Contents[2].Parts[0].Text)
		require.NotNil(t, req.GenerationConfig.Temperature)
		assert.Equal(t, 0.7, *req.GenerationConfig.Temperature)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiReply("Check nitrogen."))
	}))
	defer srv.Close()

	client := NewGeminiClient(geminiTestConfig(srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskChat,
		SystemPrompt: "system prompt",
		History: []Message{
			{Role: RoleUser, Text: "hello"},
			{Role: RoleModel, Text: "hi"},
		},
		UserPrompt: "why is it yellow?",
	})

	require.NoError(t, err)
	assert.Equal(t, "Check nitrogen.", resp.Text)
	assert.Equal(t, "gemini-2.5-flash-001", resp.Model)
	assert.GreaterOrEqual(t, resp.LatencyMs, int64(0))
}

func TestGeminiClient_Generate_MissingKey(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	cfg := geminiTestConfig(srv.URL)
	cfg.APIKey = ""

	var captured LLMCallEvent
	client := NewGeminiClient(cfg, &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskAdvise, UserPrompt: "q"})

	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Zero(t, calls.Load(), "no request without a key")
	assert.Equal(t, "MISSING_KEY", captured.ErrorCode)
	assert.False(t, client.Available(context.Background()))
}

func TestGeminiClient_Generate_EmptyReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiReply("   "))
	}))
	defer srv.Close()

	client := NewGeminiClient(geminiTestConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskAdvise, UserPrompt: "q"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGeminiClient_Generate_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client := NewGeminiClient(geminiTestConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskAdvise, UserPrompt: "q"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGeminiClient_Generate_ServerErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"boom"}}`))
	}))
	defer srv.Close()

	client := NewGeminiClient(geminiTestConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskAdvise, UserPrompt: "q"})

	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGeminiClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := geminiTestConfig(srv.URL)
	cfg.TimeoutMs = 50

	var captured LLMCallEvent
	client := NewGeminiClient(cfg, &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskAdvise, UserPrompt: "q"})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.False(t, captured.Success)
	assert.Equal(t, "TIMEOUT", captured.ErrorCode)
}

func TestGeminiClient_Generate_Unavailable(t *testing.T) {
	cfg := geminiTestConfig("http://127.0.0.1:1") // nothing listening
	cfg.TimeoutMs = 1000

	client := NewGeminiClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskAdvise, UserPrompt: "q"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGeminiClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewGeminiClient(geminiTestConfig(srv.URL), NoopObserver{})
	assert.True(t, client.Available(context.Background()))
}

func TestOllamaClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.False(t, req.Stream)
		require.Len(t, req.Messages, 4)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "assistant", req.Messages[2].Role)
		assert.Equal(t, "user prompt", req.Messages[3].Content)

		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Message: ollamaMessage{Role: "assistant", Content: "ok"}})
	}))
	defer srv.Close()

	cfg := LLMConfig{Provider: ProviderOllama, Endpoint: srv.URL}.WithProviderDefaults()
	client := NewOllamaClient(cfg, NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskChat,
		SystemPrompt: "system prompt",
		History:      []Message{{Role: RoleUser, Text: "a"}, {Role: RoleModel, Text: "b"}},
		UserPrompt:   "user prompt",
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, "llama3.2", resp.Model)
}

func TestOllamaClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := LLMConfig{Provider: ProviderOllama, Endpoint: srv.URL}.WithProviderDefaults()
	assert.True(t, NewOllamaClient(cfg, nil).Available(context.Background()))

	cfg.Endpoint = "http://127.0.0.1:1"
	assert.False(t, NewOllamaClient(cfg, nil).Available(context.Background()))
}

func TestNewClient(t *testing.T) {
	c, err := NewClient(LLMConfig{Provider: ProviderGemini}, nil)
	require.NoError(t, err)
	assert.IsType(t, &geminiClient{}, c)

	c, err = NewClient(LLMConfig{Provider: ProviderOllama}, nil)
	require.NoError(t, err)
	assert.IsType(t, &ollamaClient{}, c)

	_, err = NewClient(LLMConfig{Provider: "carrier-pigeon"}, nil)
	assert.Error(t, err)
}

func TestMultiObserver(t *testing.T) {
	var a, b int
	m := MultiObserver{
		&captureObserver{fn: func(LLMCallEvent) { a++ }},
		nil,
		&captureObserver{fn: func(LLMCallEvent) { b++ }},
	}
	m.OnCallComplete(LLMCallEvent{Success: true})
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}

type captureObserver struct {
	fn func(LLMCallEvent)
}

func (o *captureObserver) OnCallComplete(e LLMCallEvent) { o.fn(e) }
