package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// geminiClient implements LLMClient using the Gemini generateContent API.
type geminiClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
}

// NewGeminiClient creates an LLMClient for the hosted Gemini API.
func NewGeminiClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &geminiClient{cfg: cfg, http: newHTTPClient(), observer: observer}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

// geminiRequest is the JSON body sent to models/{model}:generateContent.
type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	ModelVersion string `json:"modelVersion"`
}

// text joins the parts of the first candidate.
func (r geminiResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	if c.cfg.APIKey == "" {
		observe(c.observer, c.cfg, req.Task, start, ErrMissingAPIKey)
		return nil, ErrMissingAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	temp := c.cfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := c.cfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}

	body := geminiRequest{
		GenerationConfig: geminiGenerationConfig{Temperature: &temp, MaxOutputTokens: maxTok},
	}
	if req.SystemPrompt != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.SystemPrompt}}}
	}
	for _, m := range req.History {
		body.Contents = append(body.Contents, geminiContent{Role: string(m.Role), Parts: []geminiPart{{Text: m.Text}}})
	}
	body.Contents = append(body.Contents, geminiContent{Role: string(RoleUser), Parts: []geminiPart{{Text: req.UserPrompt}}})

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.cfg.Endpoint, url.PathEscape(c.cfg.Model))
	var resp geminiResponse
	err := classify(ctx, postJSON(ctx, c.http, endpoint, map[string]string{"x-goog-api-key": c.cfg.APIKey}, body, &resp))
	if err == nil && strings.TrimSpace(resp.text()) == "" {
		err = ErrEmptyResponse
	}
	latency := observe(c.observer, c.cfg, req.Task, start, err)
	if err != nil {
		return nil, err
	}

	model := resp.ModelVersion
	if model == "" {
		model = c.cfg.Model
	}
	return &GenerateResponse{Text: resp.text(), Model: model, LatencyMs: latency}, nil
}

// Available reports whether a key is configured and the model can be fetched.
func (c *geminiClient) Available(ctx context.Context) bool {
	if c.cfg.APIKey == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	endpoint := fmt.Sprintf("%s/v1beta/models/%s", c.cfg.Endpoint, url.PathEscape(c.cfg.Model))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false
	}
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
