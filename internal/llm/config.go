package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskAdvise TaskType = "advise"
	TaskChat   TaskType = "chat"
)

// Provider names the text-generation backend.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOllama Provider = "ollama"
)

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Provider    Provider `yaml:"provider"`
	LogCalls    bool     `yaml:"log_calls"`
	Endpoint    string   `yaml:"endpoint"`
	Model       string   `yaml:"model"`
	APIKey      string   `yaml:"api_key"`
	Temperature float64  `yaml:"temperature"`
	MaxTokens   int      `yaml:"max_tokens"` // 0 leaves the provider default
	TimeoutMs   int      `yaml:"timeout_ms"`
}

const (
	defaultGeminiEndpoint = "https://generativelanguage.googleapis.com"
	defaultGeminiModel    = "gemini-2.5-flash"
	defaultOllamaEndpoint = "http://localhost:11434"
	defaultOllamaModel    = "llama3.2"
)

// DefaultConfig returns the Gemini configuration used when nothing is set.
// The API key is left empty.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:    ProviderGemini,
		Endpoint:    defaultGeminiEndpoint,
		Model:       defaultGeminiModel,
		Temperature: 0.7,
		TimeoutMs:   30000,
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	return cfg
}

// ApplyEnv overlays environment variables onto cfg. Switching provider
// without an explicit endpoint or model also switches their defaults.
func ApplyEnv(cfg *LLMConfig) {
	if v := os.Getenv("SPIRULINA_LLM_PROVIDER"); v != "" {
		p := Provider(strings.ToLower(v))
		if p != cfg.Provider {
			cfg.Provider = p
			cfg.Endpoint, cfg.Model = providerDefaults(p)
		}
	}
	if v := os.Getenv("SPIRULINA_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("SPIRULINA_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("SPIRULINA_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("SPIRULINA_LLM_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 2 {
			cfg.Temperature = f
		}
	}
	if v := os.Getenv("SPIRULINA_LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxTokens = n
		}
	}
	if v := os.Getenv("SPIRULINA_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	for _, name := range []string{"SPIRULINA_LLM_API_KEY", "GEMINI_API_KEY", "API_KEY"} {
		if v := os.Getenv(name); v != "" {
			cfg.APIKey = v
			break
		}
	}
}

func providerDefaults(p Provider) (endpoint, model string) {
	if p == ProviderOllama {
		return defaultOllamaEndpoint, defaultOllamaModel
	}
	return defaultGeminiEndpoint, defaultGeminiModel
}

// WithProviderDefaults fills an empty endpoint or model from the provider.
func (c LLMConfig) WithProviderDefaults() LLMConfig {
	if c.Provider == "" {
		c.Provider = ProviderGemini
	}
	endpoint, model := providerDefaults(c.Provider)
	if c.Endpoint == "" {
		c.Endpoint = endpoint
	}
	if c.Model == "" {
		c.Model = model
	}
	if c.TimeoutMs <= 0 {
		c.TimeoutMs = DefaultConfig().TimeoutMs
	}
	return c
}
