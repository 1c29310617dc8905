package gateway

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Providers understood by providers.New.
const (
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvProvider = "LLM_PROVIDER"
	EnvModel    = "LLM_MODEL_ID"
	EnvAPIKey   = "LLM_API_KEY"
	EnvBaseURL  = "LLM_BASE_URL"
	EnvTimeout  = "LLM_TIMEOUT"
)

const (
	defaultTimeoutSeconds = 60
	defaultMaxTokens      = 4096
	defaultMaxRetries     = 2
)

// Config holds completion gateway parameters.
type Config struct {
	Provider       string  `json:"provider,omitempty" yaml:"provider,omitempty"`
	Model          string  `json:"model,omitempty" yaml:"model,omitempty"`
	APIKey         string  `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL        string  `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	TimeoutSeconds int     `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
	Temperature    float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	MaxTokens      int     `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
	MaxRetries     int     `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`
}

// DefaultConfig returns an OpenAI-compatible configuration with a 60 second
// timeout and deterministic sampling. Model and APIKey must still be supplied.
func DefaultConfig() Config {
	return Config{
		Provider:       ProviderOpenAI,
		TimeoutSeconds: defaultTimeoutSeconds,
		MaxTokens:      defaultMaxTokens,
		MaxRetries:     defaultMaxRetries,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Provider != "" {
		c.Provider = source.Provider
	}
	if source.Model != "" {
		c.Model = source.Model
	}
	if source.APIKey != "" {
		c.APIKey = source.APIKey
	}
	if source.BaseURL != "" {
		c.BaseURL = source.BaseURL
	}
	if source.TimeoutSeconds > 0 {
		c.TimeoutSeconds = source.TimeoutSeconds
	}
	if source.Temperature > 0 {
		c.Temperature = source.Temperature
	}
	if source.MaxTokens > 0 {
		c.MaxTokens = source.MaxTokens
	}
	if source.MaxRetries > 0 {
		c.MaxRetries = source.MaxRetries
	}
}

// ApplyEnv fills fields that are still empty from the environment, using
// lookup (normally os.LookupEnv). Explicit configuration always wins.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) string {
		v, ok := lookup(key)
		if !ok {
			return ""
		}
		return strings.TrimSpace(v)
	}

	if v := get(EnvProvider); v != "" && c.Provider == "" {
		c.Provider = v
	}
	if v := get(EnvModel); v != "" && c.Model == "" {
		c.Model = v
	}
	if v := get(EnvAPIKey); v != "" && c.APIKey == "" {
		c.APIKey = v
	}
	if v := get(EnvBaseURL); v != "" && c.BaseURL == "" {
		c.BaseURL = v
	}
	if v := get(EnvTimeout); v != "" && c.TimeoutSeconds == 0 {
		secs, err := strconv.Atoi(v)
		if err != nil || secs < 0 {
			return fmt.Errorf("invalid %s %q: must be a non-negative integer", EnvTimeout, v)
		}
		c.TimeoutSeconds = secs
	}
	return nil
}

// Validate reports missing required fields.
func (c *Config) Validate() error {
	if c.Model == "" {
		return ErrMissingModel
	}
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// Timeout returns the per-call timeout, or zero for none.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
