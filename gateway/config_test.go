package gateway_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailored-agentic-units/goagent/gateway"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := gateway.DefaultConfig()

	assert.Equal(t, gateway.ProviderOpenAI, cfg.Provider)
	assert.Equal(t, 60*time.Second, cfg.Timeout())
	assert.Zero(t, cfg.Temperature)
}

func TestConfig_Merge(t *testing.T) {
	cfg := gateway.DefaultConfig()
	cfg.Merge(&gateway.Config{Provider: gateway.ProviderGemini, Model: "gemini-2.5-flash", TimeoutSeconds: 5})

	assert.Equal(t, gateway.ProviderGemini, cfg.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, 5*time.Second, cfg.Timeout())

	cfg.Merge(&gateway.Config{})
	assert.Equal(t, "gemini-2.5-flash", cfg.Model, "zero values must not overwrite")
}

func TestConfig_ApplyEnv(t *testing.T) {
	cfg := gateway.Config{Model: "explicit"}
	err := cfg.ApplyEnv(envMap(map[string]string{
		gateway.EnvModel:   "from-env",
		gateway.EnvAPIKey:  " sk-test ",
		gateway.EnvBaseURL: "https://llm.example/v1",
		gateway.EnvTimeout: "30",
	}))
	require.NoError(t, err)

	assert.Equal(t, "explicit", cfg.Model, "explicit config wins over env")
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, "https://llm.example/v1", cfg.BaseURL)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
}

func TestConfig_ApplyEnv_BadTimeout(t *testing.T) {
	cfg := gateway.Config{}
	err := cfg.ApplyEnv(envMap(map[string]string{gateway.EnvTimeout: "soon"}))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     gateway.Config
		wantErr error
	}{
		{"missing model", gateway.Config{APIKey: "k"}, gateway.ErrMissingModel},
		{"missing key", gateway.Config{Model: "m"}, gateway.ErrMissingAPIKey},
		{"complete", gateway.Config{Model: "m", APIKey: "k"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
