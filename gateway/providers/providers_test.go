package providers_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailored-agentic-units/goagent/gateway"
	"github.com/tailored-agentic-units/goagent/gateway/anthropic"
	"github.com/tailored-agentic-units/goagent/gateway/openai"
	"github.com/tailored-agentic-units/goagent/gateway/providers"
)

func TestNew(t *testing.T) {
	base := gateway.Config{Model: "m", APIKey: "k"}

	tests := []struct {
		provider string
		check    func(t *testing.T, gw gateway.Gateway)
	}{
		{"", func(t *testing.T, gw gateway.Gateway) { assert.IsType(t, &openai.Gateway{}, gw) }},
		{"OpenAI", func(t *testing.T, gw gateway.Gateway) { assert.IsType(t, &openai.Gateway{}, gw) }},
		{"anthropic", func(t *testing.T, gw gateway.Gateway) { assert.IsType(t, &anthropic.Gateway{}, gw) }},
	}

	for _, tt := range tests {
		t.Run("provider="+tt.provider, func(t *testing.T) {
			cfg := base
			cfg.Provider = tt.provider
			gw, err := providers.New(context.Background(), cfg)
			require.NoError(t, err)
			tt.check(t, gw)
		})
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := providers.New(context.Background(), gateway.Config{Provider: "mystery", Model: "m", APIKey: "k"})
	assert.ErrorIs(t, err, gateway.ErrUnknownProvider)
}

func TestNew_MissingCredentials(t *testing.T) {
	_, err := providers.New(context.Background(), gateway.Config{Provider: gateway.ProviderGemini, Model: "m"})
	assert.ErrorIs(t, err, gateway.ErrMissingAPIKey)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"anthropic", "gemini", "openai"}, providers.Names())
}
