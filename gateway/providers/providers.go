// Package providers constructs a gateway.Gateway for a configured provider.
package providers

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/tailored-agentic-units/goagent/gateway"
	"github.com/tailored-agentic-units/goagent/gateway/anthropic"
	"github.com/tailored-agentic-units/goagent/gateway/gemini"
	"github.com/tailored-agentic-units/goagent/gateway/openai"
)

// Constructor builds a gateway from resolved configuration.
type Constructor func(ctx context.Context, cfg gateway.Config) (gateway.Gateway, error)

var constructors = map[string]Constructor{
	gateway.ProviderOpenAI: func(_ context.Context, cfg gateway.Config) (gateway.Gateway, error) {
		return openai.New(cfg)
	},
	gateway.ProviderGemini: func(ctx context.Context, cfg gateway.Config) (gateway.Gateway, error) {
		return gemini.New(ctx, cfg)
	},
	gateway.ProviderAnthropic: func(_ context.Context, cfg gateway.Config) (gateway.Gateway, error) {
		return anthropic.New(cfg)
	},
}

// New resolves cfg.Provider (case-insensitive, default openai) and builds
// the matching gateway.
func New(ctx context.Context, cfg gateway.Config) (gateway.Gateway, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if name == "" {
		name = gateway.ProviderOpenAI
	}

	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (known: %s)", gateway.ErrUnknownProvider, cfg.Provider, strings.Join(Names(), ", "))
	}
	return ctor(ctx, cfg)
}

// Names lists the supported provider names in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
