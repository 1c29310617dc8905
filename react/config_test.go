package react_test

import (
	"testing"

	"github.com/tailored-agentic-units/goagent/react"
)

func TestDefaultConfig(t *testing.T) {
	cfg := react.DefaultConfig()

	if cfg.MaxSteps != 5 {
		t.Errorf("MaxSteps = %d, want 5", cfg.MaxSteps)
	}
	if cfg.FallbackAnswer != react.DefaultFallbackAnswer {
		t.Errorf("FallbackAnswer = %q, want %q", cfg.FallbackAnswer, react.DefaultFallbackAnswer)
	}
	if cfg.MalformedPolicy != react.MalformedSkip {
		t.Errorf("MalformedPolicy = %q, want %q", cfg.MalformedPolicy, react.MalformedSkip)
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := react.DefaultConfig()
	cfg.Merge(&react.Config{MaxSteps: 9, MalformedPolicy: react.MalformedObserve})

	if cfg.MaxSteps != 9 {
		t.Errorf("MaxSteps = %d, want 9", cfg.MaxSteps)
	}
	if cfg.MalformedPolicy != react.MalformedObserve {
		t.Errorf("MalformedPolicy = %q, want observe", cfg.MalformedPolicy)
	}
	if cfg.Template != react.DefaultTemplate {
		t.Error("Template should be untouched by an empty source value")
	}
}
