package kernel

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tailored-agentic-units/goagent/gateway"
	"github.com/tailored-agentic-units/goagent/memory"
	"github.com/tailored-agentic-units/goagent/react"
	"github.com/tailored-agentic-units/goagent/reflection"
	"github.com/tailored-agentic-units/goagent/session"
	"github.com/tailored-agentic-units/goagent/toolkit"
)

const defaultObserver = "slog"

// Config holds initialization parameters for all kernel subsystems.
// Each section delegates to that subsystem's Config and Merge.
type Config struct {
	Gateway    gateway.Config    `json:"gateway" yaml:"gateway"`
	ReAct      react.Config      `json:"react" yaml:"react"`
	Reflection reflection.Config `json:"reflection" yaml:"reflection"`
	Tools      toolkit.Config    `json:"tools" yaml:"tools"`
	Session    session.Config    `json:"session" yaml:"session"`
	Memory     memory.Config     `json:"memory" yaml:"memory"`
	Observer   string            `json:"observer,omitempty" yaml:"observer,omitempty"`
}

// DefaultConfig returns a Config with defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		Gateway:    gateway.DefaultConfig(),
		ReAct:      react.DefaultConfig(),
		Reflection: reflection.DefaultConfig(),
		Tools:      toolkit.DefaultConfig(),
		Session:    session.DefaultConfig(),
		Memory:     memory.DefaultConfig(),
		Observer:   defaultObserver,
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.Gateway.Merge(&source.Gateway)
	c.ReAct.Merge(&source.ReAct)
	c.Reflection.Merge(&source.Reflection)
	c.Tools.Merge(&source.Tools)
	c.Session.Merge(&source.Session)
	c.Memory.Merge(&source.Memory)

	if source.Observer != "" {
		c.Observer = source.Observer
	}
}

// MergeEnv overlays credentials and endpoints found in the environment
// (LLM_PROVIDER, LLM_MODEL_ID, LLM_API_KEY, LLM_BASE_URL, LLM_TIMEOUT,
// SERPAPI_API_KEY). lookup is normally os.LookupEnv.
func (c *Config) MergeEnv(lookup func(string) (string, bool)) error {
	var env gateway.Config
	if err := env.ApplyEnv(lookup); err != nil {
		return err
	}
	c.Gateway.Merge(&env)

	var tools toolkit.Config
	tools.ApplyEnv(lookup)
	c.Tools.Merge(&tools)
	return nil
}

// LoadConfig builds a Config from defaults, then the environment, then the
// file. Files ending in .yaml or .yml are read as YAML; anything else as JSON.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.MergeEnv(os.LookupEnv); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &loaded)
	default:
		err = json.Unmarshal(data, &loaded)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
