// Package toolkit provides the built-in tools an agent can be equipped with:
// web search, page fetching, arithmetic, the current time, and local file
// access. Every tool takes a single free-text argument.
package toolkit

import (
	"fmt"
	"net/http"

	"github.com/tailored-agentic-units/goagent/tools"
)

// New builds the named built-in tool.
func New(name string, cfg *Config) (tools.Tool, error) {
	switch name {
	case NameSearch:
		return Search(cfg.Search, &http.Client{Timeout: seconds(cfg.Search.TimeoutSeconds)}), nil
	case NameFetch:
		return Fetch(cfg.Fetch, &http.Client{Timeout: seconds(cfg.Fetch.TimeoutSeconds)}), nil
	case NameCalculator:
		return Calculator(), nil
	case NameDatetime:
		return Datetime(nil), nil
	case NameReadFile:
		return ReadFile(cfg.Files), nil
	case NameListDirectory:
		return ListDirectory(cfg.Files), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
}

// Register adds every tool named in cfg.Enabled to reg, in that order.
func Register(reg *tools.Registry, cfg *Config) error {
	for _, name := range cfg.Enabled {
		tool, err := New(name, cfg)
		if err != nil {
			return err
		}
		if err := reg.Register(tool); err != nil {
			return fmt.Errorf("failed to register tool %q: %w", name, err)
		}
	}
	return nil
}
