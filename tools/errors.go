package tools

import "errors"

// Sentinel errors for the tools registry. Only contract violations are
// errors; replacing a tool and dispatching to a missing one are not.
var (
	ErrNilTool   = errors.New("tool is nil")
	ErrEmptyName = errors.New("tool name is empty")
)
