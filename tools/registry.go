package tools

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/tailored-agentic-units/goagent/core/protocol"
	"github.com/tailored-agentic-units/goagent/observability"
)

// Registry event types.
const (
	EventRegister observability.EventType = "tools.register"
	EventReplace  observability.EventType = "tools.replace"
	EventDispatch observability.EventType = "tools.dispatch"
	EventNotFound observability.EventType = "tools.not_found"
)

// Registry owns a name-to-tool mapping for one agent. Registration order is
// preserved and is part of the observable contract: Describe renders tools in
// that order, so prompts are deterministic.
//
// A Registry is safe for concurrent use, although the loops only ever call it
// from one goroutine.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]Tool
	events  observability.Emitter
}

// NewRegistry creates an empty Registry. A nil observer discards events.
func NewRegistry(observer observability.Observer) *Registry {
	return &Registry{
		entries: make(map[string]Tool),
		events:  observability.NewEmitter(observer, "tools.Registry"),
	}
}

// Register inserts tool under its name. If the name is already taken the new
// tool replaces the old one in place (keeping its position in Describe) and a
// warning-level EventReplace is emitted. Only a nil tool or an empty name is
// rejected.
func (r *Registry) Register(tool Tool) error {
	if tool == nil {
		return ErrNilTool
	}
	name := tool.Name()
	if name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	_, exists := r.entries[name]
	if !exists {
		r.order = append(r.order, name)
	}
	r.entries[name] = tool
	r.mu.Unlock()

	if exists {
		r.events.Emit(context.Background(), EventReplace, observability.LevelWarning, map[string]any{
			"name": name,
		})
		return nil
	}

	r.events.Emit(context.Background(), EventRegister, observability.LevelVerbose, map[string]any{
		"name": name,
	})
	return nil
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.entries[name]
	return t, ok
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// List returns the definitions of all registered tools in registration order.
func (r *Registry) List() []protocol.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]protocol.Tool, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, Definition(r.entries[name]))
	}
	return defs
}

// Describe renders one "name: description" line per tool, in registration
// order, for verbatim inclusion in prompts.
func (r *Registry) Describe() string {
	defs := r.List()
	lines := make([]string, len(defs))
	for i, d := range defs {
		lines[i] = fmt.Sprintf("%s: %s", d.Name, d.Description)
	}
	return strings.Join(lines, "\n")
}

// Dispatch runs the named tool with input and returns its output unmodified.
// An unknown name yields NotFoundText rather than an error.
func (r *Registry) Dispatch(ctx context.Context, name, input string) string {
	tool, ok := r.Get(name)
	if !ok {
		r.events.Emit(ctx, EventNotFound, observability.LevelWarning, map[string]any{
			"name": name,
		})
		return NotFoundText(name)
	}

	out := tool.Execute(ctx, input)
	r.events.Emit(ctx, EventDispatch, observability.LevelVerbose, map[string]any{
		"name":          name,
		"input_length":  len(input),
		"output_length": len(out),
	})
	return out
}
