// Package tools defines the text-in/text-out Tool contract and the Registry
// that dispatches model-issued actions to tools by name.
package tools

import (
	"context"
	"fmt"

	"github.com/tailored-agentic-units/goagent/core/protocol"
)

// Tool is a named capability invoked with free text. Execute must not signal
// failure out of band: problems are reported as human-readable text in the
// returned observation.
type Tool interface {
	Name() string
	Description() string
	Execute(ctx context.Context, input string) string
}

// Handler is the function signature for tool implementations built with New.
// A returned error is rendered into the observation text by the adapter.
type Handler func(ctx context.Context, input string) (string, error)

type handlerTool struct {
	def     protocol.Tool
	handler Handler
}

// New adapts a definition and a Handler into a Tool.
func New(def protocol.Tool, handler Handler) Tool {
	return &handlerTool{def: def, handler: handler}
}

func (t *handlerTool) Name() string        { return t.def.Name }
func (t *handlerTool) Description() string { return t.def.Description }

func (t *handlerTool) Execute(ctx context.Context, input string) string {
	if t.handler == nil {
		return ErrorText(fmt.Errorf("tool %s has no handler", t.def.Name))
	}
	out, err := t.handler(ctx, input)
	if err != nil {
		return ErrorText(err)
	}
	return out
}

// ErrorText renders err as an observation the model can read.
func ErrorText(err error) string {
	return "错误: " + err.Error()
}

// NotFoundText is the observation returned when no tool has the given name.
func NotFoundText(name string) string {
	return fmt.Sprintf("错误: 未找到名为 '%s' 的工具。", name)
}

// Definition returns the protocol description of t.
func Definition(t Tool) protocol.Tool {
	return protocol.Tool{Name: t.Name(), Description: t.Description()}
}
