// Package react implements the Reasoning Loop: the model alternates Thought
// and Action lines, tools answer with Observations, and the loop ends when the
// model emits Finish[answer] or the step budget runs out.
//
//	agent, err := react.New(&cfg, gw, registry)
//	result, err := agent.Run(ctx, "What is 3+4?")
package react

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tailored-agentic-units/goagent/core/protocol"
	"github.com/tailored-agentic-units/goagent/gateway"
	"github.com/tailored-agentic-units/goagent/observability"
	"github.com/tailored-agentic-units/goagent/prompt"
	"github.com/tailored-agentic-units/goagent/session"
	"github.com/tailored-agentic-units/goagent/tools"
)

// Status is the terminal state of a run.
type Status string

const (
	StatusFinished  Status = "finished"  // the model emitted Finish
	StatusExhausted Status = "exhausted" // MaxSteps reached without Finish
)

// Step is the diagnostic record of one loop iteration.
type Step struct {
	Index       int    // 1-based step number.
	Output      string // Raw model text ("" when the gateway failed).
	Thought     string
	HasThought  bool
	Action      Action
	Observation string // Tool output, or the syntax reminder under MalformedObserve.
}

// Result holds the outcome of a Run invocation.
type Result struct {
	Answer string // Finish payload or the fallback answer.
	Status Status
	Steps  []Step // One entry per gateway call.
	Calls  int    // Gateway invocations made.
}

// Option configures an Agent after config-driven initialization.
type Option func(*Agent)

// WithSession overrides the default in-memory session.
func WithSession(s session.Session) Option {
	return func(a *Agent) { a.session = s }
}

// WithObserver sets the event sink. The default discards events.
func WithObserver(o observability.Observer) Option {
	return func(a *Agent) { a.observer = o }
}

// Agent runs the Reasoning Loop against one gateway and tool registry.
type Agent struct {
	gateway  gateway.Gateway
	registry *tools.Registry
	session  session.Session
	observer observability.Observer
	template prompt.Template
	cfg      Config
}

// New creates an Agent. cfg is merged over DefaultConfig; its template is
// parsed here so a bad placeholder is reported once, before any run. A nil
// registry is replaced with an empty one.
func New(cfg *Config, gw gateway.Gateway, registry *tools.Registry, opts ...Option) (*Agent, error) {
	if gw == nil {
		return nil, ErrNilGateway
	}

	resolved := DefaultConfig()
	if cfg != nil {
		resolved.Merge(cfg)
	}
	if err := resolved.validate(); err != nil {
		return nil, err
	}

	tmpl, err := prompt.Parse(resolved.Template, KeyTools, KeyQuestion, KeyHistory)
	if err != nil {
		return nil, fmt.Errorf("invalid react template: %w", err)
	}

	a := &Agent{
		gateway:  gw,
		registry: registry,
		session:  session.NewMemorySession(0),
		observer: observability.NoOpObserver{},
		template: tmpl,
		cfg:      resolved,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.registry == nil {
		a.registry = tools.NewRegistry(a.observer)
	}
	return a, nil
}

// Config returns the resolved configuration.
func (a *Agent) Config() Config {
	return a.cfg
}

// Registry returns the registry actions are dispatched against.
func (a *Agent) Registry() *tools.Registry {
	return a.registry
}

// Session returns the log that receives each run's question and answer.
func (a *Agent) Session() session.Session {
	return a.session
}

// Run answers question within at most MaxSteps gateway calls. Gateway
// failures, unknown tools and malformed actions never abort the run; the
// only error is cancellation of ctx, observed between steps.
func (a *Agent) Run(ctx context.Context, question string) (*Result, error) {
	events := observability.NewEmitter(a.observer, "react.Agent.Run").
		With(map[string]any{"run_id": uuid.Must(uuid.NewV7()).String()})

	events.Emit(ctx, EventRunStart, observability.LevelInfo, map[string]any{
		"question_length": len(question),
		"max_steps":       a.cfg.MaxSteps,
		"tools":           a.registry.Len(),
	})

	result := &Result{}
	var history []string

	for step := 1; step <= a.cfg.MaxSteps; step++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		events.Emit(ctx, EventStepStart, observability.LevelVerbose, map[string]any{"step": step})

		text, err := a.invoke(ctx, events, step, question, history)
		result.Calls++
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			events.Emit(ctx, EventGatewayFailed, observability.LevelWarning, map[string]any{
				"step":  step,
				"error": err.Error(),
			})
			text = ""
		}

		out := Parse(text)
		s := Step{
			Index:      step,
			Output:     text,
			Thought:    out.Thought,
			HasThought: out.HasThought,
			Action:     out.Action,
		}

		switch out.Action.Kind {
		case ActionFinish:
			result.Steps = append(result.Steps, s)
			return a.finish(ctx, events, result, question, out.Action.Answer, StatusFinished), nil

		case ActionTool:
			s.Observation = a.registry.Dispatch(ctx, out.Action.Tool, out.Action.Input)
			events.Emit(ctx, EventToolDispatch, observability.LevelVerbose, map[string]any{
				"step":               step,
				"tool":               out.Action.Tool,
				"input_length":       len(out.Action.Input),
				"observation_length": len(s.Observation),
			})
			history = append(history, "Action: "+out.Action.Raw, "Observation: "+s.Observation)

		case ActionMalformed:
			events.Emit(ctx, EventActionMalformed, observability.LevelWarning, map[string]any{
				"step":   step,
				"action": out.Action.Raw,
				"policy": string(a.cfg.MalformedPolicy),
			})
			if a.cfg.MalformedPolicy == MalformedObserve {
				s.Observation = malformedObservation(out.Action.Raw)
				history = append(history, "Action: "+out.Action.Raw, "Observation: "+s.Observation)
			}
		}

		result.Steps = append(result.Steps, s)
	}

	return a.finish(ctx, events, result, question, a.cfg.FallbackAnswer, StatusExhausted), nil
}

func (a *Agent) invoke(ctx context.Context, events observability.Emitter, step int, question string, history []string) (string, error) {
	text := a.template.Render(map[string]string{
		KeyTools:    a.registry.Describe(),
		KeyQuestion: question,
		KeyHistory:  strings.Join(history, "\n"),
	})

	events.Emit(ctx, EventGatewayInvoke, observability.LevelVerbose, map[string]any{
		"step":          step,
		"prompt_length": len(text),
	})

	return a.gateway.Invoke(ctx, protocol.InitMessages(protocol.RoleUser, text))
}

func (a *Agent) finish(ctx context.Context, events observability.Emitter, result *Result, question, answer string, status Status) *Result {
	result.Answer = answer
	result.Status = status
	session.RecordExchange(a.session, question, answer)

	level := observability.LevelInfo
	if status == StatusExhausted {
		level = observability.LevelWarning
	}
	events.Emit(ctx, EventTerminal, level, map[string]any{
		"status":        string(status),
		"steps":         len(result.Steps),
		"calls":         result.Calls,
		"answer_length": len(answer),
	})
	return result
}

// Transcript renders the steps as readable text, one block per step.
func (r *Result) Transcript() string {
	blocks := make([]string, 0, len(r.Steps)+1)
	for _, s := range r.Steps {
		var b strings.Builder
		fmt.Fprintf(&b, "--- 第 %d 步 ---", s.Index)
		if s.HasThought {
			b.WriteString("\nThought: " + s.Thought)
		}
		if s.Action.Kind != ActionNone {
			b.WriteString("\nAction: " + s.Action.Raw)
		}
		if s.Observation != "" {
			b.WriteString("\nObservation: " + s.Observation)
		}
		blocks = append(blocks, b.String())
	}
	blocks = append(blocks, fmt.Sprintf("--- %s ---\n%s", r.Status, r.Answer))
	return strings.Join(blocks, "\n\n")
}
