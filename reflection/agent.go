// Package reflection implements the Reflection Loop: produce an initial
// answer, ask the model to critique it, and refine it with that critique,
// until the critique says no changes are needed or the iteration budget runs
// out. Every attempt and critique is kept in a memory.Memory for the run.
package reflection

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tailored-agentic-units/goagent/core/protocol"
	"github.com/tailored-agentic-units/goagent/gateway"
	"github.com/tailored-agentic-units/goagent/memory"
	"github.com/tailored-agentic-units/goagent/observability"
	"github.com/tailored-agentic-units/goagent/prompt"
	"github.com/tailored-agentic-units/goagent/session"
)

// Result holds the outcome of a Run invocation.
type Result struct {
	Content    string          // Newest execution record.
	Iterations int             // Reflect phases performed.
	Stopped    bool            // True when the stop policy ended the run early.
	Calls      int             // Gateway invocations made.
	Records    []memory.Record // Full run memory, oldest first.
	Trajectory string          // Records rendered with their section headers.
}

type Option func(*Agent)

// WithSession overrides the default in-memory session.
func WithSession(s session.Session) Option {
	return func(a *Agent) { a.session = s }
}

// WithObserver sets the event sink. The default discards events.
func WithObserver(o observability.Observer) Option {
	return func(a *Agent) { a.observer = o }
}

type templates struct {
	initial prompt.Template
	reflect prompt.Template
	refine  prompt.Template
}

// Agent runs the Reflection Loop against one gateway.
type Agent struct {
	gateway   gateway.Gateway
	session   session.Session
	observer  observability.Observer
	templates templates
	cfg       Config
}

// New creates an Agent. cfg is merged over DefaultConfig, so any template
// left empty falls back to its built-in default. All three templates are
// parsed here.
func New(cfg *Config, gw gateway.Gateway, opts ...Option) (*Agent, error) {
	if gw == nil {
		return nil, ErrNilGateway
	}

	resolved := DefaultConfig()
	if cfg != nil {
		resolved.Merge(cfg)
	}

	tmpls, err := parseTemplates(resolved.Templates)
	if err != nil {
		return nil, err
	}

	a := &Agent{
		gateway:   gw,
		session:   session.NewMemorySession(0),
		observer:  observability.NoOpObserver{},
		templates: tmpls,
		cfg:       resolved,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func parseTemplates(t Templates) (templates, error) {
	var out templates
	var err error
	if out.initial, err = prompt.Parse(t.Initial, KeyTask); err != nil {
		return out, fmt.Errorf("invalid initial template: %w", err)
	}
	if out.reflect, err = prompt.Parse(t.Reflect, KeyTask, KeyContent); err != nil {
		return out, fmt.Errorf("invalid reflect template: %w", err)
	}
	if out.refine, err = prompt.Parse(t.Refine, KeyTask, KeyLastAttempt, KeyFeedback); err != nil {
		return out, fmt.Errorf("invalid refine template: %w", err)
	}
	return out, nil
}

// Config returns the resolved configuration.
func (a *Agent) Config() Config {
	return a.cfg
}

// Session returns the log that receives each run's task and final content.
func (a *Agent) Session() session.Session {
	return a.session
}

type run struct {
	agent  *Agent
	events observability.Emitter
	mem    *memory.Memory
	calls  int
}

// Run executes one Reflection Loop for task with a fresh Memory. Gateway
// failures contribute empty text and never abort the run; the only error is
// cancellation of ctx.
func (a *Agent) Run(ctx context.Context, task string) (*Result, error) {
	r := &run{
		agent: a,
		events: observability.NewEmitter(a.observer, "reflection.Agent.Run").
			With(map[string]any{"run_id": uuid.Must(uuid.NewV7()).String()}),
		mem: memory.New(),
	}

	r.events.Emit(ctx, EventRunStart, observability.LevelInfo, map[string]any{
		"task_length":    len(task),
		"max_iterations": a.cfg.MaxIterations,
	})

	initial, err := r.call(ctx, PhaseInitial, 0, a.templates.initial.Render(map[string]string{
		KeyTask: task,
	}))
	if err != nil {
		return nil, err
	}
	r.append(ctx, memory.Execution(initial))

	result := &Result{}
	for i := 1; i <= a.cfg.MaxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		last, _ := r.mem.LastExecution()
		feedback, err := r.call(ctx, PhaseReflect, i, a.templates.reflect.Render(map[string]string{
			KeyTask:    task,
			KeyContent: last,
		}))
		if err != nil {
			return nil, err
		}
		r.append(ctx, memory.Reflection(feedback))
		result.Iterations = i

		if a.cfg.Stop.ShouldStop(feedback) {
			result.Stopped = true
			r.events.Emit(ctx, EventStop, observability.LevelInfo, map[string]any{"iteration": i})
			break
		}

		refined, err := r.call(ctx, PhaseRefine, i, a.templates.refine.Render(map[string]string{
			KeyTask:        task,
			KeyLastAttempt: last,
			KeyFeedback:    feedback,
		}))
		if err != nil {
			return nil, err
		}
		r.append(ctx, memory.Execution(refined))
	}

	result.Content, _ = r.mem.LastExecution()
	result.Calls = r.calls
	result.Records = r.mem.Records()
	result.Trajectory = r.mem.Trajectory()
	session.RecordExchange(a.session, task, result.Content)

	r.events.Emit(ctx, EventTerminal, observability.LevelInfo, map[string]any{
		"iterations":     result.Iterations,
		"stopped":        result.Stopped,
		"calls":          result.Calls,
		"records":        r.mem.Len(),
		"content_length": len(result.Content),
	})
	return result, nil
}

// call invokes the gateway for one phase. A gateway error becomes "" unless
// it was caused by ctx ending.
func (r *run) call(ctx context.Context, phase Phase, iteration int, text string) (string, error) {
	r.events.Emit(ctx, EventPhaseStart, observability.LevelVerbose, map[string]any{
		"phase":     string(phase),
		"iteration": iteration,
	})
	r.events.Emit(ctx, EventGatewayInvoke, observability.LevelVerbose, map[string]any{
		"phase":         string(phase),
		"prompt_length": len(text),
	})

	r.calls++
	out, err := r.agent.gateway.Invoke(ctx, protocol.InitMessages(protocol.RoleUser, text))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		r.events.Emit(ctx, EventGatewayFailed, observability.LevelWarning, map[string]any{
			"phase": string(phase),
			"error": err.Error(),
		})
		return "", nil
	}
	return out, nil
}

func (r *run) append(ctx context.Context, rec memory.Record) {
	r.mem.Append(rec)
	r.events.Emit(ctx, EventMemoryAppend, observability.LevelVerbose, map[string]any{
		"kind":    rec.Kind.String(),
		"length":  len(rec.Content),
		"records": r.mem.Len(),
	})
}
