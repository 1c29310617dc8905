// Package kernel composes a gateway, tool registry, session and trajectory
// exporter into one runtime that can run either orchestration loop.
//
// The kernel initializes from configuration via New, creating every
// subsystem it was not handed through an Option.
//
//	k, err := kernel.New(&cfg)
//	result, err := k.RunReAct(ctx, "What is the capital of France?")
package kernel

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tailored-agentic-units/goagent/gateway"
	"github.com/tailored-agentic-units/goagent/gateway/providers"
	"github.com/tailored-agentic-units/goagent/memory"
	"github.com/tailored-agentic-units/goagent/observability"
	"github.com/tailored-agentic-units/goagent/react"
	"github.com/tailored-agentic-units/goagent/reflection"
	"github.com/tailored-agentic-units/goagent/session"
	"github.com/tailored-agentic-units/goagent/tools"
	"github.com/tailored-agentic-units/goagent/toolkit"
)

// Option overrides a subsystem that New would otherwise build from config.
type Option func(*Kernel)

// WithGateway overrides the config-created completion gateway.
func WithGateway(g gateway.Gateway) Option {
	return func(k *Kernel) { k.gateway = g }
}

// WithRegistry overrides the config-created tool registry. No built-in
// tools are added to it.
func WithRegistry(r *tools.Registry) Option {
	return func(k *Kernel) { k.registry = r }
}

// WithSession overrides the config-created session.
func WithSession(s session.Session) Option {
	return func(k *Kernel) { k.session = s }
}

// WithObserver overrides the observer named in config.
func WithObserver(o observability.Observer) Option {
	return func(k *Kernel) { k.observer = o }
}

// WithExporter overrides the config-created trajectory exporter.
func WithExporter(e memory.Exporter) Option {
	return func(k *Kernel) { k.exporter = e }
}

// Kernel owns the subsystems shared by both loops.
type Kernel struct {
	gateway    gateway.Gateway
	registry   *tools.Registry
	session    session.Session
	exporter   memory.Exporter
	observer   observability.Observer
	react      *react.Agent
	reflection *reflection.Agent
	events     observability.Emitter
	cfg        Config
}

// New creates a Kernel from configuration. Options are applied first; any
// subsystem they leave unset is built from its config section.
func New(cfg *Config, opts ...Option) (*Kernel, error) {
	k := &Kernel{cfg: *cfg}
	for _, opt := range opts {
		opt(k)
	}

	if k.observer == nil {
		name := cfg.Observer
		if name == "" {
			name = defaultObserver
		}
		obs, err := observability.GetObserver(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownObserver, name)
		}
		k.observer = obs
	}
	k.events = observability.NewEmitter(k.observer, "kernel.Kernel")

	if k.gateway == nil {
		gw, err := providers.New(context.Background(), cfg.Gateway)
		if err != nil {
			return nil, fmt.Errorf("failed to create gateway: %w", err)
		}
		k.gateway = gw
	}

	if k.registry == nil {
		k.registry = tools.NewRegistry(k.observer)
		if err := toolkit.Register(k.registry, &cfg.Tools); err != nil {
			return nil, fmt.Errorf("failed to register tools: %w", err)
		}
	}

	if k.session == nil {
		sesh, err := session.New(&cfg.Session)
		if err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
		k.session = sesh
	}

	if k.exporter == nil {
		k.exporter = memory.NewExporter(&cfg.Memory)
	}

	ra, err := react.New(&cfg.ReAct, k.gateway, k.registry,
		react.WithSession(k.session),
		react.WithObserver(k.observer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create react agent: %w", err)
	}
	k.react = ra

	rf, err := reflection.New(&cfg.Reflection, k.gateway,
		reflection.WithSession(k.session),
		reflection.WithObserver(k.observer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create reflection agent: %w", err)
	}
	k.reflection = rf

	return k, nil
}

// Registry returns the kernel's tool registry.
func (k *Kernel) Registry() *tools.Registry {
	return k.registry
}

// Session returns the conversation log shared by both loops.
func (k *Kernel) Session() session.Session {
	return k.session
}

func (k *Kernel) Gateway() gateway.Gateway {
	return k.gateway
}

// RunReAct answers question with the Reasoning Loop and exports its step
// transcript when an exporter is configured.
func (k *Kernel) RunReAct(ctx context.Context, question string) (*react.Result, error) {
	result, err := k.react.Run(ctx, question)
	if err != nil {
		return nil, err
	}
	k.export(ctx, "react", result.Transcript())
	return result, nil
}

// RunReflection improves an answer to task with the Reflection Loop and
// exports its trajectory when an exporter is configured.
func (k *Kernel) RunReflection(ctx context.Context, task string) (*reflection.Result, error) {
	result, err := k.reflection.Run(ctx, task)
	if err != nil {
		return nil, err
	}
	k.export(ctx, "reflection", result.Trajectory)
	return result, nil
}

// export failures are reported as events; a run never fails because its
// diagnostic dump could not be written.
func (k *Kernel) export(ctx context.Context, loop, content string) {
	if k.exporter == nil {
		return
	}

	name := fmt.Sprintf("%s/%s.md", loop, uuid.Must(uuid.NewV7()).String())
	path, err := k.exporter.Export(name, content)
	if err != nil {
		k.events.Emit(ctx, EventExportFailed, observability.LevelWarning, map[string]any{
			"loop":  loop,
			"error": err.Error(),
		})
		return
	}
	k.events.Emit(ctx, EventExport, observability.LevelInfo, map[string]any{
		"loop": loop,
		"path": path,
	})
}
