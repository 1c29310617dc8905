package reflection

import "github.com/tailored-agentic-units/goagent/observability"

// Reflection Loop event types.
const (
	EventRunStart      observability.EventType = "reflection.run.start"
	EventPhaseStart    observability.EventType = "reflection.phase.start"
	EventGatewayInvoke observability.EventType = "reflection.gateway.invoke"
	EventGatewayFailed observability.EventType = "reflection.gateway.failed"
	EventMemoryAppend  observability.EventType = "reflection.memory.append"
	EventStop          observability.EventType = "reflection.stop"
	EventTerminal      observability.EventType = "reflection.terminal"
)

// Phase names one of the three prompts of an iteration.
type Phase string

const (
	PhaseInitial Phase = "initial"
	PhaseReflect Phase = "reflect"
	PhaseRefine  Phase = "refine"
)
