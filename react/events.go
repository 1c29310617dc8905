package react

import "github.com/tailored-agentic-units/goagent/observability"

// Reasoning Loop event types.
const (
	EventRunStart        observability.EventType = "react.run.start"
	EventStepStart       observability.EventType = "react.step.start"
	EventGatewayInvoke   observability.EventType = "react.gateway.invoke"
	EventGatewayFailed   observability.EventType = "react.gateway.failed"
	EventToolDispatch    observability.EventType = "react.tool.dispatch"
	EventActionMalformed observability.EventType = "react.action.malformed"
	EventTerminal        observability.EventType = "react.terminal"
)
