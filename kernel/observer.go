package kernel

import "github.com/tailored-agentic-units/goagent/observability"

// Kernel event types.
const (
	EventExport       observability.EventType = "kernel.export"
	EventExportFailed observability.EventType = "kernel.export.failed"
)
