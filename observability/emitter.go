package observability

import (
	"context"
	"time"
)

// Emitter stamps events with a fixed source and the current time before
// forwarding them. A zero Emitter or one with a nil Observer drops events.
type Emitter struct {
	Observer Observer
	Source   string
	// Attrs are merged into every event's Data. Event data wins on conflict.
	Attrs map[string]any
}

// NewEmitter creates an Emitter for the given source. A nil observer is
// replaced with NoOpObserver.
func NewEmitter(observer Observer, source string) Emitter {
	if observer == nil {
		observer = NoOpObserver{}
	}
	return Emitter{Observer: observer, Source: source}
}

// With returns a copy of e whose events also carry the given attributes.
func (e Emitter) With(attrs map[string]any) Emitter {
	merged := make(map[string]any, len(e.Attrs)+len(attrs))
	for k, v := range e.Attrs {
		merged[k] = v
	}
	for k, v := range attrs {
		merged[k] = v
	}
	e.Attrs = merged
	return e
}

// Emit sends one event.
func (e Emitter) Emit(ctx context.Context, typ EventType, level Level, data map[string]any) {
	if e.Observer == nil {
		return
	}
	if len(e.Attrs) > 0 {
		merged := make(map[string]any, len(e.Attrs)+len(data))
		for k, v := range e.Attrs {
			merged[k] = v
		}
		for k, v := range data {
			merged[k] = v
		}
		data = merged
	}
	e.Observer.OnEvent(ctx, Event{
		Type:      typ,
		Level:     level,
		Timestamp: time.Now(),
		Source:    e.Source,
		Data:      data,
	})
}
