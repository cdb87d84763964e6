// Package event defines the real-time events the studio consumes, independent of
// the transport that carries them.
package event

import (
	"context"
	"encoding/json"
)

// Event is a named notification pushed by the backend.
type Event struct {
	Name    string
	Payload json.RawMessage
}

// Handler is invoked once per received event, in arrival order.
type Handler func(ctx context.Context, evt Event)

// Source delivers events until ctx is cancelled. Run returns nil on cancellation.
// Connected reports whether events can currently arrive.
type Source interface {
	Run(ctx context.Context, handler Handler) error
	Connected() bool
}
