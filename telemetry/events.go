// Package telemetry provides cloth health tracking, bookmarking, and snapshots.
package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/drape/cloth"
)

// EventType identifies telemetry events.
type EventType uint8

const (
	EventDestroy EventType = iota
	EventGrab
	EventRelease
	EventPin
	EventUnpin
	EventIgnite
	EventRegenerate
)

func (t EventType) String() string {
	switch t {
	case EventDestroy:
		return "destroy"
	case EventGrab:
		return "grab"
	case EventRelease:
		return "release"
	case EventPin:
		return "pin"
	case EventUnpin:
		return "unpin"
	case EventIgnite:
		return "ignite"
	case EventRegenerate:
		return "regenerate"
	default:
		return "unknown"
	}
}

// Event represents a single telemetry event.
type Event struct {
	Type  EventType
	Tick  int32
	Index int // vertex index, -1 when not about a particle

	// Destroy events only
	Cause cloth.Cause
}

// NewDestroyEvent wraps a cloth removal.
func NewDestroyEvent(tick int32, e cloth.DestroyEvent) Event {
	return Event{
		Type:  EventDestroy,
		Tick:  tick,
		Index: e.Index,
		Cause: e.Cause,
	}
}

// NewInteractionEvent records a user action on one particle.
func NewInteractionEvent(tick int32, typ EventType, index int) Event {
	return Event{
		Type:  typ,
		Tick:  tick,
		Index: index,
	}
}

// NewRegenerateEvent records a cloth rebuild.
func NewRegenerateEvent(tick int32) Event {
	return Event{
		Type:  EventRegenerate,
		Tick:  tick,
		Index: -1,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (e Event) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("type", e.Type.String()),
		slog.Int("tick", int(e.Tick)),
	}
	if e.Index >= 0 {
		attrs = append(attrs, slog.Int("index", e.Index))
	}
	if e.Type == EventDestroy {
		attrs = append(attrs, slog.String("cause", e.Cause.String()))
	}
	return slog.GroupValue(attrs...)
}
